package mockapi

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"nexus/internal/domain"
)

var (
	errEmailTaken = errors.New("email already registered")
	errNotFound   = errors.New("not found")
)

// defaultAlertThreshold is the fraction of a budget at which it turns to warning.
const defaultAlertThreshold = 0.8

type budgetRecord struct {
	id             int64
	category       string
	amount         decimal.Decimal
	currency       string
	period         string
	alertThreshold float64
	startDate      time.Time
}

type investmentRecord struct {
	domain.Investment
	purchaseDate   time.Time
	expectedReturn *float64
	notes          string
}

// ledger is everything one user owns.
type ledger struct {
	accounts      []domain.Account
	transactions  []domain.Transaction
	budgets       []budgetRecord
	goals         []domain.Goal
	investments   []investmentRecord
	notifications []domain.Notification
	recurring     []domain.RecurringTransaction
}

type userRecord struct {
	profile domain.UserProfile
	hash    []byte
	data    *ledger
}

// memoryStore holds all backend state. It is lost when the process exits.
type memoryStore struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]*userRecord
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: make(map[string]*userRecord)}
}

func (m *memoryStore) id() int64 {
	m.nextID++
	return m.nextID
}

// createUser stores a user together with the four default accounts.
func (m *memoryStore) createUser(req domain.RegisterRequest, hash []byte, now time.Time) (domain.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(req.Email)
	if _, ok := m.users[key]; ok {
		return domain.UserProfile{}, errEmailTaken
	}
	u := &userRecord{
		profile: domain.UserProfile{
			ID:          m.id(),
			FullName:    req.FullName,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
		},
		hash: hash,
		data: &ledger{},
	}
	for _, acc := range defaultAccounts() {
		acc.ID = m.id()
		u.data.accounts = append(u.data.accounts, acc)
	}
	u.data.notifications = append(u.data.notifications, domain.Notification{
		ID:               m.id(),
		Title:            "Welcome to Nexus Finance",
		Message:          "Your default accounts are ready.",
		NotificationType: "system",
		Priority:         "low",
		CreatedAt:        domain.NewTimestamp(now),
	})
	m.users[key] = u
	return u.profile, nil
}

func defaultAccounts() []domain.Account {
	zero := decimal.Zero
	return []domain.Account{
		{Name: "Cash USD", AccountType: "cash", Currency: "USD", Balance: zero, Color: "#4CAF50"},
		{Name: "EcoCash USD", AccountType: "mobile_money", Currency: "USD", Balance: zero, Color: "#2196F3"},
		{Name: "Bank Account USD", AccountType: "bank", Currency: "USD", Balance: zero, Color: "#FF9800"},
		{Name: "ZiG Savings", AccountType: "savings", Currency: "ZIG", Balance: zero, Color: "#9C27B0"},
	}
}

func (m *memoryStore) user(email string) (*userRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[strings.ToLower(email)]
	return u, ok
}

// read runs fn with the user's ledger under the read lock.
func (m *memoryStore) read(email string, fn func(*ledger)) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return false
	}
	fn(u.data)
	return true
}

// write runs fn with the user's ledger under the write lock.
func (m *memoryStore) write(email string, fn func(*ledger) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return errNotFound
	}
	return fn(u.data)
}

func (l *ledger) account(id int64) *domain.Account {
	for i := range l.accounts {
		if l.accounts[i].ID == id {
			return &l.accounts[i]
		}
	}
	return nil
}

// filterTransactions returns matching transactions newest first.
func (l *ledger) filterTransactions(start, end *time.Time, category string, limit int) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(l.transactions))
	for _, tx := range l.transactions {
		if start != nil && tx.TransactionDate.Before(*start) {
			continue
		}
		if end != nil && tx.TransactionDate.After(*end) {
			continue
		}
		if category != "" && tx.Category != category {
			continue
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TransactionDate.After(out[j].TransactionDate.Time)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// spent sums the expenses booked against a budget's category since it started.
func (l *ledger) spent(b budgetRecord) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l.transactions {
		if !tx.Amount.IsNegative() || tx.Category != b.category {
			continue
		}
		if tx.TransactionDate.Before(b.startDate) {
			continue
		}
		total = total.Add(tx.Amount.Abs())
	}
	return total
}

// budgetView derives progress and status the way GET /budgets reports them.
func (l *ledger) budgetView(b budgetRecord) domain.Budget {
	spent := l.spent(b)
	progress := 0.0
	if b.amount.IsPositive() {
		progress, _ = spent.Div(b.amount).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	}
	return domain.Budget{
		ID:          b.id,
		Category:    b.category,
		Amount:      b.amount,
		SpentAmount: spent,
		Remaining:   b.amount.Sub(spent),
		Currency:    b.currency,
		Progress:    progress,
		Status:      budgetStatus(progress, b.alertThreshold),
		Period:      b.period,
	}
}

func budgetStatus(progress, threshold float64) string {
	switch {
	case progress >= 100:
		return domain.BudgetExceeded
	case progress >= threshold*100:
		return domain.BudgetWarning
	default:
		return domain.BudgetOnTrack
	}
}

func (l *ledger) portfolio() domain.Portfolio {
	hundred := decimal.NewFromInt(100)
	p := domain.Portfolio{Investments: make([]domain.Investment, 0, len(l.investments))}
	invested, current := decimal.Zero, decimal.Zero
	for _, rec := range l.investments {
		inv := rec.Investment
		inv.GainLoss = inv.CurrentValue.Sub(inv.AmountInvested).Round(2)
		inv.GainLossPercentage = 0
		if inv.AmountInvested.IsPositive() {
			inv.GainLossPercentage, _ = inv.GainLoss.Div(inv.AmountInvested).Mul(hundred).Round(2).Float64()
		}
		invested = invested.Add(inv.AmountInvested)
		current = current.Add(inv.CurrentValue)
		p.Investments = append(p.Investments, inv)
	}
	p.Summary = domain.InvestmentSummary{
		TotalInvested:     invested.Round(2),
		TotalCurrentValue: current.Round(2),
		TotalGainLoss:     current.Sub(invested).Round(2),
	}
	if invested.IsPositive() {
		p.Summary.TotalReturnPercentage, _ = current.Sub(invested).Div(invested).Mul(hundred).Round(2).Float64()
	}
	return p
}

func (l *ledger) unreadCount() int {
	n := 0
	for _, note := range l.notifications {
		if !note.IsRead {
			n++
		}
	}
	return n
}

// notify appends a notification unless an unread one with the same title exists.
func (l *ledger) notify(id int64, note domain.Notification) {
	for _, existing := range l.notifications {
		if !existing.IsRead && existing.Title == note.Title {
			return
		}
	}
	note.ID = id
	l.notifications = append(l.notifications, note)
}

// addRecurring registers a scheduled payment. There is no HTTP route for it.
func (m *memoryStore) addRecurring(email string, r domain.RecurringTransaction) error {
	return m.write(email, func(l *ledger) error {
		r.ID = m.id()
		l.recurring = append(l.recurring, r)
		return nil
	})
}
