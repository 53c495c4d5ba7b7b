package mockapi

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"nexus/internal/domain"
)

const (
	defaultTransactionLimit = 100
	notificationLimit       = 50
)

func (s *Server) listAccounts(c *gin.Context) {
	var out []domain.Account
	s.store.read(currentEmail(c), func(l *ledger) {
		out = append([]domain.Account{}, l.accounts...)
	})
	c.JSON(http.StatusOK, out)
}

func (s *Server) createAccount(c *gin.Context) {
	q := query(c)
	acc := domain.Account{
		Name:        q.str("name", true, ""),
		AccountType: q.str("account_type", true, ""),
		Currency:    q.str("currency", true, ""),
		Balance:     q.decimal("balance", false, decimal.Zero),
		Color:       q.str("color", false, "#666666"),
	}
	if !q.ok() {
		return
	}
	_ = s.store.write(currentEmail(c), func(l *ledger) error {
		acc.ID = s.store.id()
		l.accounts = append(l.accounts, acc)
		return nil
	})
	c.JSON(http.StatusOK, domain.AccountCreated{Message: "Account created successfully", Account: acc})
}

func (s *Server) listTransactions(c *gin.Context) {
	q := query(c)
	start := q.date("start_date", false)
	end := q.date("end_date", false)
	category := q.str("category", false, "")
	limit := q.integer("limit", false, defaultTransactionLimit)
	if !q.ok() {
		return
	}
	var out []domain.Transaction
	s.store.read(currentEmail(c), func(l *ledger) {
		out = l.filterTransactions(start, end, category, int(limit))
	})
	c.JSON(http.StatusOK, out)
}

// createTransaction books a transaction, predicts its category and moves the
// account balance. Budgets crossing their alert threshold raise a notification.
func (s *Server) createTransaction(c *gin.Context) {
	q := query(c)
	description := q.str("description", true, "")
	amount := q.decimal("amount", true, decimal.Zero)
	accountID := q.integer("account_id", true, 0)
	currency := q.str("currency", false, domain.DefaultCurrency)
	date := q.date("transaction_date", false)
	if !q.ok() {
		return
	}

	when := s.now().UTC()
	if date != nil {
		when = date.UTC()
	}
	prediction := classify(description, &amount)

	var (
		tx         domain.Transaction
		newBalance decimal.Decimal
	)
	err := s.store.write(currentEmail(c), func(l *ledger) error {
		acc := l.account(accountID)
		if acc == nil {
			return errNotFound
		}
		tx = domain.Transaction{
			ID:              s.store.id(),
			AccountID:       accountID,
			Description:     description,
			Amount:          amount,
			Currency:        currency,
			Category:        prediction.Category,
			TransactionDate: domain.NewTimestamp(when),
		}
		acc.Balance = acc.Balance.Add(amount)
		newBalance = acc.Balance
		l.transactions = append(l.transactions, tx)
		s.budgetAlerts(l, tx)
		return nil
	})
	if errors.Is(err, errNotFound) {
		detail(c, http.StatusNotFound, "Account not found")
		return
	}

	c.JSON(http.StatusOK, domain.TransactionCreated{
		Message:            "Transaction created successfully",
		Transaction:        tx,
		CategoryPrediction: &prediction,
		NewBalance:         newBalance,
	})
}

// budgetAlerts must run under the store's write lock.
func (s *Server) budgetAlerts(l *ledger, tx domain.Transaction) {
	if !tx.Amount.IsNegative() {
		return
	}
	for _, b := range l.budgets {
		if b.category != tx.Category {
			continue
		}
		view := l.budgetView(b)
		note := domain.Notification{
			NotificationType: "budget_alert",
			ActionURL:        "/budgets",
			CreatedAt:        tx.TransactionDate,
		}
		switch view.Status {
		case domain.BudgetExceeded:
			note.Title = "Budget exceeded: " + b.category
			note.Message = "You have spent " + view.SpentAmount.StringFixed(2) + " of " + b.amount.StringFixed(2) + "."
			note.Priority = "high"
		case domain.BudgetWarning:
			note.Title = "Budget warning: " + b.category
			note.Message = "You have used " + decimal.NewFromFloat(view.Progress).StringFixed(1) + "% of this budget."
			note.Priority = "medium"
		default:
			continue
		}
		l.notify(s.store.id(), note)
	}
}

func (s *Server) listBudgets(c *gin.Context) {
	out := []domain.Budget{}
	s.store.read(currentEmail(c), func(l *ledger) {
		for _, b := range l.budgets {
			out = append(out, l.budgetView(b))
		}
	})
	c.JSON(http.StatusOK, out)
}

func (s *Server) createBudget(c *gin.Context) {
	q := query(c)
	rec := budgetRecord{
		category:       q.str("category", true, ""),
		amount:         q.decimal("amount", true, decimal.Zero),
		currency:       q.str("currency", false, domain.DefaultCurrency),
		period:         q.str("period", false, "monthly"),
		alertThreshold: defaultAlertThreshold,
	}
	if !q.ok() {
		return
	}
	now := s.now().UTC()
	rec.startDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var view domain.Budget
	_ = s.store.write(currentEmail(c), func(l *ledger) error {
		rec.id = s.store.id()
		l.budgets = append(l.budgets, rec)
		view = l.budgetView(rec)
		return nil
	})
	c.JSON(http.StatusOK, gin.H{"message": "Budget created", "budget": view})
}

func (s *Server) deleteBudget(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := s.store.write(currentEmail(c), func(l *ledger) error {
		for i, b := range l.budgets {
			if b.id == id {
				l.budgets = append(l.budgets[:i], l.budgets[i+1:]...)
				return nil
			}
		}
		return errNotFound
	})
	if err != nil {
		detail(c, http.StatusNotFound, "Budget not found")
		return
	}
	c.JSON(http.StatusOK, domain.Message{Message: "Budget deleted successfully"})
}

func (s *Server) listGoals(c *gin.Context) {
	out := []domain.Goal{}
	s.store.read(currentEmail(c), func(l *ledger) {
		out = append(out, l.goals...)
	})
	c.JSON(http.StatusOK, out)
}

func (s *Server) createGoal(c *gin.Context) {
	q := query(c)
	g := domain.Goal{
		Title:         q.str("title", true, ""),
		TargetAmount:  q.decimal("target_amount", true, decimal.Zero),
		CurrentAmount: decimal.Zero,
		Currency:      q.str("currency", true, ""),
		Category:      q.str("category", false, "savings"),
		Priority:      q.str("priority", false, "medium"),
	}
	deadline := q.date("deadline", true)
	if !q.ok() {
		return
	}
	if deadline != nil {
		g.Deadline = domain.NewTimestamp(*deadline)
	}
	_ = s.store.write(currentEmail(c), func(l *ledger) error {
		g.ID = s.store.id()
		l.goals = append(l.goals, g)
		return nil
	})
	c.JSON(http.StatusOK, domain.GoalResponse{Message: "Goal created successfully", Goal: g})
}

func (s *Server) updateGoal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	q := query(c)
	current := q.decimal("current_amount", true, decimal.Zero)
	if !q.ok() {
		return
	}

	var updated domain.Goal
	err := s.store.write(currentEmail(c), func(l *ledger) error {
		for i := range l.goals {
			if l.goals[i].ID != id {
				continue
			}
			wasReached := l.goals[i].Progress() >= 100
			l.goals[i].CurrentAmount = current
			updated = l.goals[i]
			if !wasReached && updated.Progress() >= 100 {
				l.notify(s.store.id(), domain.Notification{
					Title:            "Goal reached: " + updated.Title,
					Message:          "You reached your target of " + updated.TargetAmount.StringFixed(2) + ".",
					NotificationType: "goal_achieved",
					Priority:         "medium",
					ActionURL:        "/goals",
					CreatedAt:        domain.NewTimestamp(s.now().UTC()),
				})
			}
			return nil
		}
		return errNotFound
	})
	if err != nil {
		detail(c, http.StatusNotFound, "Goal not found")
		return
	}
	c.JSON(http.StatusOK, domain.GoalResponse{Message: "Goal progress updated", Goal: updated})
}

func (s *Server) listInvestments(c *gin.Context) {
	var out domain.Portfolio
	s.store.read(currentEmail(c), func(l *ledger) { out = l.portfolio() })
	c.JSON(http.StatusOK, out)
}

// createInvestment answers with the stored record, whose type field is named
// investment_type.
func (s *Server) createInvestment(c *gin.Context) {
	q := query(c)
	rec := investmentRecord{
		Investment: domain.Investment{
			Name:           q.str("name", true, ""),
			Type:           q.str("investment_type", true, ""),
			AmountInvested: q.decimal("amount_invested", true, decimal.Zero),
			CurrentValue:   q.decimal("current_value", true, decimal.Zero),
			Currency:       q.str("currency", false, domain.DefaultCurrency),
			RiskLevel:      q.str("risk_level", false, "medium"),
		},
		notes: q.str("notes", false, ""),
	}
	purchased := q.date("purchase_date", false)
	if _, ok := c.GetQuery("expected_return"); ok {
		r := q.float("expected_return", 0)
		rec.expectedReturn = &r
	}
	if !q.ok() {
		return
	}
	rec.purchaseDate = s.now().UTC()
	if purchased != nil {
		rec.purchaseDate = *purchased
	}

	_ = s.store.write(currentEmail(c), func(l *ledger) error {
		rec.ID = s.store.id()
		l.investments = append(l.investments, rec)
		return nil
	})
	c.JSON(http.StatusOK, gin.H{
		"message": "Investment created successfully",
		"investment": gin.H{
			"id":              rec.ID,
			"name":            rec.Name,
			"investment_type": rec.Type,
			"amount_invested": rec.AmountInvested,
			"current_value":   rec.CurrentValue,
			"currency":        rec.Currency,
			"purchase_date":   domain.NewTimestamp(rec.purchaseDate),
			"expected_return": rec.expectedReturn,
			"risk_level":      rec.RiskLevel,
			"notes":           rec.notes,
		},
	})
}

func (s *Server) deleteInvestment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := s.store.write(currentEmail(c), func(l *ledger) error {
		for i, inv := range l.investments {
			if inv.ID == id {
				l.investments = append(l.investments[:i], l.investments[i+1:]...)
				return nil
			}
		}
		return errNotFound
	})
	if err != nil {
		detail(c, http.StatusNotFound, "Investment not found")
		return
	}
	c.JSON(http.StatusOK, domain.Message{Message: "Investment deleted successfully"})
}

// listNotifications returns at most fifty entries, newest first.
func (s *Server) listNotifications(c *gin.Context) {
	q := query(c)
	unreadOnly := q.boolean("unread_only", false)
	if !q.ok() {
		return
	}
	out := domain.NotificationList{Notifications: []domain.Notification{}}
	s.store.read(currentEmail(c), func(l *ledger) {
		for _, n := range l.notifications {
			if unreadOnly && n.IsRead {
				continue
			}
			out.Notifications = append(out.Notifications, n)
		}
		out.UnreadCount = l.unreadCount()
	})
	sort.SliceStable(out.Notifications, func(i, j int) bool {
		a, b := out.Notifications[i], out.Notifications[j]
		if !a.CreatedAt.Equal(b.CreatedAt.Time) {
			return a.CreatedAt.After(b.CreatedAt.Time)
		}
		return a.ID > b.ID
	})
	if len(out.Notifications) > notificationLimit {
		out.Notifications = out.Notifications[:notificationLimit]
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) markRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := s.store.write(currentEmail(c), func(l *ledger) error {
		for i := range l.notifications {
			if l.notifications[i].ID == id {
				l.notifications[i].IsRead = true
				return nil
			}
		}
		return errNotFound
	})
	if err != nil {
		detail(c, http.StatusNotFound, "Notification not found")
		return
	}
	c.JSON(http.StatusOK, domain.Message{Message: "Notification marked as read"})
}

func (s *Server) markAllRead(c *gin.Context) {
	_ = s.store.write(currentEmail(c), func(l *ledger) error {
		for i := range l.notifications {
			l.notifications[i].IsRead = true
		}
		return nil
	})
	c.JSON(http.StatusOK, domain.Message{Message: "All notifications marked as read"})
}

// listRecurring returns scheduled payments ordered by next due date.
func (s *Server) listRecurring(c *gin.Context) {
	out := []domain.RecurringTransaction{}
	s.store.read(currentEmail(c), func(l *ledger) {
		out = append(out, l.recurring...)
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextDueDate.Before(out[j].NextDueDate.Time)
	})
	c.JSON(http.StatusOK, out)
}

func (s *Server) spendingInsights(c *gin.Context) {
	var out domain.SpendingInsights
	s.store.read(currentEmail(c), func(l *ledger) {
		out = spendingInsights(l.transactions, s.now().UTC())
	})
	c.JSON(http.StatusOK, out)
}

func (s *Server) cashFlowForecast(c *gin.Context) {
	q := query(c)
	rate := q.float("inflation_rate", defaultInflationRate)
	if !q.ok() {
		return
	}
	var out domain.CashFlowForecast
	s.store.read(currentEmail(c), func(l *ledger) {
		out = cashFlowForecast(l.transactions, l.accounts, rate, s.now().UTC())
	})
	c.JSON(http.StatusOK, out)
}

func (s *Server) financialHealth(c *gin.Context) {
	var out domain.FinancialHealth
	s.store.read(currentEmail(c), func(l *ledger) {
		out = financialHealth(l.transactions, l.accounts, l.goals)
	})
	c.JSON(http.StatusOK, out)
}

func (s *Server) predictCategory(c *gin.Context) {
	q := query(c)
	description := q.str("description", true, "")
	var amount *decimal.Decimal
	if _, ok := c.GetQuery("amount"); ok {
		a := q.decimal("amount", false, decimal.Zero)
		amount = &a
	}
	if !q.ok() {
		return
	}
	c.JSON(http.StatusOK, classify(description, amount))
}

func (s *Server) modelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, domain.ModelInfo{
		IsTrained:  true,
		Categories: categories,
		ModelType:  modelType,
	})
}
