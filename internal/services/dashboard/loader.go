package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"nexus/internal/domain"
)

// Widget names one independently fetched part of the dashboard.
type Widget string

const (
	WidgetAccounts      Widget = "accounts"
	WidgetTransactions  Widget = "transactions"
	WidgetBudgets       Widget = "budgets"
	WidgetGoals         Widget = "goals"
	WidgetInsights      Widget = "insights"
	WidgetHealth        Widget = "health"
	WidgetNotifications Widget = "notifications"
)

// DefaultRecent is how many recent transactions the dashboard shows.
const DefaultRecent = 5

// Source is the slice of the backend the dashboard reads.
type Source interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	ListTransactions(ctx context.Context, f domain.TransactionFilter) ([]domain.Transaction, error)
	ListBudgets(ctx context.Context) ([]domain.Budget, error)
	ListGoals(ctx context.Context) ([]domain.Goal, error)
	SpendingInsights(ctx context.Context) (domain.SpendingInsights, error)
	FinancialHealth(ctx context.Context) (domain.FinancialHealth, error)
	ListNotifications(ctx context.Context, unreadOnly bool) (domain.NotificationList, error)
}

// Snapshot is one dashboard render. Each widget fetch writes only its own
// field. Failures is set by LoadBestEffort only.
type Snapshot struct {
	Accounts      []domain.Account
	Transactions  []domain.Transaction
	Budgets       []domain.Budget
	Goals         []domain.Goal
	Insights      *domain.SpendingInsights
	Health        *domain.FinancialHealth
	Notifications *domain.NotificationList
	Failures      map[Widget]error
}

// Loader fans out the widget fetches.
type Loader struct {
	src    Source
	log    *slog.Logger
	recent int
}

// Option customises a Loader.
type Option func(*Loader)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(ld *Loader) { ld.log = l } }

// WithRecent sets how many recent transactions are fetched.
func WithRecent(n int) Option { return func(ld *Loader) { ld.recent = n } }

// New returns a Loader reading from src.
func New(src Source, opts ...Option) *Loader {
	l := &Loader{src: src, log: slog.New(slog.DiscardHandler), recent: DefaultRecent}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type fetch struct {
	widget Widget
	run    func(ctx context.Context, s *Snapshot) error
}

func (l *Loader) fetches() []fetch {
	return []fetch{
		{WidgetAccounts, func(ctx context.Context, s *Snapshot) (err error) {
			s.Accounts, err = l.src.ListAccounts(ctx)
			return err
		}},
		{WidgetTransactions, func(ctx context.Context, s *Snapshot) (err error) {
			s.Transactions, err = l.src.ListTransactions(ctx, domain.TransactionFilter{Limit: l.recent})
			return err
		}},
		{WidgetBudgets, func(ctx context.Context, s *Snapshot) (err error) {
			s.Budgets, err = l.src.ListBudgets(ctx)
			return err
		}},
		{WidgetGoals, func(ctx context.Context, s *Snapshot) (err error) {
			s.Goals, err = l.src.ListGoals(ctx)
			return err
		}},
		{WidgetInsights, func(ctx context.Context, s *Snapshot) error {
			in, err := l.src.SpendingInsights(ctx)
			if err != nil {
				return err
			}
			s.Insights = &in
			return nil
		}},
		{WidgetHealth, func(ctx context.Context, s *Snapshot) error {
			h, err := l.src.FinancialHealth(ctx)
			if err != nil {
				return err
			}
			s.Health = &h
			return nil
		}},
		{WidgetNotifications, func(ctx context.Context, s *Snapshot) error {
			n, err := l.src.ListNotifications(ctx, true)
			if err != nil {
				return err
			}
			s.Notifications = &n
			return nil
		}},
	}
}

// Load fetches every widget concurrently. The first failure cancels the
// remaining fetches and is returned; the snapshot is then discarded.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	for _, f := range l.fetches() {
		g.Go(func() error {
			if err := f.run(gctx, &snap); err != nil {
				return fmt.Errorf("load %s: %w", f.widget, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// LoadBestEffort fetches every widget concurrently and keeps whatever
// succeeded. Failed widgets are listed in Snapshot.Failures. Only a
// cancelled ctx is returned as an error.
func (l *Loader) LoadBestEffort(ctx context.Context) (Snapshot, error) {
	var (
		snap Snapshot
		mu   sync.Mutex
		g    errgroup.Group
	)
	for _, f := range l.fetches() {
		g.Go(func() error {
			if err := f.run(ctx, &snap); err != nil {
				l.log.WarnContext(ctx, "dashboard widget failed", "widget", f.widget, "error", err)
				mu.Lock()
				if snap.Failures == nil {
					snap.Failures = map[Widget]error{}
				}
				snap.Failures[f.widget] = err
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return snap, err
	}
	return snap, nil
}
