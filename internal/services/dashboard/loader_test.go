package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus/internal/domain"
)

type fakeSource struct {
	fail       map[Widget]error
	gotLimit   int
	unreadOnly bool
}

func (f *fakeSource) err(w Widget) error { return f.fail[w] }

func (f *fakeSource) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return []domain.Account{{ID: 1, Name: "Cash USD"}}, f.err(WidgetAccounts)
}

func (f *fakeSource) ListTransactions(ctx context.Context, flt domain.TransactionFilter) ([]domain.Transaction, error) {
	f.gotLimit = flt.Limit
	return []domain.Transaction{{ID: 1}}, f.err(WidgetTransactions)
}

func (f *fakeSource) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	if err := f.err(WidgetBudgets); err != nil {
		return nil, err
	}
	return []domain.Budget{{ID: 1}}, nil
}

func (f *fakeSource) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	return []domain.Goal{{ID: 1}}, f.err(WidgetGoals)
}

func (f *fakeSource) SpendingInsights(ctx context.Context) (domain.SpendingInsights, error) {
	return domain.SpendingInsights{SpendingVelocity: 1.2}, f.err(WidgetInsights)
}

func (f *fakeSource) FinancialHealth(ctx context.Context) (domain.FinancialHealth, error) {
	if err := f.err(WidgetHealth); err != nil {
		return domain.FinancialHealth{}, err
	}
	return domain.FinancialHealth{Score: 80}, nil
}

func (f *fakeSource) ListNotifications(ctx context.Context, unreadOnly bool) (domain.NotificationList, error) {
	f.unreadOnly = unreadOnly
	return domain.NotificationList{UnreadCount: 2}, f.err(WidgetNotifications)
}

func TestLoad_AllWidgets(t *testing.T) {
	src := &fakeSource{}
	snap, err := New(src, WithRecent(3)).Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Accounts, 1)
	assert.Len(t, snap.Transactions, 1)
	assert.Len(t, snap.Budgets, 1)
	assert.Len(t, snap.Goals, 1)
	require.NotNil(t, snap.Health)
	assert.Equal(t, 80.0, snap.Health.Score)
	require.NotNil(t, snap.Notifications)
	assert.Equal(t, 2, snap.Notifications.UnreadCount)
	assert.Nil(t, snap.Failures)

	assert.Equal(t, 3, src.gotLimit)
	assert.True(t, src.unreadOnly)
}

func TestLoad_AllOrNothing(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{fail: map[Widget]error{WidgetBudgets: boom}}

	snap, err := New(src).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "budgets")
	assert.Empty(t, snap.Accounts)
}

func TestLoadBestEffort_KeepsSuccessfulWidgets(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{fail: map[Widget]error{WidgetBudgets: boom, WidgetHealth: boom}}

	snap, err := New(src).LoadBestEffort(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Accounts, 1)
	assert.Nil(t, snap.Budgets)
	assert.Nil(t, snap.Health)
	assert.Equal(t, map[Widget]error{WidgetBudgets: boom, WidgetHealth: boom}, snap.Failures)
}

func TestLoadBestEffort_EveryWidgetFails(t *testing.T) {
	boom := errors.New("boom")
	fail := map[Widget]error{}
	l := New(&fakeSource{fail: fail})
	for _, f := range l.fetches() {
		fail[f.widget] = boom
	}

	snap, err := l.LoadBestEffort(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Failures, len(l.fetches()))
	for w, got := range snap.Failures {
		assert.ErrorIs(t, got, boom, "widget %s", w)
	}
	assert.Nil(t, snap.Budgets)
	assert.Nil(t, snap.Health)
}

func TestLoadBestEffort_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(&fakeSource{}).LoadBestEffort(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
