package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	domaintypes "nexus/internal/domain/types"
)

// AuthAPI exchanges credentials for a bearer token.
type AuthAPI interface {
	Login(ctx context.Context, req domaintypes.LoginRequest) (domaintypes.AuthResponse, error)
	Register(ctx context.Context, req domaintypes.RegisterRequest) (domaintypes.AuthResponse, error)
}

// AccountAPI lists and opens accounts.
type AccountAPI interface {
	ListAccounts(ctx context.Context) ([]domaintypes.Account, error)
	CreateAccount(ctx context.Context, acc domaintypes.NewAccount) (domaintypes.Account, error)
}

// TransactionCreator submits a single transaction.
type TransactionCreator interface {
	CreateTransaction(
		ctx context.Context,
		tx domaintypes.NewTransaction,
	) (domaintypes.TransactionCreated, error)
}

// TransactionAPI lists and records transactions.
type TransactionAPI interface {
	TransactionCreator
	ListTransactions(
		ctx context.Context,
		filter domaintypes.TransactionFilter,
	) ([]domaintypes.Transaction, error)
}

// BudgetCreator submits a single budget.
type BudgetCreator interface {
	CreateBudget(ctx context.Context, b domaintypes.NewBudget) (domaintypes.Budget, error)
}

// BudgetAPI manages budgets.
type BudgetAPI interface {
	BudgetCreator
	ListBudgets(ctx context.Context) ([]domaintypes.Budget, error)
	DeleteBudget(ctx context.Context, id int64) error
}

// GoalAPI manages financial goals.
type GoalAPI interface {
	ListGoals(ctx context.Context) ([]domaintypes.Goal, error)
	CreateGoal(ctx context.Context, g domaintypes.NewGoal) (domaintypes.Goal, error)
	UpdateGoalProgress(ctx context.Context, id int64, current decimal.Decimal) (domaintypes.Goal, error)
}

// InvestmentAPI manages investment holdings.
type InvestmentAPI interface {
	ListInvestments(ctx context.Context) (domaintypes.Portfolio, error)
	CreateInvestment(ctx context.Context, inv domaintypes.NewInvestment) (domaintypes.Investment, error)
	DeleteInvestment(ctx context.Context, id int64) error
}

// AnalyticsAPI reads the backend's computed reports.
type AnalyticsAPI interface {
	SpendingInsights(ctx context.Context) (domaintypes.SpendingInsights, error)
	CashFlowForecast(ctx context.Context, inflationRate float64) (domaintypes.CashFlowForecast, error)
	FinancialHealth(ctx context.Context) (domaintypes.FinancialHealth, error)
}

// PredictionAPI talks to the backend's category classifier.
type PredictionAPI interface {
	PredictCategory(
		ctx context.Context,
		description string,
		amount *decimal.Decimal,
	) (domaintypes.CategoryPrediction, error)
	ModelInfo(ctx context.Context) (domaintypes.ModelInfo, error)
}

// NotificationAPI reads and acknowledges alerts.
type NotificationAPI interface {
	ListNotifications(ctx context.Context, unreadOnly bool) (domaintypes.NotificationList, error)
	MarkNotificationRead(ctx context.Context, id int64) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// RecurringAPI lists scheduled payments.
type RecurringAPI interface {
	ListRecurring(ctx context.Context) ([]domaintypes.RecurringTransaction, error)
}

// FinanceAPI is the full backend surface.
type FinanceAPI interface {
	AuthAPI
	AccountAPI
	TransactionAPI
	BudgetAPI
	GoalAPI
	InvestmentAPI
	AnalyticsAPI
	PredictionAPI
	NotificationAPI
	RecurringAPI
}
