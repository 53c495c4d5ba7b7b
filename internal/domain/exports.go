package domain

import (
	interfaces "nexus/internal/domain/interfaces"
	types "nexus/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Timestamp              = types.Timestamp
	Message                = types.Message
	SessionStatus          = types.SessionStatus
	SessionState           = types.SessionState
	UserProfile            = types.UserProfile
	LoginRequest           = types.LoginRequest
	RegisterRequest        = types.RegisterRequest
	AuthResponse           = types.AuthResponse
	Account                = types.Account
	NewAccount             = types.NewAccount
	AccountCreated         = types.AccountCreated
	Transaction            = types.Transaction
	TransactionFilter      = types.TransactionFilter
	NewTransaction         = types.NewTransaction
	TransactionCreated     = types.TransactionCreated
	CategoryPrediction     = types.CategoryPrediction
	ModelInfo              = types.ModelInfo
	RecurringTransaction   = types.RecurringTransaction
	Budget                 = types.Budget
	NewBudget              = types.NewBudget
	Goal                   = types.Goal
	NewGoal                = types.NewGoal
	GoalResponse           = types.GoalResponse
	Investment             = types.Investment
	InvestmentSummary      = types.InvestmentSummary
	Portfolio              = types.Portfolio
	NewInvestment          = types.NewInvestment
	MonthlyTrend           = types.MonthlyTrend
	RecurringExpense       = types.RecurringExpense
	ChannelUsage           = types.ChannelUsage
	InformalSectorInsights = types.InformalSectorInsights
	LocalContext           = types.LocalContext
	SpendingInsights       = types.SpendingInsights
	ForecastDay            = types.ForecastDay
	CashFlowForecast       = types.CashFlowForecast
	FinancialHealth        = types.FinancialHealth
	Notification           = types.Notification
	NotificationList       = types.NotificationList
)

// Constants re-exported from the types subpackage.
const (
	SessionInitializing    = types.SessionInitializing
	SessionAuthenticated   = types.SessionAuthenticated
	SessionUnauthenticated = types.SessionUnauthenticated
	DefaultCurrency        = types.DefaultCurrency
	BudgetOnTrack          = types.BudgetOnTrack
	BudgetWarning          = types.BudgetWarning
	BudgetExceeded         = types.BudgetExceeded
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyValueStore      = interfaces.KeyValueStore
	TokenStore         = interfaces.TokenStore
	CredentialStore    = interfaces.CredentialStore
	Navigator          = interfaces.Navigator
	SessionService     = interfaces.SessionService
	AuthAPI            = interfaces.AuthAPI
	AccountAPI         = interfaces.AccountAPI
	TransactionCreator = interfaces.TransactionCreator
	TransactionAPI     = interfaces.TransactionAPI
	BudgetCreator      = interfaces.BudgetCreator
	BudgetAPI          = interfaces.BudgetAPI
	GoalAPI            = interfaces.GoalAPI
	InvestmentAPI      = interfaces.InvestmentAPI
	AnalyticsAPI       = interfaces.AnalyticsAPI
	PredictionAPI      = interfaces.PredictionAPI
	NotificationAPI    = interfaces.NotificationAPI
	RecurringAPI       = interfaces.RecurringAPI
	FinanceAPI         = interfaces.FinanceAPI
)

// Timestamp helpers, re-exported.
var (
	NewTimestamp   = types.NewTimestamp
	ParseTimestamp = types.ParseTimestamp
)
