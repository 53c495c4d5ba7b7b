package types

import "github.com/shopspring/decimal"

// MonthlyTrend is one month of aggregated spending.
type MonthlyTrend struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// RecurringExpense is a repeating payment detected by the backend.
type RecurringExpense struct {
	Description       string          `json:"description"`
	FrequencyDays     int             `json:"frequency_days"`
	AverageAmount     decimal.Decimal `json:"average_amount"`
	Occurrences       int             `json:"occurrences"`
	EstimatedNextDate string          `json:"estimated_next_date"`
}

// ChannelUsage summarises transactions through one payment channel.
type ChannelUsage struct {
	Count             int             `json:"count"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	PercentageOfTotal float64         `json:"percentage_of_total"`
}

// InformalSectorInsights summarises cash-economy spending.
type InformalSectorInsights struct {
	Count              int             `json:"count"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	AverageTransaction decimal.Decimal `json:"average_transaction"`
	CommonCategories   map[string]int  `json:"common_categories,omitempty"`
}

// LocalContext holds the region-specific part of the spending insights.
type LocalContext struct {
	CurrencyBreakdown map[string]decimal.Decimal `json:"currency_breakdown,omitempty"`
	MobileMoneyUsage  *ChannelUsage              `json:"mobile_money_usage,omitempty"`
	BankUsage         *ChannelUsage              `json:"bank_usage,omitempty"`
	InformalSector    *InformalSectorInsights    `json:"informal_sector_insights,omitempty"`
}

// SpendingInsights is the response of GET /analytics/spending-insights.
type SpendingInsights struct {
	MonthlyTrends       []MonthlyTrend             `json:"monthly_trends,omitempty"`
	CategoryBreakdown   map[string]decimal.Decimal `json:"category_breakdown,omitempty"`
	SpendingVelocity    float64                    `json:"spending_velocity"`
	AverageMonthlySpend decimal.Decimal            `json:"average_monthly_spend"`
	RecurringExpenses   []RecurringExpense         `json:"recurring_expenses,omitempty"`
	TopCategories       map[string]decimal.Decimal `json:"top_categories,omitempty"`
	TotalIncome         decimal.Decimal            `json:"total_income"`
	TotalExpenses       decimal.Decimal            `json:"total_expenses"`
	NetCashFlow         decimal.Decimal            `json:"net_cash_flow"`
	LocalContext        *LocalContext              `json:"zimbabwe_context,omitempty"`
}

// ForecastDay is one projected day.
type ForecastDay struct {
	Date              string          `json:"date"`
	ProjectedSpending decimal.Decimal `json:"projected_spending"`
	ProjectedBalance  decimal.Decimal `json:"projected_balance"`
	DayOfWeek         string          `json:"day_of_week"`
}

// CashFlowForecast is the response of GET /analytics/cash-flow-forecast.
type CashFlowForecast struct {
	Forecast                 []ForecastDay   `json:"forecast"`
	RiskAssessment           string          `json:"risk_assessment"`
	DaysUntilNegativeBalance *int            `json:"days_until_negative_balance"`
	AverageDailySpending     decimal.Decimal `json:"average_daily_spending"`
	InflationAdjustment      float64         `json:"inflation_adjustment"`
	CurrentBalance           decimal.Decimal `json:"current_balance"`
}

// FinancialHealth is the response of GET /analytics/financial-health.
type FinancialHealth struct {
	Score           float64            `json:"score"`
	Breakdown       map[string]float64 `json:"breakdown"`
	Recommendations []string           `json:"recommendations"`
}
