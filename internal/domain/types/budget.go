package types

import "github.com/shopspring/decimal"

// Budget statuses derived by the backend from progress and alert threshold.
const (
	BudgetOnTrack  = "on_track"
	BudgetWarning  = "warning"
	BudgetExceeded = "exceeded"
)

// Budget is a spending limit for one category over a period.
type Budget struct {
	ID          int64           `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	SpentAmount decimal.Decimal `json:"spent_amount"`
	Remaining   decimal.Decimal `json:"remaining"`
	Currency    string          `json:"currency"`
	Progress    float64         `json:"progress"`
	Status      string          `json:"status"`
	Period      string          `json:"period"`
}

// NewBudget holds the parameters of POST /budgets.
type NewBudget struct {
	Category string
	Amount   decimal.Decimal
	Currency string
	Period   string
}
