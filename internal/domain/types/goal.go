package types

import "github.com/shopspring/decimal"

// Goal is a savings or purchase target.
type Goal struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Currency      string          `json:"currency"`
	Deadline      Timestamp       `json:"deadline"`
	Category      string          `json:"category"`
	Priority      string          `json:"priority"`
}

// Progress returns the completion percentage, 0 when the target is not positive.
func (g Goal) Progress() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	pct, _ := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// NewGoal holds the parameters of POST /goals.
type NewGoal struct {
	Title        string
	TargetAmount decimal.Decimal
	Currency     string
	Deadline     string
	Category     string
	Priority     string
}

// GoalResponse wraps a created or updated goal.
type GoalResponse struct {
	Message string `json:"message"`
	Goal    Goal   `json:"goal"`
}
