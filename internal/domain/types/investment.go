package types

import "github.com/shopspring/decimal"

// Investment is a holding with its computed return.
type Investment struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Type               string          `json:"type"`
	AmountInvested     decimal.Decimal `json:"amount_invested"`
	CurrentValue       decimal.Decimal `json:"current_value"`
	GainLoss           decimal.Decimal `json:"gain_loss"`
	GainLossPercentage float64         `json:"gain_loss_percentage"`
	Currency           string          `json:"currency"`
	RiskLevel          string          `json:"risk_level"`
}

// InvestmentSummary aggregates every holding.
type InvestmentSummary struct {
	TotalInvested         decimal.Decimal `json:"total_invested"`
	TotalCurrentValue     decimal.Decimal `json:"total_current_value"`
	TotalGainLoss         decimal.Decimal `json:"total_gain_loss"`
	TotalReturnPercentage float64         `json:"total_return_percentage"`
}

// Portfolio is the response of GET /investments.
type Portfolio struct {
	Investments []Investment      `json:"investments"`
	Summary     InvestmentSummary `json:"summary"`
}

// NewInvestment holds the parameters of POST /investments.
type NewInvestment struct {
	Name           string
	InvestmentType string
	AmountInvested decimal.Decimal
	CurrentValue   decimal.Decimal
	Currency       string
	PurchaseDate   string
	ExpectedReturn *float64
	RiskLevel      string
	Notes          string
}
