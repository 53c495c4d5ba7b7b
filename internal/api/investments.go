package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"nexus/internal/domain"
)

// ListInvestments returns every holding together with the portfolio summary.
func (c *Client) ListInvestments(ctx context.Context) (domain.Portfolio, error) {
	var out domain.Portfolio
	if err := c.get(ctx, "/investments", nil, &out); err != nil {
		return domain.Portfolio{}, err
	}
	return out, nil
}

func (c *Client) CreateInvestment(ctx context.Context, inv domain.NewInvestment) (domain.Investment, error) {
	q := url.Values{}
	q.Set("name", inv.Name)
	q.Set("investment_type", inv.InvestmentType)
	q.Set("amount_invested", inv.AmountInvested.String())
	q.Set("current_value", inv.CurrentValue.String())
	if inv.Currency != "" {
		q.Set("currency", inv.Currency)
	}
	if inv.PurchaseDate != "" {
		q.Set("purchase_date", inv.PurchaseDate)
	}
	if inv.ExpectedReturn != nil {
		q.Set("expected_return", strconv.FormatFloat(*inv.ExpectedReturn, 'f', -1, 64))
	}
	if inv.RiskLevel != "" {
		q.Set("risk_level", inv.RiskLevel)
	}
	if inv.Notes != "" {
		q.Set("notes", inv.Notes)
	}

	// The create response names the type field investment_type.
	var out struct {
		Investment struct {
			domain.Investment
			InvestmentType string `json:"investment_type"`
		} `json:"investment"`
	}
	if err := c.post(ctx, "/investments", q, nil, &out); err != nil {
		return domain.Investment{}, err
	}
	created := out.Investment.Investment
	if created.Type == "" {
		created.Type = out.Investment.InvestmentType
	}
	created.GainLoss = created.CurrentValue.Sub(created.AmountInvested)
	if created.AmountInvested.IsPositive() {
		created.GainLossPercentage, _ = created.GainLoss.Div(created.AmountInvested).
			Mul(decimal.NewFromInt(100)).Round(2).Float64()
	}
	return created, nil
}

func (c *Client) DeleteInvestment(ctx context.Context, id int64) error {
	return c.delete(ctx, "/investments/"+strconv.FormatInt(id, 10))
}
