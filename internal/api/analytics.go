package api

import (
	"context"
	"net/url"
	"strconv"

	"nexus/internal/domain"
)

func (c *Client) SpendingInsights(ctx context.Context) (domain.SpendingInsights, error) {
	var out domain.SpendingInsights
	err := c.get(ctx, "/analytics/spending-insights", nil, &out)
	return out, err
}

// CashFlowForecast projects balances forward; inflationRate <= 0 uses the backend default.
func (c *Client) CashFlowForecast(ctx context.Context, inflationRate float64) (domain.CashFlowForecast, error) {
	var q url.Values
	if inflationRate > 0 {
		q = url.Values{"inflation_rate": {strconv.FormatFloat(inflationRate, 'f', -1, 64)}}
	}
	var out domain.CashFlowForecast
	err := c.get(ctx, "/analytics/cash-flow-forecast", q, &out)
	return out, err
}

func (c *Client) FinancialHealth(ctx context.Context) (domain.FinancialHealth, error) {
	var out domain.FinancialHealth
	err := c.get(ctx, "/analytics/financial-health", nil, &out)
	return out, err
}
