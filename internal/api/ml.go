package api

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"

	"nexus/internal/domain"
)

// PredictCategory asks the backend classifier for a category. amount is optional.
func (c *Client) PredictCategory(ctx context.Context, description string, amount *decimal.Decimal) (domain.CategoryPrediction, error) {
	q := url.Values{"description": {description}}
	if amount != nil {
		q.Set("amount", amount.String())
	}
	var out domain.CategoryPrediction
	err := c.get(ctx, "/ml/predict-category", q, &out)
	return out, err
}

func (c *Client) ModelInfo(ctx context.Context) (domain.ModelInfo, error) {
	var out domain.ModelInfo
	err := c.get(ctx, "/ml/model-info", nil, &out)
	return out, err
}
