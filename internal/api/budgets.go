package api

import (
	"context"
	"net/url"
	"strconv"

	"nexus/internal/domain"
)

func (c *Client) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	var out []domain.Budget
	if err := c.get(ctx, "/budgets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBudget(ctx context.Context, b domain.NewBudget) (domain.Budget, error) {
	q := url.Values{}
	q.Set("category", b.Category)
	q.Set("amount", b.Amount.String())
	if b.Currency != "" {
		q.Set("currency", b.Currency)
	}
	if b.Period != "" {
		q.Set("period", b.Period)
	}

	var out struct {
		Budget domain.Budget `json:"budget"`
	}
	if err := c.post(ctx, "/budgets", q, nil, &out); err != nil {
		return domain.Budget{}, err
	}
	return out.Budget, nil
}

func (c *Client) DeleteBudget(ctx context.Context, id int64) error {
	return c.delete(ctx, "/budgets/"+strconv.FormatInt(id, 10))
}
