package api

import (
	"context"

	"nexus/internal/domain"
)

// ListRecurring returns active recurring payments ordered by next due date.
func (c *Client) ListRecurring(ctx context.Context) ([]domain.RecurringTransaction, error) {
	var out []domain.RecurringTransaction
	if err := c.get(ctx, "/recurring-transactions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
