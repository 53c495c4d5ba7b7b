package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"nexus/internal/domain"
)

func (c *Client) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	var out []domain.Goal
	if err := c.get(ctx, "/goals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateGoal(ctx context.Context, g domain.NewGoal) (domain.Goal, error) {
	q := url.Values{}
	q.Set("title", g.Title)
	q.Set("target_amount", g.TargetAmount.String())
	q.Set("currency", g.Currency)
	q.Set("deadline", g.Deadline)
	if g.Category != "" {
		q.Set("category", g.Category)
	}
	if g.Priority != "" {
		q.Set("priority", g.Priority)
	}

	var out domain.GoalResponse
	if err := c.post(ctx, "/goals", q, nil, &out); err != nil {
		return domain.Goal{}, err
	}
	return out.Goal, nil
}

// UpdateGoalProgress sets the amount saved so far.
func (c *Client) UpdateGoalProgress(ctx context.Context, id int64, current decimal.Decimal) (domain.Goal, error) {
	q := url.Values{}
	q.Set("current_amount", current.String())

	var out domain.GoalResponse
	if err := c.put(ctx, "/goals/"+strconv.FormatInt(id, 10), q, &out); err != nil {
		return domain.Goal{}, err
	}
	return out.Goal, nil
}
