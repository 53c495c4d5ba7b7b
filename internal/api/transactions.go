package api

import (
	"context"
	"net/url"
	"strconv"

	"nexus/internal/domain"
)

// ListTransactions returns the newest transactions first.
func (c *Client) ListTransactions(ctx context.Context, f domain.TransactionFilter) ([]domain.Transaction, error) {
	q := url.Values{}
	if f.StartDate != "" {
		q.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("end_date", f.EndDate)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}

	var out []domain.Transaction
	if err := c.get(ctx, "/transactions", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTransaction records one transaction; the backend assigns its category.
func (c *Client) CreateTransaction(ctx context.Context, tx domain.NewTransaction) (domain.TransactionCreated, error) {
	q := url.Values{}
	q.Set("description", tx.Description)
	q.Set("amount", tx.Amount.String())
	q.Set("account_id", strconv.FormatInt(tx.AccountID, 10))
	if tx.Currency != "" {
		q.Set("currency", tx.Currency)
	}
	if tx.TransactionDate != "" {
		q.Set("transaction_date", tx.TransactionDate)
	}

	var out domain.TransactionCreated
	if err := c.post(ctx, "/transactions", q, nil, &out); err != nil {
		return domain.TransactionCreated{}, err
	}
	return out, nil
}
