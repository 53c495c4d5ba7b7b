package api

import (
	"context"
	"net/url"

	"nexus/internal/domain"
)

func (c *Client) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var out []domain.Account
	if err := c.get(ctx, "/accounts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAccount opens an account. The backend takes its fields as query parameters.
func (c *Client) CreateAccount(ctx context.Context, acc domain.NewAccount) (domain.Account, error) {
	q := url.Values{}
	q.Set("name", acc.Name)
	q.Set("account_type", acc.AccountType)
	q.Set("currency", acc.Currency)
	q.Set("balance", acc.Balance.String())
	if acc.Color != "" {
		q.Set("color", acc.Color)
	}

	var out domain.AccountCreated
	if err := c.post(ctx, "/accounts", q, nil, &out); err != nil {
		return domain.Account{}, err
	}
	return out.Account, nil
}
