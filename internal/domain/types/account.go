package types

import "github.com/shopspring/decimal"

// Account is a wallet, bank or mobile-money account owned by the user.
type Account struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	AccountType string          `json:"account_type"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	Color       string          `json:"color,omitempty"`
}

// NewAccount holds the parameters of POST /accounts.
type NewAccount struct {
	Name        string
	AccountType string
	Currency    string
	Balance     decimal.Decimal
	Color       string
}

// AccountCreated is the response of POST /accounts.
type AccountCreated struct {
	Message string  `json:"message"`
	Account Account `json:"account"`
}
