package types

import "github.com/shopspring/decimal"

// Transaction is a single income (positive) or expense (negative) entry.
type Transaction struct {
	ID              int64           `json:"id"`
	AccountID       int64           `json:"account_id"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Category        string          `json:"category"`
	TransactionDate Timestamp       `json:"transaction_date"`
}

// TransactionFilter narrows GET /transactions. Zero fields are omitted.
type TransactionFilter struct {
	StartDate string
	EndDate   string
	Category  string
	Limit     int
}

// NewTransaction holds the parameters of POST /transactions.
type NewTransaction struct {
	AccountID       int64
	Description     string
	Amount          decimal.Decimal
	Currency        string
	TransactionDate string
}

// CategoryPrediction is the backend classifier's guess for a description.
type CategoryPrediction struct {
	Category         string             `json:"category"`
	Confidence       float64            `json:"confidence"`
	AllProbabilities map[string]float64 `json:"all_probabilities,omitempty"`
}

// TransactionCreated is the response of POST /transactions.
type TransactionCreated struct {
	Message            string              `json:"message"`
	Transaction        Transaction         `json:"transaction"`
	CategoryPrediction *CategoryPrediction `json:"category_prediction,omitempty"`
	NewBalance         decimal.Decimal     `json:"new_balance"`
}

// ModelInfo describes the backend's category classifier.
type ModelInfo struct {
	IsTrained  bool     `json:"is_trained"`
	Categories []string `json:"categories"`
	ModelType  string   `json:"model_type"`
}

// RecurringTransaction is a scheduled bill or payment.
type RecurringTransaction struct {
	ID           int64           `json:"id"`
	AccountID    int64           `json:"account_id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Category     string          `json:"category"`
	Frequency    string          `json:"frequency"`
	NextDueDate  Timestamp       `json:"next_due_date"`
	ReminderDays int             `json:"reminder_days"`
	AutoPay      bool            `json:"auto_pay"`
}

