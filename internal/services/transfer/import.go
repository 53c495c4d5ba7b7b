package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"nexus/internal/domain"
)

// ErrNoData is returned when the input has no data rows after the header.
var ErrNoData = errors.New("CSV file is empty or invalid")

// Report summarises an import run.
type Report struct {
	Imported int
	Failed   int
	// Skipped counts rows never attempted because the run was interrupted.
	Skipped     int
	Errors      []*domain.RowError
	Interrupted bool
}

// Total is the number of data rows seen.
func (r Report) Total() int { return r.Imported + r.Failed + r.Skipped }

// Partial reports whether some rows were not applied.
func (r Report) Partial() bool { return r.Failed > 0 || r.Skipped > 0 }

func (r Report) String() string {
	s := fmt.Sprintf("imported %d of %d", r.Imported, r.Total())
	if r.Failed > 0 {
		s += fmt.Sprintf(", failed %d", r.Failed)
	}
	if r.Interrupted {
		s += fmt.Sprintf(", interrupted with %d not attempted", r.Skipped)
	}
	return s
}

// AccountLister is the account lookup an importer needs.
type AccountLister interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// applyFunc submits one row.
type applyFunc func(ctx context.Context, row Row) error

// run applies rows in order. Parse errors count as failures. A session
// expiry or a cancelled context stops the run; the rows left are skipped.
func run(ctx context.Context, log *slog.Logger, res Result, apply applyFunc) Report {
	rep := Report{}
	for _, perr := range res.Errors {
		rep.Failed++
		rep.Errors = append(rep.Errors, perr)
	}

	for i, row := range res.Rows {
		if err := ctx.Err(); err != nil {
			rep.Interrupted = true
			rep.Skipped = len(res.Rows) - i
			break
		}

		err := apply(ctx, row)
		if err == nil {
			rep.Imported++
			continue
		}

		rep.Failed++
		rep.Errors = append(rep.Errors, &domain.RowError{Line: row.Line, Err: err})
		log.Debug("import row failed", "line", row.Line, "error", err)

		if errors.Is(err, domain.ErrSessionExpired) || ctx.Err() != nil {
			rep.Interrupted = true
			rep.Skipped = len(res.Rows) - i - 1
			break
		}
	}

	log.Info("import finished",
		"imported", rep.Imported,
		"failed", rep.Failed,
		"skipped", rep.Skipped,
		"interrupted", rep.Interrupted,
	)
	return rep
}

func parseInput(r io.Reader) (Result, error) {
	res, err := Parse(r)
	if err != nil {
		return Result{}, err
	}
	if res.Lines() == 0 {
		return Result{}, ErrNoData
	}
	return res, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, errors.New("missing amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// TransactionImporter reads the transaction export format back in.
//
// Each row is [date, description, category, amount, currency, ...]. Rows
// with fewer than four fields are rejected. The target account is the
// first one in the row's currency (default USD), falling back to the first
// account. Category is ignored; the backend assigns it.
type TransactionImporter struct {
	accounts AccountLister
	txs      domain.TransactionCreator
	log      *slog.Logger
}

// NewTransactionImporter returns an importer. log may be nil.
func NewTransactionImporter(accounts AccountLister, txs domain.TransactionCreator, log *slog.Logger) *TransactionImporter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &TransactionImporter{accounts: accounts, txs: txs, log: log}
}

// Import parses r and creates one transaction per data row.
func (im *TransactionImporter) Import(ctx context.Context, r io.Reader) (Report, error) {
	res, err := parseInput(r)
	if err != nil {
		return Report{}, err
	}
	accounts, err := im.accounts.ListAccounts(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load accounts: %w", err)
	}

	return run(ctx, im.log, res, func(ctx context.Context, row Row) error {
		if len(row.Fields) < 4 {
			return fmt.Errorf("expected at least 4 fields, got %d", len(row.Fields))
		}
		date := row.Field(0)
		if date != "" {
			if _, err := domain.ParseTimestamp(date); err != nil {
				return fmt.Errorf("invalid date %q", date)
			}
		}
		amount, err := parseAmount(row.Fields[3])
		if err != nil {
			return err
		}
		currency := row.Field(4)
		if currency == "" {
			currency = domain.DefaultCurrency
		}
		acc, ok := accountFor(accounts, currency)
		if !ok {
			return errors.New("no account available")
		}

		_, err = im.txs.CreateTransaction(ctx, domain.NewTransaction{
			AccountID:       acc.ID,
			Description:     row.Field(1),
			Amount:          amount,
			Currency:        currency,
			TransactionDate: date,
		})
		return err
	}), nil
}

func accountFor(accounts []domain.Account, currency string) (domain.Account, bool) {
	for _, a := range accounts {
		if strings.EqualFold(a.Currency, currency) {
			return a, true
		}
	}
	if len(accounts) > 0 {
		return accounts[0], true
	}
	return domain.Account{}, false
}

// BudgetImporter reads the budget export format back in. Only category,
// amount, currency and period are used; spent, progress and status are
// derived by the backend.
type BudgetImporter struct {
	budgets domain.BudgetCreator
	log     *slog.Logger
}

// NewBudgetImporter returns an importer. log may be nil.
func NewBudgetImporter(budgets domain.BudgetCreator, log *slog.Logger) *BudgetImporter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &BudgetImporter{budgets: budgets, log: log}
}

// Import parses r and creates one budget per data row.
func (im *BudgetImporter) Import(ctx context.Context, r io.Reader) (Report, error) {
	res, err := parseInput(r)
	if err != nil {
		return Report{}, err
	}

	return run(ctx, im.log, res, func(ctx context.Context, row Row) error {
		category := row.Field(0)
		if category == "" {
			return errors.New("missing category")
		}
		amount, err := parseAmount(row.Field(1))
		if err != nil {
			return err
		}
		if !amount.IsPositive() {
			return fmt.Errorf("budget amount must be positive, got %s", amount)
		}
		currency := row.Field(4)
		if currency == "" {
			currency = domain.DefaultCurrency
		}
		period := row.Field(7)
		if period == "" {
			period = "monthly"
		}

		_, err = im.budgets.CreateBudget(ctx, domain.NewBudget{
			Category: category,
			Amount:   amount,
			Currency: currency,
			Period:   period,
		})
		return err
	}), nil
}
