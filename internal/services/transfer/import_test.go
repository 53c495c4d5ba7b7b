package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus/internal/api"
	"nexus/internal/domain"
)

type fakeBackend struct {
	accounts []domain.Account
	created  []domain.NewTransaction
	budgets  []domain.NewBudget
	failOn   map[string]error
}

func (f *fakeBackend) ListAccounts(context.Context) ([]domain.Account, error) {
	return f.accounts, nil
}

func (f *fakeBackend) CreateTransaction(_ context.Context, tx domain.NewTransaction) (domain.TransactionCreated, error) {
	if err := f.failOn[tx.Description]; err != nil {
		return domain.TransactionCreated{}, err
	}
	f.created = append(f.created, tx)
	return domain.TransactionCreated{Transaction: domain.Transaction{ID: int64(len(f.created))}}, nil
}

func (f *fakeBackend) CreateBudget(_ context.Context, b domain.NewBudget) (domain.Budget, error) {
	if err := f.failOn[b.Category]; err != nil {
		return domain.Budget{}, err
	}
	f.budgets = append(f.budgets, b)
	return domain.Budget{ID: int64(len(f.budgets)), Category: b.Category}, nil
}

var defaultAccounts = []domain.Account{
	{ID: 1, Name: "Cash USD", Currency: "USD"},
	{ID: 4, Name: "ZiG Savings", Currency: "ZIG"},
}

func TestTransactionRoundTrip(t *testing.T) {
	original := []domain.Transaction{
		{AccountID: 1, Description: `Groceries, "OK" Mart`, Amount: decimal.RequireFromString("-45.20"), Currency: "USD", Category: "food", TransactionDate: day("2024-02-10")},
		{AccountID: 4, Description: "ZESA tokens", Amount: decimal.RequireFromString("-300"), Currency: "ZIG", Category: "utilities", TransactionDate: day("2024-02-11")},
		{AccountID: 1, Description: "Salary", Amount: decimal.NewFromInt(900), Currency: "USD", Category: "income", TransactionDate: day("2024-02-28")},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportTransactions(&buf, original, defaultAccounts))

	be := &fakeBackend{accounts: defaultAccounts}
	rep, err := NewTransactionImporter(be, be, nil).Import(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, Report{Imported: 3}, rep)
	require.Len(t, be.created, len(original))

	for i, tx := range original {
		got := be.created[i]
		assert.Equal(t, tx.Description, got.Description)
		assert.True(t, tx.Amount.Equal(got.Amount), "amount %s != %s", tx.Amount, got.Amount)
		assert.Equal(t, tx.Currency, got.Currency)
		assert.Equal(t, tx.AccountID, got.AccountID)
		assert.Equal(t, tx.TransactionDate.Date(), got.TransactionDate)
	}
}

func TestTransactionImport_PartialFailure(t *testing.T) {
	in := strings.Join([]string{
		"Date,Description,Category,Amount,Currency",
		"2024-01-01,Bread,food,-2,USD",
		"2024-01-02,Too short",
		"2024-01-03,Bad amount,food,abc,USD",
		`2024-01-04,"unterminated,food,-1,USD`,
		"2024-01-05,Rejected,food,-3,USD",
		"2024-01-06,Airtime,utilities,-5,EUR",
		"not-a-date,Milk,food,-1,USD",
	}, "\n")

	be := &fakeBackend{
		accounts: defaultAccounts,
		failOn:   map[string]error{"Rejected": errors.New("backend said no")},
	}
	rep, err := NewTransactionImporter(be, be, nil).Import(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Imported)
	assert.Equal(t, 5, rep.Failed)
	assert.Equal(t, 7, rep.Total())
	assert.True(t, rep.Partial())
	assert.False(t, rep.Interrupted)
	assert.Len(t, rep.Errors, 5)
	assert.Len(t, be.created, rep.Imported)

	// EUR has no account, so the first account is used.
	assert.Equal(t, int64(1), be.created[1].AccountID)
	assert.Equal(t, "EUR", be.created[1].Currency)

	lines := map[int]bool{}
	for _, e := range rep.Errors {
		assert.ErrorIs(t, e, domain.ErrImportRow)
		lines[e.Line] = true
	}
	assert.Equal(t, map[int]bool{3: true, 4: true, 5: true, 6: true, 8: true}, lines)
}

func TestTransactionImport_OversizedRowDoesNotAbort(t *testing.T) {
	in := "Date,Description,Category,Amount,Currency\n" +
		"2024-01-01,Bread,food,-2,USD\n" +
		"2024-01-02," + strings.Repeat("x", 2*maxLineSize) + ",food,-1,USD\n" +
		"2024-01-03,Milk,food,-1,USD\n"

	be := &fakeBackend{accounts: defaultAccounts}
	rep, err := NewTransactionImporter(be, be, nil).Import(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Imported)
	assert.Equal(t, 1, rep.Failed)
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, 3, rep.Errors[0].Line)
	assert.ErrorIs(t, rep.Errors[0], ErrLineTooLong)
}

func TestTransactionRoundTrip_MultilineDescription(t *testing.T) {
	original := []domain.Transaction{
		{AccountID: 1, Description: "Line one\r\nLine two\nthree", Amount: decimal.NewFromInt(-4), Currency: "USD", Category: "food", TransactionDate: day("2024-02-10")},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportTransactions(&buf, original, defaultAccounts))

	be := &fakeBackend{accounts: defaultAccounts}
	rep, err := NewTransactionImporter(be, be, nil).Import(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, Report{Imported: 1}, rep)
	require.Len(t, be.created, 1)
	assert.Equal(t, "Line one Line two three", be.created[0].Description)
}

func TestTransactionImport_NoAccounts(t *testing.T) {
	be := &fakeBackend{}
	rep, err := NewTransactionImporter(be, be, nil).Import(context.Background(),
		strings.NewReader("h\n2024-01-01,Bread,food,-2,USD\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Failed)
	assert.Zero(t, rep.Imported)
}

func TestTransactionImport_EmptyFile(t *testing.T) {
	be := &fakeBackend{accounts: defaultAccounts}
	_, err := NewTransactionImporter(be, be, nil).Import(context.Background(), strings.NewReader("Date,Description\n"))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestTransactionImport_StopsOnSessionExpiry(t *testing.T) {
	var rows []string
	rows = append(rows, "Date,Description,Category,Amount,Currency")
	for i := 0; i < 5; i++ {
		rows = append(rows, fmt.Sprintf("2024-01-0%d,row%d,food,-1,USD", i+1, i))
	}
	be := &fakeBackend{
		accounts: defaultAccounts,
		failOn:   map[string]error{"row2": &api.ResponseError{StatusCode: 401}},
	}

	rep, err := NewTransactionImporter(be, be, nil).Import(context.Background(), strings.NewReader(strings.Join(rows, "\n")))
	require.NoError(t, err)

	assert.True(t, rep.Interrupted)
	assert.Equal(t, 2, rep.Imported)
	assert.Equal(t, 1, rep.Failed)
	assert.Equal(t, 2, rep.Skipped)
	assert.Equal(t, 5, rep.Total())
	assert.Contains(t, rep.String(), "interrupted")
}

func TestTransactionImport_CancelledContext(t *testing.T) {
	be := &fakeBackend{accounts: defaultAccounts}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := NewTransactionImporter(be, be, nil).Import(ctx,
		strings.NewReader("h\n2024-01-01,a,food,-1,USD\n2024-01-02,b,food,-1,USD\n"))
	require.NoError(t, err)
	assert.True(t, rep.Interrupted)
	assert.Equal(t, 2, rep.Skipped)
	assert.Empty(t, be.created)
}

func TestBudgetRoundTrip(t *testing.T) {
	budgets := []domain.Budget{
		{Category: "food", Amount: decimal.NewFromInt(200), Currency: "USD", Period: "monthly", Status: domain.BudgetOnTrack},
		{Category: "transport", Amount: decimal.RequireFromString("55.5"), Currency: "ZIG", Period: "weekly", Status: domain.BudgetExceeded},
	}
	var buf bytes.Buffer
	require.NoError(t, ExportBudgets(&buf, budgets))

	be := &fakeBackend{failOn: map[string]error{}}
	rep, err := NewBudgetImporter(be, nil).Import(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Imported)
	require.Len(t, be.budgets, 2)
	assert.Equal(t, "transport", be.budgets[1].Category)
	assert.Equal(t, "ZIG", be.budgets[1].Currency)
	assert.True(t, be.budgets[1].Amount.Equal(decimal.RequireFromString("55.5")))
	assert.Equal(t, "weekly", be.budgets[1].Period)
}

func TestBudgetImport_Defaults(t *testing.T) {
	be := &fakeBackend{}
	rep, err := NewBudgetImporter(be, nil).Import(context.Background(),
		strings.NewReader("Category,Amount\nentertainment,40\n,10\nrent,-5\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Imported)
	assert.Equal(t, 2, rep.Failed)
	got := be.budgets[0]
	assert.Equal(t, "entertainment", got.Category)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, domain.DefaultCurrency, got.Currency)
	assert.Equal(t, "monthly", got.Period)
}
