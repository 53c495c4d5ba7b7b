package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"nexus/internal/domain"
	"nexus/internal/mockapi"
)

const loginHint = `Run "nexus login"`

type cli struct {
	t       *testing.T
	backend *mockapi.Server
	url     string
	home    string
}

type result struct {
	stdout string
	stderr string
	err    error
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	srv := mockapi.NewServer(mockapi.Config{Secret: "cli-test", BcryptCost: bcrypt.MinCost})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	t.Cleanup(viper.Reset)
	return &cli{t: t, backend: srv, url: ts.URL, home: t.TempDir()}
}

// run executes one nexus invocation against the test backend.
func (c *cli) run(stdin string, args ...string) result {
	c.t.Helper()
	viper.Reset()

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--home", c.home, "--api-url", c.url}, args...))

	err := execute(context.Background(), root)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func (c *cli) register() {
	c.t.Helper()
	r := c.run("", "register", "--email", "ann@example.com", "--name", "Ann Moyo", "--password", "pw")
	require.NoError(c.t, r.err, r.stderr)
}

func (c *cli) accounts() []domain.Account {
	c.t.Helper()
	r := c.run("", "accounts", "-o", "json")
	require.NoError(c.t, r.err, r.stderr)
	var accounts []domain.Account
	require.NoError(c.t, json.Unmarshal([]byte(r.stdout), &accounts))
	return accounts
}

func TestProtectedCommandRedirectsWhenSignedOut(t *testing.T) {
	c := newCLI(t)

	r := c.run("", "accounts")
	assert.ErrorIs(t, r.err, errRedirected)
	assert.Contains(t, r.stderr, loginHint)
	assert.NotContains(t, r.stderr, "Error:")
	assert.Empty(t, r.stdout)
}

func TestRegisterThenSessionPersists(t *testing.T) {
	c := newCLI(t)

	r := c.run("", "register", "--email", "ann@example.com", "--name", "Ann Moyo", "--password", "pw")
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, "Welcome, Ann Moyo")

	accounts := c.accounts()
	require.Len(t, accounts, 4)
	assert.Equal(t, "Cash USD", accounts[0].Name)

	r = c.run("", "whoami", "-o", "json")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, `"status": "authenticated"`)
	assert.Contains(t, r.stdout, "ann@example.com")
}

func TestPublicOnlyCommandRedirectsWhenSignedIn(t *testing.T) {
	c := newCLI(t)
	c.register()

	r := c.run("", "login", "--email", "ann@example.com", "--password", "pw")
	assert.ErrorIs(t, r.err, errRedirected)
	assert.Contains(t, r.stderr, "Already signed in")
}

func TestLoginWithWrongPassword(t *testing.T) {
	c := newCLI(t)
	c.register()
	require.NoError(t, c.run("", "logout").err)

	r := c.run("", "login", "--email", "ann@example.com", "--password", "nope")
	require.Error(t, r.err)
	assert.Contains(t, r.stderr, "Error: invalid email or password")
	assert.NotContains(t, r.stderr, loginHint)

	r = c.run("nope-again\n", "login", "--email", "ann@example.com")
	require.Error(t, r.err)

	r = c.run("pw\n", "login", "--email", "ann@example.com")
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, "Signed in as Ann Moyo")
}

func TestDuplicateRegistrationShowsBackendMessage(t *testing.T) {
	c := newCLI(t)
	c.register()
	require.NoError(t, c.run("", "logout").err)

	r := c.run("", "register", "--email", "ann@example.com", "--name", "Ann", "--password", "pw")
	require.Error(t, r.err)
	assert.Contains(t, r.stderr, "Error: Email already registered")
}

func TestSessionExpiryMidCommand(t *testing.T) {
	c := newCLI(t)
	c.register()
	c.backend.RevokeTokens()

	r := c.run("", "accounts")
	require.ErrorIs(t, r.err, domain.ErrSessionExpired)
	assert.Equal(t, 1, strings.Count(r.stderr, loginHint))
	assert.Contains(t, r.stderr, "Error: session expired")

	r = c.run("", "whoami", "-o", "json")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, `"status": "unauthenticated"`)

	r = c.run("", "budgets")
	assert.ErrorIs(t, r.err, errRedirected)
}

func TestTransactionsAddExportImport(t *testing.T) {
	c := newCLI(t)
	c.register()
	cash := c.accounts()[0]

	r := c.run("", "transactions", "add", "Uber ride home", "--amount", "-3.50", "--account", strconv.FormatInt(cash.ID, 10))
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, "Uber ride home")
	assert.Contains(t, r.stdout, "New balance")

	r = c.run("", "transactions", "export", "-f", "-")
	require.NoError(t, r.err, r.stderr)
	lines := strings.Split(strings.TrimSpace(r.stdout), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Uber ride home")

	csv := strings.Join([]string{
		"Date,Description,Category,Amount,Currency",
		"2024-06-01,Bread,food,-2,USD",
		"2024-06-02,Salary,income,100,USD",
	}, "\n")
	r = c.run(csv, "transactions", "import", "-", "-o", "json")
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, `"imported": 2`)

	var after domain.Account
	for _, a := range c.accounts() {
		if a.ID == cash.ID {
			after = a
		}
	}
	assert.Equal(t, "94.50", after.Balance.StringFixed(2))
}

func TestImportReportsPartialFailure(t *testing.T) {
	c := newCLI(t)
	c.register()

	csv := "Date,Description,Category,Amount,Currency\n2024-06-01,Bread,food,abc,USD\n2024-06-01,Milk,food,-1,USD\n"
	r := c.run(csv, "transactions", "import", "-")
	require.Error(t, r.err)
	assert.Contains(t, r.stderr, "Error: imported 1 of 2, failed 1")
}

func TestBudgetsLifecycle(t *testing.T) {
	c := newCLI(t)
	c.register()

	r := c.run("", "budgets", "add", "food", "--amount", "200", "-o", "json")
	require.NoError(t, r.err, r.stderr)
	var created []domain.Budget
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &created))
	require.Len(t, created, 1)
	assert.Equal(t, domain.BudgetOnTrack, created[0].Status)

	r = c.run("", "budgets", "export", "-f", "-")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "food")

	r = c.run("", "budgets", "delete", "999")
	require.Error(t, r.err)
	assert.Contains(t, r.stderr, "Budget not found")

	r = c.run("", "budgets", "delete", "x")
	assert.EqualError(t, r.err, `invalid id "x"`)
}

func TestDashboardAndAnalytics(t *testing.T) {
	c := newCLI(t)
	c.register()

	r := c.run("", "dashboard")
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, "EcoCash")
	assert.NotContains(t, r.stderr, "warning:")

	r = c.run("", "dashboard", "--strict", "-o", "json")
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, `"accounts"`)

	r = c.run("", "analytics", "forecast", "-o", "json")
	require.NoError(t, r.err, r.stderr)
	var f domain.CashFlowForecast
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &f))
	assert.Equal(t, "low", f.RiskAssessment)
	require.NotNil(t, f.DaysUntilNegativeBalance)
	assert.Equal(t, 30, *f.DaysUntilNegativeBalance)

	r = c.run("", "analytics", "report", "-f", "-", "--range", "30d")
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, `"NEXUS FINANCE AI - ANALYTICS REPORT"`)
	assert.Contains(t, r.stdout, `"Time Range: 30d"`)
}

func TestClassifierNeedsNoSession(t *testing.T) {
	c := newCLI(t)

	r := c.run("", "predict", "uber taxi", "-o", "json")
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, `"category": "transport"`)

	r = c.run("", "model-info", "-o", "yaml")
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, "model_type: Multinomial Naive Bayes")
}

func TestInvalidSettingsFailBeforeAnyRequest(t *testing.T) {
	c := newCLI(t)

	r := c.run("", "whoami", "-o", "xml")
	require.Error(t, r.err)
	assert.Contains(t, r.stderr, "output must be table, json or yaml")
}
