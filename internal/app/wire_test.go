package app

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"nexus/internal/config"
	"nexus/internal/domain"
	"nexus/internal/mockapi"
	sessionsvc "nexus/internal/services/session"
)

type recordingNav struct {
	mu     sync.Mutex
	routes []string
}

func (n *recordingNav) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *recordingNav) Routes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.routes...)
}

func newBackend(t *testing.T) (*mockapi.Server, string) {
	t.Helper()
	srv := mockapi.NewServer(mockapi.Config{Secret: "wire-test", BcryptCost: bcrypt.MinCost})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts.URL
}

func newWire(t *testing.T, cfg Config) *Wire {
	t.Helper()
	w, err := NewWire(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestWire_LoginThenExpiry(t *testing.T) {
	backend, url := newBackend(t)
	nav := &recordingNav{}
	w := newWire(t, Config{Home: t.TempDir(), APIURL: url, Navigator: nav})
	ctx := context.Background()

	require.Equal(t, domain.SessionUnauthenticated, w.Session.Restore(ctx).Status)
	assert.Equal(t, sessionsvc.Redirect, sessionsvc.Protected(w.Session.State()).Outcome)

	user, err := w.Session.Register(ctx, domain.RegisterRequest{
		Email: "rudo@example.com", Password: "pass-1234", FullName: "Rudo Chikore",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rudo Chikore", user.FullName)

	w.Session.Logout()
	user, err = w.Session.Login(ctx, "rudo@example.com", "pass-1234")
	require.NoError(t, err)
	assert.Equal(t, "Rudo Chikore", user.FullName)

	st := w.Session.State()
	require.True(t, st.IsAuthenticated())
	assert.Equal(t, sessionsvc.Render, sessionsvc.Protected(st).Outcome)
	assert.Equal(t, sessionsvc.Redirect, sessionsvc.PublicOnly(st).Outcome)

	snap, err := w.Dashboard.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Accounts, 4)

	backend.RevokeTokens()
	_, err = w.API.ListAccounts(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSessionExpired))

	st = w.Session.State()
	assert.Equal(t, domain.SessionUnauthenticated, st.Status)
	assert.Nil(t, st.User)
	assert.Equal(t, []string{sessionsvc.RouteLogin}, nav.Routes())

	d := sessionsvc.Protected(st)
	assert.Equal(t, sessionsvc.Redirect, d.Outcome)
	assert.Equal(t, sessionsvc.RouteLogin, d.Route)

	_, ok, err := w.Credentials.LoadToken()
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = w.Credentials.LoadUser()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWire_BadCredentials(t *testing.T) {
	_, url := newBackend(t)
	w := newWire(t, Config{Home: t.TempDir(), APIURL: url})
	ctx := context.Background()
	w.Session.Restore(ctx)

	_, err := w.Session.Login(ctx, "ghost@example.com", "nope")
	require.Error(t, err)
	assert.True(t, domain.IsAuthenticationError(err))
	assert.Equal(t, domain.SessionUnauthenticated, w.Session.State().Status)
}

func TestWire_DuplicateRegistrationIsValidationError(t *testing.T) {
	_, url := newBackend(t)
	w := newWire(t, Config{Home: t.TempDir(), APIURL: url})
	ctx := context.Background()

	req := domain.RegisterRequest{Email: "dup@example.com", Password: "pw", FullName: "Dup"}
	_, err := w.Session.Register(ctx, req)
	require.NoError(t, err)

	_, err = w.Session.Register(ctx, req)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Email already registered"}, verr.Messages)
}

func TestWire_SessionSurvivesRestart(t *testing.T) {
	for _, tc := range []struct {
		name       string
		store      string
		passphrase string
	}{
		{"file", config.StoreFile, ""},
		{"sealed file", config.StoreFile, "correct horse"},
		{"sqlite", config.StoreSQLite, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, url := newBackend(t)
			home := t.TempDir()
			cfg := Config{Home: home, APIURL: url, Store: tc.store, Passphrase: tc.passphrase}
			ctx := context.Background()

			first, err := NewWire(cfg)
			require.NoError(t, err)
			_, err = first.Session.Register(ctx, domain.RegisterRequest{
				Email: "persist@example.com", Password: "pw", FullName: "Persist",
			})
			require.NoError(t, err)
			require.NoError(t, first.Close())

			second := newWire(t, cfg)
			st := second.Session.Restore(ctx)
			require.True(t, st.IsAuthenticated())
			assert.Equal(t, "persist@example.com", st.User.Email)

			accounts, err := second.API.ListAccounts(ctx)
			require.NoError(t, err)
			assert.Len(t, accounts, 4)
		})
	}
}

func TestWire_ImportThroughBackend(t *testing.T) {
	_, url := newBackend(t)
	w := newWire(t, Config{Home: t.TempDir(), APIURL: url})
	ctx := context.Background()
	_, err := w.Session.Register(ctx, domain.RegisterRequest{Email: "imp@example.com", Password: "pw", FullName: "Imp"})
	require.NoError(t, err)

	csv := strings.Join([]string{
		"Date,Description,Category,Amount,Currency,Account",
		`2024-05-02,"OK Zimbabwe, Borrowdale",groceries,-42.10,USD,Cash USD`,
		`2024-05-03,"Salary",salary,900.00,USD,Cash USD`,
		`2024-05-04,"Broken row",other,not-a-number,USD,Cash USD`,
	}, "\n")

	report, err := w.Transactions.Import(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 1, report.Failed)

	accounts, err := w.API.ListAccounts(ctx)
	require.NoError(t, err)
	assert.True(t, accounts[0].Balance.Equal(decimal.RequireFromString("857.90")))
}
