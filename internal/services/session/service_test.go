package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus/internal/api"
	"nexus/internal/domain"
	"nexus/internal/store"
)

type fakeAuth struct {
	calls    int
	login    func(domain.LoginRequest) (domain.AuthResponse, error)
	register func(domain.RegisterRequest) (domain.AuthResponse, error)
}

func (f *fakeAuth) Login(_ context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	f.calls++
	return f.login(req)
}

func (f *fakeAuth) Register(_ context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	f.calls++
	return f.register(req)
}

type recordingNav struct{ routes []string }

func (n *recordingNav) Navigate(route string) { n.routes = append(n.routes, route) }

var (
	fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	alice    = domain.UserProfile{ID: 7, FullName: "Alice Moyo", Email: "alice@example.com"}
)

func newManager(t *testing.T, auth *fakeAuth) (*Manager, *store.Credentials, *recordingNav) {
	t.Helper()
	creds := store.NewCredentials(store.NewMemoryKV())
	nav := &recordingNav{}
	if auth == nil {
		auth = &fakeAuth{}
	}
	return New(auth, creds, nav, WithClock(func() time.Time { return fixedNow })), creds, nav
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice@example.com",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestManager_StartsInitializing(t *testing.T) {
	m, _, _ := newManager(t, nil)
	assert.True(t, m.State().IsLoading())
	assert.False(t, m.State().IsAuthenticated())
}

func TestRestore_Idempotent(t *testing.T) {
	auth := &fakeAuth{}
	m, creds, _ := newManager(t, auth)
	require.NoError(t, creds.SaveCredentials("opaque-token", alice))

	first := m.Restore(context.Background())
	second := m.Restore(context.Background())

	assert.Equal(t, domain.SessionAuthenticated, first.Status)
	assert.Equal(t, first, second)
	assert.Equal(t, "opaque-token", second.Token)
	assert.Equal(t, alice, *second.User)
	assert.Zero(t, auth.calls, "restore must not call the backend")
}

func TestRestore_EmptyStorage(t *testing.T) {
	m, _, _ := newManager(t, nil)
	st := m.Restore(context.Background())
	assert.Equal(t, domain.SessionUnauthenticated, st.Status)
	assert.Nil(t, st.User)
}

func TestRestore_JWTExpiry(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, creds, _ := newManager(t, nil)
		require.NoError(t, creds.SaveCredentials(signed(t, fixedNow.Add(time.Hour)), alice))
		assert.True(t, m.Restore(context.Background()).IsAuthenticated())
	})
	t.Run("expired", func(t *testing.T) {
		m, creds, _ := newManager(t, nil)
		require.NoError(t, creds.SaveCredentials(signed(t, fixedNow.Add(-time.Minute)), alice))

		assert.Equal(t, domain.SessionUnauthenticated, m.Restore(context.Background()).Status)
		_, ok, _ := creds.LoadToken()
		assert.False(t, ok, "expired token should be cleared")
	})
}

func TestRestore_IncompleteMaterialIsCleared(t *testing.T) {
	m, creds, _ := newManager(t, nil)
	require.NoError(t, creds.SaveCredentials("tok", domain.UserProfile{FullName: "no id"}))

	assert.Equal(t, domain.SessionUnauthenticated, m.Restore(context.Background()).Status)
	_, ok, _ := creds.LoadUser()
	assert.False(t, ok)
}

func TestLogin_Success(t *testing.T) {
	auth := &fakeAuth{login: func(req domain.LoginRequest) (domain.AuthResponse, error) {
		assert.Equal(t, "alice@example.com", req.Email)
		return domain.AuthResponse{AccessToken: "tok-a", TokenType: "bearer", UserID: 7, FullName: "Alice Moyo"}, nil
	}}
	m, creds, _ := newManager(t, auth)
	m.Restore(context.Background())

	var seen []domain.SessionStatus
	m.Subscribe(func(s domain.SessionState) { seen = append(seen, s.Status) })

	user, err := m.Login(context.Background(), "alice@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, alice, user)
	assert.True(t, m.State().IsAuthenticated())
	assert.Equal(t, []domain.SessionStatus{domain.SessionAuthenticated}, seen)

	tok, ok, _ := creds.LoadToken()
	assert.True(t, ok)
	assert.Equal(t, "tok-a", tok)
}

func TestLogin_RejectedCredentials(t *testing.T) {
	auth := &fakeAuth{login: func(domain.LoginRequest) (domain.AuthResponse, error) {
		return domain.AuthResponse{}, &api.ResponseError{StatusCode: http.StatusUnauthorized, Detail: "Invalid email or password"}
	}}
	m, _, _ := newManager(t, auth)
	m.Restore(context.Background())

	_, err := m.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
	assert.False(t, m.State().IsAuthenticated())
}

func TestLogin_NetworkError(t *testing.T) {
	auth := &fakeAuth{login: func(domain.LoginRequest) (domain.AuthResponse, error) {
		return domain.AuthResponse{}, domain.WrapNetwork("POST /login", errors.New("connection refused"))
	}}
	m, _, _ := newManager(t, auth)

	_, err := m.Login(context.Background(), "a@b.c", "pw")
	assert.True(t, domain.IsNetworkError(err))
	assert.False(t, errors.Is(err, domain.ErrInvalidCredentials))
}

func TestRegister_ValidationError(t *testing.T) {
	auth := &fakeAuth{register: func(domain.RegisterRequest) (domain.AuthResponse, error) {
		return domain.AuthResponse{}, &api.ResponseError{StatusCode: http.StatusBadRequest, Detail: "Email already registered"}
	}}
	m, _, _ := newManager(t, auth)

	_, err := m.Register(context.Background(), domain.RegisterRequest{Email: "alice@example.com", Password: "pw", FullName: "Alice"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Email already registered"}, verr.Messages)
	assert.True(t, domain.IsValidationError(err))
}

func TestRegister_Success(t *testing.T) {
	auth := &fakeAuth{register: func(req domain.RegisterRequest) (domain.AuthResponse, error) {
		return domain.AuthResponse{Message: "User registered successfully", UserID: 7, AccessToken: "tok-r", TokenType: "bearer"}, nil
	}}
	m, _, _ := newManager(t, auth)

	user, err := m.Register(context.Background(), domain.RegisterRequest{
		Email: "alice@example.com", Password: "pw", FullName: "Alice Moyo",
	})
	require.NoError(t, err)
	assert.Equal(t, alice, user)
	assert.Equal(t, "tok-r", m.State().Token)
}

func TestLogout_ClearsEverything(t *testing.T) {
	m, creds, nav := newManager(t, nil)
	require.NoError(t, creds.SaveCredentials("tok", alice))
	m.Restore(context.Background())

	m.Logout()

	assert.Equal(t, domain.SessionUnauthenticated, m.State().Status)
	_, ok, _ := creds.LoadToken()
	assert.False(t, ok)
	assert.Empty(t, nav.routes)
}

func TestExpire_NavigatesToLogin(t *testing.T) {
	m, creds, nav := newManager(t, nil)
	require.NoError(t, creds.SaveCredentials("tok", alice))
	m.Restore(context.Background())

	m.Expire()

	assert.Equal(t, domain.SessionUnauthenticated, m.State().Status)
	assert.Equal(t, []string{RouteLogin}, nav.routes)
	assert.Equal(t, Decision{Outcome: Redirect, Route: RouteLogin}, Protected(m.State()))
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	m, _, _ := newManager(t, nil)
	calls := 0
	unsubscribe := m.Subscribe(func(domain.SessionState) { calls++ })

	m.Logout()
	unsubscribe()
	unsubscribe()
	m.Logout()

	assert.Equal(t, 1, calls)
}

func TestState_ReturnsCopy(t *testing.T) {
	m, creds, _ := newManager(t, nil)
	require.NoError(t, creds.SaveCredentials("tok", alice))
	m.Restore(context.Background())

	st := m.State()
	st.User.Email = "mutated@example.com"
	assert.Equal(t, alice.Email, m.State().User.Email)
}
