package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"

	"nexus/internal/domain"
)

// Manager is the single source of truth for "who is logged in".
//
// It holds:
//   - the bearer token and profile of the signed-in user, if any
//   - a status that starts Initializing until Restore has run
//   - the subscribers notified on every transition
//
// Persistence goes through a domain.CredentialStore; navigation after expiry
// through a domain.Navigator. A Manager is safe for concurrent use.
type Manager struct {
	auth  domain.AuthAPI
	creds domain.CredentialStore
	nav   domain.Navigator
	log   *slog.Logger
	now   func() time.Time

	mu     sync.Mutex
	state  domain.SessionState
	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(domain.SessionState)
}

// Option customises a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithClock overrides the time source used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// New returns a Manager in the Initializing state.
func New(
	auth domain.AuthAPI,
	creds domain.CredentialStore,
	nav domain.Navigator,
	opts ...Option,
) *Manager {
	m := &Manager{
		auth:  auth,
		creds: creds,
		nav:   nav,
		log:   slog.New(slog.DiscardHandler),
		now:   time.Now,
		state: domain.SessionState{Status: domain.SessionInitializing},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ domain.SessionService = (*Manager)(nil)

// State returns a snapshot of the current session.
func (m *Manager) State() domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return snapshot(m.state)
}

// Restore rebuilds the session from persisted credentials without touching
// the network.
//
// Steps:
//  1. Read the token and profile from the credential store.
//  2. Accept them only if the token is non-empty, not an expired JWT, and
//     the profile carries an ID and email.
//  3. Otherwise clear whatever partial material was found.
//
// Calling Restore again with unchanged storage yields the same state.
func (m *Manager) Restore(ctx context.Context) domain.SessionState {
	token, tokenOK, err := m.creds.LoadToken()
	if err != nil {
		m.log.Warn("read persisted token", "error", err)
		tokenOK = false
	}
	user, userOK, err := m.creds.LoadUser()
	if err != nil {
		m.log.Warn("read persisted user", "error", err)
		userOK = false
	}

	switch {
	case tokenOK && userOK && user.Valid() && !m.tokenExpired(token):
		m.log.Debug("session restored", "user_id", user.ID)
		return m.transition(domain.SessionState{
			Token:  token,
			User:   &user,
			Status: domain.SessionAuthenticated,
		})
	case tokenOK || userOK:
		m.log.Info("discarding unusable persisted session")
		if err := m.creds.ClearCredentials(); err != nil {
			m.log.Warn("clear credentials", "error", err)
		}
	}
	return m.transition(domain.SessionState{Status: domain.SessionUnauthenticated})
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// Tokens that do not parse as JWTs are treated as opaque and never expire
// locally; the backend's 401 is authoritative.
func (m *Manager) tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return false
	}
	return !claims.VerifyExpiresAt(m.now().Unix(), false)
}

// Login authenticates against the backend and persists the new session.
func (m *Manager) Login(ctx context.Context, email, password string) (domain.UserProfile, error) {
	resp, err := m.auth.Login(ctx, domain.LoginRequest{Email: email, Password: password})
	if err != nil {
		switch status := domain.HTTPStatus(err); {
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			return domain.UserProfile{}, domain.WrapInvalidCredentials(err)
		case domain.IsNetworkError(err):
			return domain.UserProfile{}, err
		default:
			return domain.UserProfile{}, fmt.Errorf("login: %w", err)
		}
	}

	user := domain.UserProfile{ID: resp.UserID, FullName: resp.FullName, Email: email}
	if err := m.establish(resp.AccessToken, user); err != nil {
		return domain.UserProfile{}, err
	}
	return user, nil
}

// Register creates an account and signs the new user in.
func (m *Manager) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserProfile, error) {
	resp, err := m.auth.Register(ctx, req)
	if err != nil {
		switch status := domain.HTTPStatus(err); {
		case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
			return domain.UserProfile{}, &domain.ValidationError{Messages: messages(err), Cause: err}
		case domain.IsNetworkError(err):
			return domain.UserProfile{}, err
		default:
			return domain.UserProfile{}, fmt.Errorf("register: %w", err)
		}
	}

	user := domain.UserProfile{
		ID:          resp.UserID,
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := m.establish(resp.AccessToken, user); err != nil {
		return domain.UserProfile{}, err
	}
	return user, nil
}

func (m *Manager) establish(token string, user domain.UserProfile) error {
	if token == "" {
		return errors.New("backend returned no access token")
	}
	if err := m.creds.SaveCredentials(token, user); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	m.log.Info("signed in", "user_id", user.ID)
	m.transition(domain.SessionState{
		Token:  token,
		User:   &user,
		Status: domain.SessionAuthenticated,
	})
	return nil
}

// Logout forgets the session locally. The backend is not contacted.
func (m *Manager) Logout() {
	if err := m.creds.ClearCredentials(); err != nil {
		m.log.Warn("clear credentials", "error", err)
	}
	m.log.Info("signed out")
	m.transition(domain.SessionState{Status: domain.SessionUnauthenticated})
}

// Expire is the session-expired handler for the HTTP client. Storage has
// already been cleared by the transport; Expire resets the in-memory state
// and sends the user to the login route.
func (m *Manager) Expire() {
	m.log.Info("session expired")
	m.transition(domain.SessionState{Status: domain.SessionUnauthenticated})
	if m.nav != nil {
		m.nav.Navigate(RouteLogin)
	}
}

// Subscribe registers fn for every state change. The returned function
// removes it and may be called more than once.
func (m *Manager) Subscribe(fn func(domain.SessionState)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, s := range m.subs {
				if s.id == id {
					m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// transition stores next and notifies subscribers outside the lock.
func (m *Manager) transition(next domain.SessionState) domain.SessionState {
	m.mu.Lock()
	m.state = next
	subs := make([]subscriber, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, s := range subs {
		s.fn(snapshot(next))
	}
	return snapshot(next)
}

func snapshot(s domain.SessionState) domain.SessionState {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

func messages(err error) []string {
	var withMessages interface{ Messages() []string }
	if errors.As(err, &withMessages) {
		if m := withMessages.Messages(); len(m) > 0 {
			return m
		}
	}
	return []string{err.Error()}
}
