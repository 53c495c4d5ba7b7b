package types

// SessionStatus is the state of the client-side session machine.
type SessionStatus int

const (
	// SessionInitializing is the start state, before persisted credentials were read.
	SessionInitializing SessionStatus = iota
	// SessionAuthenticated means a token and profile are held.
	SessionAuthenticated
	// SessionUnauthenticated means there is no usable session.
	SessionUnauthenticated
)

// String returns the lower-case name of the status.
func (s SessionStatus) String() string {
	switch s {
	case SessionInitializing:
		return "initializing"
	case SessionAuthenticated:
		return "authenticated"
	case SessionUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// SessionState is a snapshot of the session manager.
type SessionState struct {
	Token  string
	User   *UserProfile
	Status SessionStatus
}

// IsAuthenticated reports whether a logged-in user is present.
func (s SessionState) IsAuthenticated() bool { return s.Status == SessionAuthenticated }

// IsLoading reports whether persisted credentials are still being read.
func (s SessionState) IsLoading() bool { return s.Status == SessionInitializing }
