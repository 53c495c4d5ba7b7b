package interfaces

import (
	"context"

	domaintypes "nexus/internal/domain/types"
)

// Navigator moves the user to another route. The HTTP layer never calls it
// directly; it is reached through the session-expired callback.
type Navigator interface {
	Navigate(route string)
}

// SessionService owns the client-side authentication state.
type SessionService interface {
	State() domaintypes.SessionState
	Restore(ctx context.Context) domaintypes.SessionState
	Login(ctx context.Context, email, password string) (domaintypes.UserProfile, error)
	Register(ctx context.Context, req domaintypes.RegisterRequest) (domaintypes.UserProfile, error)
	Logout()
	Subscribe(fn func(domaintypes.SessionState)) (unsubscribe func())
}
