package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nexus/internal/domain"
)

func TestGuards(t *testing.T) {
	user := &domain.UserProfile{ID: 1, Email: "a@b.c"}
	cases := []struct {
		name       string
		state      domain.SessionState
		protected  Decision
		publicOnly Decision
	}{
		{
			name:       "initializing",
			state:      domain.SessionState{Status: domain.SessionInitializing},
			protected:  Decision{Outcome: Loading},
			publicOnly: Decision{Outcome: Render},
		},
		{
			name:       "authenticated",
			state:      domain.SessionState{Token: "t", User: user, Status: domain.SessionAuthenticated},
			protected:  Decision{Outcome: Render},
			publicOnly: Decision{Outcome: Redirect, Route: RouteHome},
		},
		{
			name:       "unauthenticated",
			state:      domain.SessionState{Status: domain.SessionUnauthenticated},
			protected:  Decision{Outcome: Redirect, Route: RouteLogin},
			publicOnly: Decision{Outcome: Render},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, po := Protected(tc.state), PublicOnly(tc.state)
			assert.Equal(t, tc.protected, p)
			assert.Equal(t, tc.publicOnly, po)

			// A settled session is rendered by exactly one of the two guards.
			if !tc.state.IsLoading() {
				assert.NotEqual(t, p.Outcome == Render, po.Outcome == Render)
			}
		})
	}
}
