package session

import "nexus/internal/domain"

// Routes the guards redirect to.
const (
	RouteLogin    = "/login"
	RouteRegister = "/register"
	RouteHome     = "/dashboard"
)

// Outcome is what a guarded view should do.
type Outcome int

const (
	Render Outcome = iota
	Loading
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case Loading:
		return "loading"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is a guard result. Route is set only for Redirect.
type Decision struct {
	Outcome Outcome
	Route   string
}

// Guard maps a session snapshot to a Decision.
type Guard func(domain.SessionState) Decision

// Protected admits authenticated users, shows a loading placeholder while the
// session is initializing and redirects everyone else to the login route.
func Protected(s domain.SessionState) Decision {
	switch s.Status {
	case domain.SessionAuthenticated:
		return Decision{Outcome: Render}
	case domain.SessionInitializing:
		return Decision{Outcome: Loading}
	default:
		return Decision{Outcome: Redirect, Route: RouteLogin}
	}
}

// PublicOnly admits visitors and sends authenticated users to the dashboard.
func PublicOnly(s domain.SessionState) Decision {
	if s.Status == domain.SessionAuthenticated {
		return Decision{Outcome: Redirect, Route: RouteHome}
	}
	return Decision{Outcome: Render}
}
