package commands

import (
	"fmt"
	"io"
	"sync"

	sessionsvc "nexus/internal/services/session"
)

// navigator turns route changes into hints on stderr. A CLI cannot switch
// views, so the hint tells the user which command to run next. Each route is
// announced at most once per invocation, and the route of the running
// command itself is never announced.
type navigator struct {
	w    io.Writer
	self string

	mu   sync.Mutex
	seen map[string]bool
}

func newNavigator(w io.Writer, self string) *navigator {
	return &navigator{w: w, self: self, seen: map[string]bool{}}
}

func (n *navigator) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if route == n.self || n.seen[route] {
		return
	}
	n.seen[route] = true

	switch route {
	case sessionsvc.RouteLogin:
		fmt.Fprintln(n.w, `Not signed in or session expired. Run "nexus login".`)
	case sessionsvc.RouteHome:
		fmt.Fprintln(n.w, `Already signed in. Run "nexus logout" first, or "nexus dashboard".`)
	default:
		fmt.Fprintf(n.w, "Continue at %s.\n", route)
	}
}
