// Package guard withholds protected screens until a session has been seen.
package guard

import (
	"context"
	"sync"

	"github.com/naveenspark/folio/internal/router"
)

// State is where a Guard is in its check.
type State int

const (
	Checking State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Checker reports whether a session is present.
type Checker func(ctx context.Context) bool

// Guard moves once from Checking to Authenticated or Unauthenticated.
// Unauthenticated redirects to the login route. Safe for concurrent use.
type Guard struct {
	check Checker
	nav   router.Navigator

	mu    sync.Mutex
	state State
}

// New returns a Guard in the Checking state.
func New(check Checker, nav router.Navigator) *Guard {
	return &Guard{check: check, nav: nav}
}

// State returns the current state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Check consults the checker if the guard is still Checking and returns the
// resulting state. Later calls return the settled state without rechecking.
func (g *Guard) Check(ctx context.Context) State {
	g.mu.Lock()
	if g.state != Checking {
		s := g.state
		g.mu.Unlock()
		return s
	}
	if g.check != nil && g.check(ctx) {
		g.state = Authenticated
	} else {
		g.state = Unauthenticated
	}
	s := g.state
	g.mu.Unlock()

	if s == Unauthenticated && g.nav != nil {
		g.nav.Navigate(router.Login)
	}
	return s
}

// Allows reports whether guarded content may be shown.
func (g *Guard) Allows() bool {
	return g.State() == Authenticated
}

// Render calls children only when the guard is Authenticated and reports
// whether it did.
func (g *Guard) Render(children func()) bool {
	if !g.Allows() {
		return false
	}
	children()
	return true
}
