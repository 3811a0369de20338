package guard

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/naveenspark/folio/internal/router"
	"github.com/naveenspark/folio/internal/session"
)

func TestGuard_StartsChecking(t *testing.T) {
	g := New(func(context.Context) bool { return true }, nil)
	assert.Equal(t, Checking, g.State())
	assert.False(t, g.Allows())
	assert.False(t, g.Render(func() { t.Fatal("rendered while checking") }))
}

func TestGuard_UnauthenticatedRedirectsWithoutRendering(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), zap.NewNop())
	hist := router.NewHistory(router.Dashboard)
	g := New(store.IsAuthenticated, hist)

	var seen []State
	seen = append(seen, g.State())
	seen = append(seen, g.Check(context.Background()))

	assert.Equal(t, []State{Checking, Unauthenticated}, seen)
	assert.Equal(t, router.Login, hist.Current())
	assert.Equal(t, 1, hist.Count())
	assert.False(t, g.Render(func() { t.Fatal("guarded content rendered") }))
}

func TestGuard_Authenticated(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), zap.NewNop())
	ctx := context.Background()
	_ = store.SetAuthToken(ctx, "tok", "")
	hist := router.NewHistory(router.Dashboard)
	g := New(store.IsAuthenticated, hist)

	assert.Equal(t, Authenticated, g.Check(ctx))
	assert.Zero(t, hist.Count())

	rendered := false
	assert.True(t, g.Render(func() { rendered = true }))
	assert.True(t, rendered)
}

func TestGuard_SettledStateIsTerminal(t *testing.T) {
	authed := false
	calls := 0
	hist := router.NewHistory(router.Dashboard)
	g := New(func(context.Context) bool { calls++; return authed }, hist)

	assert.Equal(t, Unauthenticated, g.Check(context.Background()))
	authed = true
	assert.Equal(t, Unauthenticated, g.Check(context.Background()))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, hist.Count())
}

func TestGuard_ConcurrentCheckRedirectsOnce(t *testing.T) {
	hist := router.NewHistory(router.Dashboard)
	g := New(nil, hist)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Check(context.Background())
		}()
	}
	wg.Wait()
	assert.Equal(t, Unauthenticated, g.State())
	assert.Equal(t, 1, hist.Count())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "checking", Checking.String())
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "unknown", State(9).String())
}
