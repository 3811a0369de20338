package tui

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/naveenspark/folio/internal/auth"
	"github.com/naveenspark/folio/internal/router"
	"github.com/naveenspark/folio/internal/session"
	"github.com/naveenspark/folio/internal/stubapi"
	"github.com/naveenspark/folio/pkg/client"
)

const testSiteURL = "https://example.dev"

type testEnv struct {
	store   *session.Store
	history *router.History
	client  *client.Client
	auth    *auth.Service
}

// newTestEnv wires a seeded stub backend to a real client, store and auth service.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	stub := stubapi.New(stubapi.Config{Username: "admin", Password: "secret", Seed: true}, zap.NewNop())
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)

	store := session.NewStore(session.NewMemoryStorage(), zap.NewNop())
	env := &testEnv{
		store:   store,
		history: router.NewHistory(router.Dashboard),
		client:  client.New(srv.URL, client.WithTokenSource(store.AuthToken)),
	}
	env.auth = auth.New(context.Background(), env.client, store, env.history, zap.NewNop())
	t.Cleanup(env.auth.Wait)
	return env
}

func (e *testEnv) newApp() App {
	a := NewApp(context.Background(), Options{
		Client:  e.client,
		Auth:    e.auth,
		Store:   e.store,
		History: e.history,
		SiteURL: testSiteURL,
	})
	model, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return model.(App)
}

// loggedInApp returns an App that has signed in and loaded the dashboard.
func (e *testEnv) loggedInApp(t *testing.T) App {
	t.Helper()
	if res := e.auth.Login(context.Background(), "admin", "secret"); !res.Success {
		t.Fatalf("login failed: %s", res.Message)
	}
	a := e.newApp()
	a = run(a, a.checkSession())
	if a.route() != router.Dashboard {
		t.Fatalf("route = %q, want %q", a.route(), router.Dashboard)
	}
	return a
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends k and runs whatever commands it triggers.
func press(a App, k string) App {
	model, cmd := a.Update(key(k))
	return run(model.(App), cmd)
}

// typeText sends each rune of s as a key press.
func typeText(a App, s string) App {
	for _, r := range s {
		a = press(a, string(r))
	}
	return a
}

// run executes cmd synchronously and feeds its message back, following
// batches and chained commands.
func run(a App, cmd tea.Cmd) App {
	for depth := 0; cmd != nil && depth < 10; depth++ {
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				a = run(a, c)
			}
			return a
		}
		if msg == nil {
			return a
		}
		var model tea.Model
		model, cmd = a.Update(msg)
		a = model.(App)
	}
	return a
}

func assertContains(t *testing.T, view, want string) {
	t.Helper()
	if !strings.Contains(view, want) {
		t.Errorf("view does not contain %q:\n%s", want, view)
	}
}
