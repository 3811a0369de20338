package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/folio/internal/guard"
	"github.com/naveenspark/folio/internal/router"
)

func TestAppStartsChecking(t *testing.T) {
	env := newTestEnv(t)
	a := env.newApp()

	if got := a.guard.State(); got != guard.Checking {
		t.Fatalf("guard state = %v, want checking", got)
	}
	assertContains(t, a.View(), "checking session")
}

func TestAppUnauthenticatedRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)
	a := env.newApp()

	a = run(a, a.checkSession())

	if got := a.guard.State(); got != guard.Unauthenticated {
		t.Fatalf("guard state = %v, want unauthenticated", got)
	}
	if got := env.history.Current(); got != router.Login {
		t.Errorf("route = %q, want %q", got, router.Login)
	}
	if a.dashboard.stats != nil || a.dashboard.err != "" {
		t.Error("dashboard loaded without a session")
	}
	view := a.View()
	assertContains(t, view, "Sign in")
	if containsAny(view, "Overview", "Dashboard") {
		t.Errorf("guarded content rendered:\n%s", view)
	}
}

func TestAppLoginFlow(t *testing.T) {
	env := newTestEnv(t)
	a := env.newApp()
	a = run(a, a.checkSession())

	a = typeText(a, "admin")
	a = press(a, "tab")
	a = typeText(a, "secret")
	a = press(a, "enter")

	if !env.store.IsAuthenticated(context.Background()) {
		t.Fatal("session not stored after login")
	}
	if got := a.guard.State(); got != guard.Authenticated {
		t.Fatalf("guard state = %v, want authenticated", got)
	}
	if got := a.route(); got != router.Dashboard {
		t.Fatalf("route = %q, want %q", got, router.Dashboard)
	}
	if a.dashboard.stats == nil {
		t.Fatal("dashboard stats not loaded")
	}
	if a.claims == nil {
		t.Error("claims not parsed from the access token")
	}
	view := a.View()
	assertContains(t, view, "Overview")
	assertContains(t, view, "signed in as")
	assertContains(t, view, "left")
}

func TestAppLoginFailureShowsMessage(t *testing.T) {
	env := newTestEnv(t)
	a := env.newApp()
	a = run(a, a.checkSession())

	a = typeText(a, "admin")
	a = press(a, "enter") // moves to password
	a = typeText(a, "wrong")
	a = press(a, "enter")

	if env.store.IsAuthenticated(context.Background()) {
		t.Fatal("failed login stored a session")
	}
	if a.route() != router.Login {
		t.Errorf("route = %q, want login", a.route())
	}
	if a.login.password != "" {
		t.Error("password kept after failed login")
	}
	assertContains(t, a.View(), "Invalid credentials")
}

func TestAppLoginRequiresBothFields(t *testing.T) {
	env := newTestEnv(t)
	a := env.newApp()
	a = run(a, a.checkSession())

	a = press(a, "tab")
	a = press(a, "enter")
	assertContains(t, a.View(), "Username and password are required")
}

func TestAppQuitKeysIgnoredWhileTyping(t *testing.T) {
	env := newTestEnv(t)
	a := env.newApp()
	a = run(a, a.checkSession())

	model, cmd := a.Update(key("q"))
	a = model.(App)
	if cmd != nil {
		t.Fatal("q on the login form should type, not quit")
	}
	if a.login.username != "q" {
		t.Errorf("username = %q, want %q", a.login.username, "q")
	}
}

func TestAppTabSwitching(t *testing.T) {
	tests := []struct {
		key  string
		want router.Route
	}{
		{"2", router.Resources},
		{"3", router.Contacts},
		{"4", router.Settings},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			env := newTestEnv(t)
			a := env.loggedInApp(t)
			a = press(a, tc.key)
			if got := a.route(); got != tc.want {
				t.Errorf("after key %q: route = %q, want %q", tc.key, got, tc.want)
			}
		})
	}
}

func TestAppLogout(t *testing.T) {
	env := newTestEnv(t)
	a := env.loggedInApp(t)
	oldCtx := a.ctx

	a = press(a, "L")

	if env.store.IsAuthenticated(context.Background()) {
		t.Error("session still stored after logout")
	}
	if a.route() != router.Login {
		t.Errorf("route = %q, want login", a.route())
	}
	if oldCtx.Err() == nil {
		t.Error("admin screens' context not cancelled on logout")
	}
	if a.ctx.Err() != nil {
		t.Error("new context already cancelled")
	}
	if a.guard.State() != guard.Checking {
		t.Errorf("guard state = %v, want a fresh checking guard", a.guard.State())
	}
	assertContains(t, a.View(), "Sign in")

	env.auth.Wait()
	if a.route() != router.Login {
		t.Error("backend logout changed the route")
	}
}

func TestAppStaleGuardMessageIgnored(t *testing.T) {
	env := newTestEnv(t)
	a := env.loggedInApp(t)
	a = press(a, "L")

	stale := guardCheckedMsg{guard: guard.New(nil, nil), state: guard.Authenticated}
	model, cmd := a.Update(stale)
	a = model.(App)
	if cmd != nil || a.route() != router.Login {
		t.Error("a message from a replaced guard was acted on")
	}
}

func TestAppQuitCancelsContext(t *testing.T) {
	env := newTestEnv(t)
	a := env.loggedInApp(t)

	_, cmd := a.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command on 'q', got nil")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
	if a.ctx.Err() == nil {
		t.Error("context not cancelled on quit")
	}
}

func TestAppHelpOverlay(t *testing.T) {
	env := newTestEnv(t)
	a := env.loggedInApp(t)

	var opened string
	prev := openURL
	openURL = func(u string) error { opened = u; return nil }
	t.Cleanup(func() { openURL = prev })

	a = press(a, "h")
	if !a.helpOpen {
		t.Fatal("help overlay not open")
	}
	assertContains(t, a.View(), "folio login")

	a = press(a, "j")
	a = press(a, "enter")
	if opened != testSiteURL+"/blog" {
		t.Errorf("opened %q, want %q", opened, testSiteURL+"/blog")
	}

	a = press(a, "esc")
	if a.helpOpen {
		t.Error("help overlay still open after esc")
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
