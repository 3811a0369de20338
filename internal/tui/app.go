// Package tui is the terminal back office: a bubbletea program that signs the
// user in and then lets them browse and manage the portfolio content.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/naveenspark/folio/internal/auth"
	"github.com/naveenspark/folio/internal/guard"
	"github.com/naveenspark/folio/internal/router"
	"github.com/naveenspark/folio/internal/session"
	"github.com/naveenspark/folio/pkg/client"
)

// Options are the collaborators the App drives.
type Options struct {
	Client  *client.Client
	Auth    *auth.Service
	Store   *session.Store
	History *router.History
	SiteURL string
	Log     *zap.Logger
}

// guardCheckedMsg carries the settled state of the guard that produced it.
type guardCheckedMsg struct {
	guard  *guard.Guard
	state  guard.State
	claims *session.Claims
}

// tabs in display order.
var tabs = []struct {
	key   string
	name  string
	route router.Route
}{
	{"1", "Dashboard", router.Dashboard},
	{"2", "Content", router.Resources},
	{"3", "Contacts", router.Contacts},
	{"4", "Settings", router.Settings},
}

// App is the root Bubbletea model.
//
// The current screen is the history's current route. Protected routes render
// only once the guard has settled on Authenticated. Every load runs under the
// App's context, which is cancelled on quit and on logout.
type App struct {
	opts   Options
	log    *zap.Logger
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	guard  *guard.Guard
	claims *session.Claims

	login     loginModel
	dashboard dashboardModel
	content   contentModel
	contacts  contactsModel
	settings  settingsModel

	helpOpen   bool
	helpCursor int
	width      int
	height     int
	frame      int // logo shimmer animation frame
}

// NewApp creates a new TUI application. parent bounds every request it makes.
func NewApp(parent context.Context, opts Options) App {
	if opts.History == nil {
		opts.History = router.NewHistory(router.Dashboard)
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	a := App{opts: opts, log: opts.Log, parent: parent}
	a.mount()
	return a
}

// mount (re)creates the screen models under a fresh context and guard.
func (a *App) mount() {
	a.ctx, a.cancel = context.WithCancel(a.parent)
	a.guard = guard.New(a.sessionPresent, a.opts.History)
	a.claims = nil
	a.login = newLoginModel(a.ctx, a.opts.Auth)
	a.dashboard = newDashboardModel(a.ctx, a.opts.Client)
	a.content = newContentModel(a.ctx, a.opts.Client, a.opts.SiteURL)
	a.contacts = newContactsModel(a.ctx, a.opts.Client)
	a.settings = newSettingsModel(a.ctx, a.opts.Client)
	if a.width > 0 {
		a.resize()
	}
}

func (a App) sessionPresent(context.Context) bool {
	return a.opts.Auth != nil && a.opts.Auth.IsAuthenticated()
}

func (a App) route() router.Route {
	return a.opts.History.Current()
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.checkSession())
}

func (a App) checkSession() tea.Cmd {
	g, ctx, store := a.guard, a.ctx, a.opts.Store
	return func() tea.Msg {
		state := g.Check(ctx)
		msg := guardCheckedMsg{guard: g, state: state}
		if state == guard.Authenticated {
			if tok := store.AuthToken(ctx); tok != "" {
				msg.claims, _ = session.ParseClaims(tok)
			}
		}
		return msg
	}
}

// enter navigates to route and starts its load.
func (a App) enter(route router.Route) (App, tea.Cmd) {
	a.opts.History.Navigate(route)
	switch route {
	case router.Dashboard:
		a.dashboard.loading = true
		return a, a.dashboard.Init()
	case router.Resources:
		a.content.loading = true
		return a, a.content.Init()
	case router.Contacts:
		a.contacts.loading = true
		return a, a.contacts.Init()
	case router.Settings:
		a.settings.loading = true
		return a, a.settings.Init()
	}
	return a, nil
}

// logout clears the session, tears down every admin screen and leaves the
// App on the login screen.
func (a App) logout() App {
	a.log.Info("logout requested")
	if a.opts.Auth != nil {
		a.opts.Auth.Logout(a.ctx)
	} else {
		a.opts.History.Navigate(router.Login)
	}
	a.cancel()
	a.mount()
	return a
}

func (a *App) resize() {
	// Chrome: header(2) + tabs(1) + blank(1) + help(1) = 5 lines
	bodyMsg := tea.WindowSizeMsg{Width: a.width, Height: a.height - 5}
	a.login, _ = a.login.Update(bodyMsg)
	a.dashboard, _ = a.dashboard.Update(bodyMsg)
	a.content, _ = a.content.Update(bodyMsg)
	a.contacts, _ = a.contacts.Update(bodyMsg)
	a.settings, _ = a.settings.Update(bodyMsg)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case guardCheckedMsg:
		if msg.guard != a.guard {
			return a, nil
		}
		if msg.state != guard.Authenticated {
			return a, nil
		}
		a.claims = msg.claims
		route := a.route()
		if !route.Protected() {
			route = router.Dashboard
		}
		return a.enter(route)

	case loginResultMsg:
		a.login, _ = a.login.Update(msg)
		if !msg.result.Success {
			return a, nil
		}
		a.guard = guard.New(a.sessionPresent, a.opts.History)
		a.opts.History.Navigate(router.Dashboard)
		return a, a.checkSession()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.cancel()
			return a, tea.Quit
		}
		if a.helpOpen {
			return a.updateHelp(msg)
		}
		if !a.isEditing() {
			switch msg.String() {
			case "q":
				a.cancel()
				return a, tea.Quit
			case "h":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			}
			if a.guard.Allows() {
				for _, t := range tabs {
					if msg.String() == t.key {
						if a.route() == t.route {
							return a, nil
						}
						return a.enter(t.route)
					}
				}
				if msg.String() == "L" {
					return a.logout(), nil
				}
			}
		}
	}

	var cmd tea.Cmd
	switch {
	case a.route() == router.Login:
		a.login, cmd = a.login.Update(msg)
	case !a.guard.Allows():
	case a.route() == router.Dashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case a.route() == router.Resources:
		a.content, cmd = a.content.Update(msg)
	case a.route() == router.Contacts:
		a.contacts, cmd = a.contacts.Update(msg)
	case a.route() == router.Settings:
		a.settings, cmd = a.settings.Update(msg)
	}
	return a, cmd
}

func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "esc":
		a.helpOpen = false
	case "q":
		a.cancel()
		return a, tea.Quit
	case "j", "down":
		if a.helpCursor < len(helpItems)-1 {
			a.helpCursor++
		}
	case "k", "up":
		if a.helpCursor > 0 {
			a.helpCursor--
		}
	case "enter":
		target := strings.TrimRight(a.opts.SiteURL, "/") + helpItems[a.helpCursor].path
		return a, func() tea.Msg {
			return openResultMsg{url: target, err: openURL(target)}
		}
	}
	return a, nil
}

func (a App) isEditing() bool {
	return a.route() == router.Login
}

func (a App) View() string {
	header := centerLine(renderShimmerLogo("FOLIO", a.frame), a.width)
	header += "\n" + centerLine(a.sessionLine(), a.width)

	var tabBar, body, help string
	switch {
	case a.helpOpen:
		body = helpView(a.opts.SiteURL, a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	case a.route() == router.Login:
		body = a.login.View()
		help = " " + a.login.helpKeys()
	case a.guard.State() == guard.Checking:
		body = "\n " + dimStyle.Render("checking session…") + "\n"
		help = " " + helpEntry("q", "quit")
	case !a.guard.Allows():
		body = "\n " + dimStyle.Render("redirecting to sign in…") + "\n"
	default:
		tabBar = a.tabBar()
		common := "  " + helpEntry("1-4", "tabs") + "  " + helpEntry("L", "logout") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
		switch a.route() {
		case router.Dashboard:
			d, ok := a.expiry()
			body = a.dashboard.View(a.opts.Auth.User(), d, ok)
			help = " " + a.dashboard.helpKeys() + common
		case router.Resources:
			body = a.content.View()
			help = " " + a.content.helpKeys() + common
		case router.Contacts:
			body = a.contacts.View()
			help = " " + a.contacts.helpKeys() + common
		case router.Settings:
			body = a.settings.View()
			help = " " + a.settings.helpKeys() + common
		}
	}

	// Chrome budget: header(2) + tabs(1) + blank(1) + help(1) = 5 lines + body
	body = strings.TrimRight(truncateToHeight(body, a.height-5), "\n")
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", header, tabBar, body, help)
}

// expiry returns how long the access token has left, if it says.
func (a App) expiry() (time.Duration, bool) {
	return a.claims.ExpiresIn(time.Now())
}

func (a App) sessionLine() string {
	if !a.guard.Allows() || a.opts.Auth == nil {
		return ""
	}
	u := a.opts.Auth.User()
	if u == nil {
		return metaStyle.Render("signed in")
	}
	parts := []string{u.Username}
	if u.Role != "" {
		parts = append(parts, u.Role)
	}
	if d, ok := a.expiry(); ok {
		parts = append(parts, formatRemaining(d))
	}
	return metaStyle.Render(strings.Join(parts, " · "))
}

func (a App) tabBar() string {
	if a.width <= 0 {
		var parts []string
		for _, t := range tabs {
			parts = append(parts, t.key+" "+t.name)
		}
		return " " + strings.Join(parts, "  ")
	}
	colWidth := a.width / len(tabs)
	var b strings.Builder
	for _, t := range tabs {
		var label string
		if t.route == a.route() {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := max(0, (colWidth-labelWidth)/2)
		rightPad := max(0, colWidth-labelWidth-leftPad)
		b.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	return b.String()
}

func centerLine(s string, width int) string {
	pad := max(0, (width-lipgloss.Width(s))/2)
	return strings.Repeat(" ", pad) + s
}
