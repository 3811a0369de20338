package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/folio/pkg/client"
	"github.com/naveenspark/folio/pkg/domain"
)

// -- messages --

type statsLoadedMsg struct {
	stats *domain.DashboardStats
	err   error
}

// -- model --

type dashboardModel struct {
	ctx     context.Context
	client  *client.Client
	stats   *domain.DashboardStats
	loading bool
	err     string
	width   int
}

func newDashboardModel(ctx context.Context, c *client.Client) dashboardModel {
	return dashboardModel{ctx: ctx, client: c, loading: true}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.loadStats()
}

func (m dashboardModel) loadStats() tea.Cmd {
	ctx, c := m.ctx, m.client
	return func() tea.Msg {
		resp, err := c.DashboardStats(ctx)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		if err := resp.Err(); err != nil {
			return statsLoadedMsg{err: err}
		}
		stats, _ := resp.Value()
		return statsLoadedMsg{stats: &stats}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case statsLoadedMsg:
		if isCancelled(msg.err) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = errText(msg.err)
		} else {
			m.stats = msg.stats
			m.err = ""
		}

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadStats()
		}
	}
	return m, nil
}

// View renders the counters. user and expiry come from the App's session view.
func (m dashboardModel) View(user *domain.User, expiresIn time.Duration, hasExpiry bool) string {
	var b strings.Builder

	if user != nil {
		line := fmt.Sprintf("signed in as %s", selectedStyle.Render(user.Username))
		if user.Role != "" {
			line += dimStyle.Render(" · " + user.Role)
		}
		if hasExpiry {
			style := dimStyle
			if expiresIn < 5*time.Minute {
				style = warnStyle
			}
			line += dimStyle.Render(" · ") + style.Render("session "+formatRemaining(expiresIn))
		}
		b.WriteString("\n " + line + "\n")
	}

	if m.loading && m.stats == nil {
		b.WriteString("\n " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}
	if m.err != "" {
		b.WriteString("\n " + errorStyle.Render("error: "+m.err) + "\n")
		return b.String()
	}
	if m.stats == nil {
		return b.String()
	}

	s := m.stats
	rows := []struct {
		label string
		value int
		extra string
	}{
		{"blogs", s.TotalBlogs, fmt.Sprintf("%d published", s.PublishedBlogs)},
		{"projects", s.TotalProjects, ""},
		{"contacts", s.TotalContacts, fmt.Sprintf("%d unread", s.UnreadContacts)},
		{"subscribers", s.TotalSubscribers, fmt.Sprintf("%d active", s.ActiveSubscribers)},
		{"views", s.TotalViews, ""},
	}
	b.WriteString("\n " + sectionHeaderStyle.Render("Overview") + "\n")
	for _, r := range rows {
		line := fmt.Sprintf("   %-12s %s", dimStyle.Render(r.label), statValueStyle.Render(fmt.Sprintf("%6d", r.value)))
		if r.extra != "" {
			line += "  " + metaStyle.Render(r.extra)
		}
		b.WriteString(line + "\n")
	}
	if s.UnreadContacts > 0 {
		b.WriteString("\n " + accentStyle.Render(fmt.Sprintf("%d new message(s)", s.UnreadContacts)) + dimStyle.Render(" · press 3 to read") + "\n")
	}
	return b.String()
}

func (m dashboardModel) helpKeys() string {
	return helpEntry("r", "refresh")
}
