package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/folio/pkg/client"
	"github.com/naveenspark/folio/pkg/domain"
)

// -- messages --

type settingsLoadedMsg struct {
	settings *domain.Settings
	err      error
}

// -- model --

type settingsModel struct {
	ctx      context.Context
	client   *client.Client
	settings *domain.Settings
	loading  bool
	err      string
	width    int
}

func newSettingsModel(ctx context.Context, c *client.Client) settingsModel {
	return settingsModel{ctx: ctx, client: c, loading: true}
}

func (m settingsModel) Init() tea.Cmd {
	ctx, c := m.ctx, m.client
	return func() tea.Msg {
		resp, err := c.Settings(ctx)
		if err != nil {
			return settingsLoadedMsg{err: err}
		}
		s, ok := resp.Value()
		if !ok {
			return settingsLoadedMsg{err: resp.Err()}
		}
		return settingsLoadedMsg{settings: &s}
	}
}

func (m settingsModel) Update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case settingsLoadedMsg:
		if isCancelled(msg.err) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = errText(msg.err)
			return m, nil
		}
		m.err = ""
		m.settings = msg.settings

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.Init()
		}
	}
	return m, nil
}

// settingsRows flattens settings into label/value pairs, skipping empty values.
func settingsRows(s *domain.Settings) [][2]string {
	rows := [][2]string{
		{"site title", s.SiteTitle},
		{"description", s.SiteDescription},
		{"hero title", s.HeroTitle},
		{"hero subtitle", s.HeroSubtitle},
		{"email", s.Email},
		{"phone", s.Phone},
		{"location", s.Location},
		{"resume", s.ResumeURL},
		{"avatar", s.Avatar},
		{"about", oneLine(s.About)},
	}
	out := rows[:0]
	for _, r := range rows {
		if r[1] != "" {
			out = append(out, r)
		}
	}
	keys := make([]string, 0, len(s.SocialLinks))
	for k := range s.SocialLinks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, [2]string{k, s.SocialLinks[k]})
	}
	if s.MaintenanceMode {
		out = append(out, [2]string{"maintenance", "on"})
	}
	return out
}

func (m settingsModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	switch {
	case m.loading && m.settings == nil:
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	case m.err != "":
		b.WriteString(" " + errorStyle.Render("error: "+m.err) + "\n")
		return b.String()
	case m.settings == nil:
		return b.String()
	}

	rows := settingsRows(m.settings)
	if len(rows) == 0 {
		b.WriteString(" " + dimStyle.Render("no settings saved yet") + "\n")
		return b.String()
	}
	valueWidth := 60
	if m.width > 20 {
		valueWidth = m.width - 20
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "   %s %s\n", dimStyle.Render(fmt.Sprintf("%-14s", r[0])), normalStyle.Render(truncStr(r[1], valueWidth)))
	}
	return b.String()
}

func (m settingsModel) helpKeys() string {
	return helpEntry("r", "refresh")
}
