package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/folio/internal/auth"
)

// -- messages --

type loginResultMsg struct {
	result auth.Result
}

// -- model --

const (
	fieldUsername = iota
	fieldPassword
)

type loginModel struct {
	ctx        context.Context
	auth       *auth.Service
	username   string
	password   string
	focus      int
	submitting bool
	message    string
	width      int
}

func newLoginModel(ctx context.Context, svc *auth.Service) loginModel {
	return loginModel{ctx: ctx, auth: svc}
}

func (m loginModel) submit() tea.Cmd {
	ctx, svc := m.ctx, m.auth
	username, password := strings.TrimSpace(m.username), m.password
	return func() tea.Msg {
		return loginResultMsg{result: svc.Login(ctx, username, password)}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case loginResultMsg:
		m.submitting = false
		if msg.result.Success {
			m.password = ""
			m.message = ""
			return m, nil
		}
		m.message = msg.result.Message
		m.password = ""
		m.focus = fieldPassword

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down", "shift+tab", "up":
			m.focus = 1 - m.focus
		case "enter":
			if m.focus == fieldUsername {
				m.focus = fieldPassword
				return m, nil
			}
			if strings.TrimSpace(m.username) == "" || m.password == "" {
				m.message = "Username and password are required"
				return m, nil
			}
			m.submitting = true
			m.message = ""
			return m, m.submit()
		default:
			if m.focus == fieldUsername {
				m.username = editRune(m.username, msg.String())
			} else {
				m.password = editRune(m.password, msg.String())
			}
		}
	}
	return m, nil
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + sectionHeaderStyle.Render("Sign in to the back office") + "\n\n")
	b.WriteString(renderField("username", m.username, "admin", false, m.focus == fieldUsername) + "\n")
	b.WriteString(renderField("password", m.password, "••••••", true, m.focus == fieldPassword) + "\n\n")

	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("signing in...") + "\n")
	case m.message != "":
		b.WriteString(" " + errorStyle.Render(m.message) + "\n")
	}
	return b.String()
}

func (m loginModel) helpKeys() string {
	return helpEntry("tab", "next") + "  " + helpEntry("enter", "sign in") + "  " + helpEntry("ctrl+c", "quit")
}
