package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/folio/pkg/client"
	"github.com/naveenspark/folio/pkg/domain"
)

// contactFilters is the cycle order of the status filter; "" shows all.
var contactFilters = []string{"", domain.ContactNew, domain.ContactRead, domain.ContactReplied}

// -- messages --

type contactsLoadedMsg struct {
	filter   string
	contacts []domain.Contact
	err      error
}

type contactUpdatedMsg struct {
	contact domain.Contact
	err     error
}

// -- model --

type contactsModel struct {
	ctx      context.Context
	client   *client.Client
	contacts []domain.Contact
	cursor   int
	filter   int // index into contactFilters
	detail   bool
	loading  bool
	err      string
	notice   string
	width    int
	height   int
}

func newContactsModel(ctx context.Context, c *client.Client) contactsModel {
	return contactsModel{ctx: ctx, client: c, loading: true}
}

func (m contactsModel) Init() tea.Cmd {
	return m.load()
}

func (m contactsModel) load() tea.Cmd {
	ctx, c := m.ctx, m.client
	filter := contactFilters[m.filter]
	return func() tea.Msg {
		q := client.Query{"limit": pageSize}
		if filter != "" {
			q["status"] = filter
		}
		resp, err := c.Contacts.List(ctx, q)
		if err != nil {
			return contactsLoadedMsg{filter: filter, err: err}
		}
		items, ok := resp.Value()
		if !ok {
			return contactsLoadedMsg{filter: filter, err: resp.Err()}
		}
		return contactsLoadedMsg{filter: filter, contacts: items}
	}
}

func (m contactsModel) setStatus(status string) tea.Cmd {
	if m.cursor >= len(m.contacts) {
		return nil
	}
	ctx, c := m.ctx, m.client
	id := m.contacts[m.cursor].ID
	return func() tea.Msg {
		resp, err := c.Contacts.UpdateStatus(ctx, id, status)
		if err != nil {
			return contactUpdatedMsg{err: err}
		}
		updated, ok := resp.Value()
		if !ok {
			return contactUpdatedMsg{err: resp.Err()}
		}
		if updated.ID == "" {
			updated.ID = id
		}
		return contactUpdatedMsg{contact: updated}
	}
}

func (m contactsModel) Update(msg tea.Msg) (contactsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case contactsLoadedMsg:
		if msg.filter != contactFilters[m.filter] || isCancelled(msg.err) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = errText(msg.err)
			return m, nil
		}
		m.err = ""
		m.contacts = msg.contacts
		if m.cursor >= len(m.contacts) {
			m.cursor = 0
		}

	case contactUpdatedMsg:
		if isCancelled(msg.err) {
			return m, nil
		}
		if msg.err != nil {
			m.notice = "update failed: " + errText(msg.err)
			return m, nil
		}
		for i := range m.contacts {
			if m.contacts[i].ID == msg.contact.ID {
				m.contacts[i].Status = msg.contact.Status
			}
		}
		m.notice = "marked " + msg.contact.Status

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m contactsModel) handleKey(msg tea.KeyMsg) (contactsModel, tea.Cmd) {
	m.notice = ""
	if m.detail {
		switch msg.String() {
		case "esc", "backspace":
			m.detail = false
		case "m":
			return m, m.setStatus(domain.ContactRead)
		case "p":
			return m, m.setStatus(domain.ContactReplied)
		case "a":
			return m, m.setStatus(domain.ContactArchived)
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.contacts)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor < len(m.contacts) {
			m.detail = true
			if m.contacts[m.cursor].Status == domain.ContactNew {
				return m, m.setStatus(domain.ContactRead)
			}
		}
	case "f":
		m.filter = (m.filter + 1) % len(contactFilters)
		m.cursor = 0
		m.loading = true
		return m, m.load()
	case "m":
		return m, m.setStatus(domain.ContactRead)
	case "a":
		return m, m.setStatus(domain.ContactArchived)
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m contactsModel) filterLabel() string {
	if f := contactFilters[m.filter]; f != "" {
		return f
	}
	return "all"
}

func (m contactsModel) View() string {
	if m.detail && m.cursor < len(m.contacts) {
		return m.detailView(m.contacts[m.cursor])
	}

	var b strings.Builder
	b.WriteString(" " + dimStyle.Render("filter: ") + accentStyle.Render(m.filterLabel()) + "\n\n")

	switch {
	case m.loading && len(m.contacts) == 0:
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	case m.err != "":
		b.WriteString(" " + errorStyle.Render("error: "+m.err) + "\n")
		return b.String()
	case len(m.contacts) == 0:
		b.WriteString(" " + dimStyle.Render("inbox is empty") + "\n")
		return b.String()
	}

	for i, c := range m.contacts {
		cursor := " "
		name := normalStyle.Render(fmt.Sprintf("%-18s", truncStr(c.Name, 18)))
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			name = selectedStyle.Render(fmt.Sprintf("%-18s", truncStr(c.Name, 18)))
		}
		subject := c.Subject
		if subject == "" {
			subject = c.Message
		}
		row := fmt.Sprintf(" %s %s %s  %s", cursor, name, StatusBadge(c.Status), dimStyle.Render(truncStr(oneLine(subject), 40)))
		if when := formatStamp(c.CreatedAt); when != "" {
			row += "  " + metaStyle.Render(when)
		}
		b.WriteString(row + "\n")
	}
	if m.notice != "" {
		b.WriteString("\n " + noticeStyle.Render(m.notice) + "\n")
	}
	return b.String()
}

func (m contactsModel) detailView(c domain.Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n %s %s\n", selectedStyle.Render(c.Name), dimStyle.Render("<"+c.Email+">"))
	if c.Subject != "" {
		b.WriteString(" " + normalStyle.Render(c.Subject) + "\n")
	}
	b.WriteString(" " + StatusBadge(c.Status))
	if when := formatStamp(c.CreatedAt); when != "" {
		b.WriteString("  " + metaStyle.Render(when))
	}
	b.WriteString("\n\n")
	for _, line := range strings.Split(c.Message, "\n") {
		b.WriteString(" " + normalStyle.Render(line) + "\n")
	}
	if m.notice != "" {
		b.WriteString("\n " + noticeStyle.Render(m.notice) + "\n")
	}
	return b.String()
}

func (m contactsModel) helpKeys() string {
	if m.detail {
		return helpEntry("m", "read") + "  " + helpEntry("p", "replied") + "  " + helpEntry("a", "archive") + "  " + helpEntry("esc", "back")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("f", "filter") + "  " + helpEntry("m", "mark read") + "  " + helpEntry("a", "archive") + "  " + helpEntry("r", "refresh")
}
