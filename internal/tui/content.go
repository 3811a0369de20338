package tui

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/folio/internal/browser"
	"github.com/naveenspark/folio/pkg/client"
	"github.com/naveenspark/folio/pkg/domain"
)

// Side effects the content browser triggers outside the terminal.
var (
	copyToClipboard = clipboard.WriteAll
	openURL         = browser.Open
)

// -- messages --

type contentLoadedMsg struct {
	kind int
	rows []contentRow
	err  error
}

type contentDeletedMsg struct {
	kind int
	id   string
	err  error
}

type copyResultMsg struct {
	id  string
	err error
}

type openResultMsg struct {
	url string
	err error
}

// -- kinds --

// contentRow is one item of any collection, flattened for display.
type contentRow struct {
	id     string
	title  string
	meta   string
	status string
	slug   string
}

// contentKind binds a collection to how it is listed, deleted and linked.
type contentKind struct {
	label string
	list  func(ctx context.Context, c *client.Client) ([]contentRow, error)
	del   func(ctx context.Context, c *client.Client, id string) error
	// public returns the row's page on the public site, or "" when it has none.
	public func(r contentRow) string
}

func kindOf[T any](label string, res func(*client.Client) *client.Resource[T], toRow func(T) contentRow, public func(contentRow) string) contentKind {
	return contentKind{
		label: label,
		list: func(ctx context.Context, c *client.Client) ([]contentRow, error) {
			resp, err := res(c).List(ctx, client.Query{"limit": pageSize})
			if err != nil {
				return nil, err
			}
			items, ok := resp.Value()
			if !ok {
				return nil, resp.Err()
			}
			rows := make([]contentRow, 0, len(items))
			for _, it := range items {
				rows = append(rows, toRow(it))
			}
			return rows, nil
		},
		del: func(ctx context.Context, c *client.Client, id string) error {
			resp, err := res(c).Delete(ctx, id)
			if err != nil {
				return err
			}
			return resp.Err()
		},
		public: public,
	}
}

func noPublicPage(contentRow) string { return "" }

func slugPage(prefix string) func(contentRow) string {
	return func(r contentRow) string {
		key := r.slug
		if key == "" {
			key = r.id
		}
		if key == "" {
			return ""
		}
		return prefix + url.PathEscape(key)
	}
}

var contentKinds = []contentKind{
	kindOf("blogs",
		func(c *client.Client) *client.Resource[domain.Blog] { return c.Blogs.Resource },
		func(b domain.Blog) contentRow {
			meta := b.Category
			if b.Views > 0 {
				meta = strings.TrimSpace(fmt.Sprintf("%s %d views", meta, b.Views))
			}
			return contentRow{id: b.ID, title: b.Title, meta: meta, status: b.Status, slug: b.Slug}
		},
		slugPage("/blog/")),
	kindOf("projects",
		func(c *client.Client) *client.Resource[domain.Project] { return c.Projects },
		func(p domain.Project) contentRow {
			return contentRow{id: p.ID, title: p.Title, meta: strings.Join(p.Technologies, ", "), status: p.Status, slug: p.Slug}
		},
		slugPage("/projects/")),
	kindOf("categories",
		func(c *client.Client) *client.Resource[domain.Category] { return c.Categories },
		func(cat domain.Category) contentRow {
			return contentRow{id: cat.ID, title: cat.Name, meta: cat.Type, slug: cat.Slug}
		},
		noPublicPage),
	kindOf("skills",
		func(c *client.Client) *client.Resource[domain.Skill] { return c.Skills },
		func(s domain.Skill) contentRow {
			meta := s.Category
			if s.Level > 0 {
				meta = strings.TrimSpace(fmt.Sprintf("%s %d%%", meta, s.Level))
			}
			return contentRow{id: s.ID, title: s.Name, meta: meta}
		},
		noPublicPage),
	kindOf("experience",
		func(c *client.Client) *client.Resource[domain.Experience] { return c.Experiences },
		func(e domain.Experience) contentRow {
			return contentRow{id: e.ID, title: e.Title, meta: e.Company}
		},
		noPublicPage),
	kindOf("education",
		func(c *client.Client) *client.Resource[domain.Education] { return c.Educations },
		func(e domain.Education) contentRow {
			return contentRow{id: e.ID, title: e.Institution, meta: joinNonEmpty(", ", e.Degree, e.Field)}
		},
		noPublicPage),
	kindOf("achievements",
		func(c *client.Client) *client.Resource[domain.Achievement] { return c.Achievements },
		func(a domain.Achievement) contentRow {
			return contentRow{id: a.ID, title: a.Title, meta: a.Issuer}
		},
		noPublicPage),
	kindOf("volunteers",
		func(c *client.Client) *client.Resource[domain.Volunteer] { return c.Volunteers },
		func(v domain.Volunteer) contentRow {
			return contentRow{id: v.ID, title: v.Organization, meta: v.Role}
		},
		noPublicPage),
	kindOf("subscribers",
		func(c *client.Client) *client.Resource[domain.Subscriber] { return c.Subscribers },
		func(s domain.Subscriber) contentRow {
			return contentRow{id: s.ID, title: s.Email, meta: s.Name, status: s.Status}
		},
		noPublicPage),
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// -- model --

type contentModel struct {
	ctx           context.Context
	client        *client.Client
	siteURL       string
	kind          int
	rows          []contentRow
	cursor        int
	loading       bool
	confirmDelete bool
	err           string
	notice        string
	width         int
	height        int
}

func newContentModel(ctx context.Context, c *client.Client, siteURL string) contentModel {
	return contentModel{ctx: ctx, client: c, siteURL: strings.TrimRight(siteURL, "/"), loading: true}
}

func (m contentModel) Init() tea.Cmd {
	return m.load()
}

func (m contentModel) load() tea.Cmd {
	ctx, c, kind := m.ctx, m.client, m.kind
	return func() tea.Msg {
		rows, err := contentKinds[kind].list(ctx, c)
		return contentLoadedMsg{kind: kind, rows: rows, err: err}
	}
}

func (m contentModel) selected() (contentRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return contentRow{}, false
	}
	return m.rows[m.cursor], true
}

func (m contentModel) Update(msg tea.Msg) (contentModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case contentLoadedMsg:
		if msg.kind != m.kind || isCancelled(msg.err) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = errText(msg.err)
			m.rows = nil
			return m, nil
		}
		m.err = ""
		m.rows = msg.rows
		if m.cursor >= len(m.rows) {
			m.cursor = 0
		}

	case contentDeletedMsg:
		if isCancelled(msg.err) {
			return m, nil
		}
		if msg.err != nil {
			m.err = errText(msg.err)
			return m, nil
		}
		m.notice = "deleted " + msg.id
		if msg.kind == m.kind {
			m.loading = true
			return m, m.load()
		}

	case copyResultMsg:
		if msg.err != nil {
			m.notice = "copy failed: " + msg.err.Error()
		} else {
			m.notice = "copied " + msg.id
		}

	case openResultMsg:
		if msg.err != nil {
			m.notice = "open failed: " + msg.err.Error()
		} else {
			m.notice = "opened " + msg.url
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m contentModel) handleKey(msg tea.KeyMsg) (contentModel, tea.Cmd) {
	if m.confirmDelete {
		m.confirmDelete = false
		row, ok := m.selected()
		if msg.String() != "y" || !ok {
			m.notice = "delete cancelled"
			return m, nil
		}
		ctx, c, kind := m.ctx, m.client, m.kind
		return m, func() tea.Msg {
			err := contentKinds[kind].del(ctx, c, row.id)
			return contentDeletedMsg{kind: kind, id: row.id, err: err}
		}
	}

	m.notice = ""
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "t", "T":
		step := 1
		if msg.String() == "T" {
			step = len(contentKinds) - 1
		}
		m.kind = (m.kind + step) % len(contentKinds)
		m.cursor = 0
		m.rows = nil
		m.err = ""
		m.loading = true
		return m, m.load()
	case "r":
		m.loading = true
		return m, m.load()
	case "d":
		if _, ok := m.selected(); ok {
			m.confirmDelete = true
		}
	case "c":
		if row, ok := m.selected(); ok && row.id != "" {
			id := row.id
			return m, func() tea.Msg {
				return copyResultMsg{id: id, err: copyToClipboard(id)}
			}
		}
	case "o":
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		path := contentKinds[m.kind].public(row)
		if path == "" {
			m.notice = contentKinds[m.kind].label + " have no public page"
			return m, nil
		}
		target := m.siteURL + path
		return m, func() tea.Msg {
			return openResultMsg{url: target, err: openURL(target)}
		}
	}
	return m, nil
}

func (m contentModel) View() string {
	var b strings.Builder

	var tabs []string
	for i, k := range contentKinds {
		if i == m.kind {
			tabs = append(tabs, selectedStyle.Underline(true).Render(k.label))
		} else {
			tabs = append(tabs, metaStyle.Render(k.label))
		}
	}
	b.WriteString(" " + strings.Join(tabs, metaStyle.Render(" · ")) + "\n\n")

	switch {
	case m.loading && len(m.rows) == 0:
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	case m.err != "":
		b.WriteString(" " + errorStyle.Render("error: "+m.err) + "\n")
		return b.String()
	case len(m.rows) == 0:
		b.WriteString(" " + dimStyle.Render("no "+contentKinds[m.kind].label+" yet") + "\n")
		return b.String()
	}

	titleWidth := 40
	if m.width > 0 {
		titleWidth = max(16, m.width/2)
	}
	for i, r := range m.rows {
		cursor := " "
		title := normalStyle.Render(truncStr(oneLine(r.title), titleWidth))
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			title = selectedStyle.Render(truncStr(oneLine(r.title), titleWidth))
		}
		row := fmt.Sprintf(" %s %s", cursor, title)
		if badge := StatusBadge(r.status); badge != "" {
			row += " " + badge
		}
		if r.meta != "" {
			row += "  " + metaStyle.Render(truncStr(r.meta, 32))
		}
		b.WriteString(row + "\n")
	}

	switch {
	case m.confirmDelete:
		row, _ := m.selected()
		b.WriteString("\n " + warnStyle.Render(fmt.Sprintf("delete %q? y to confirm", truncStr(row.title, 40))) + "\n")
	case m.notice != "":
		b.WriteString("\n " + noticeStyle.Render(m.notice) + "\n")
	}
	return b.String()
}

func (m contentModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("t", "type") + "  " + helpEntry("c", "copy id") + "  " + helpEntry("o", "open") + "  " + helpEntry("d", "delete") + "  " + helpEntry("r", "refresh")
}
