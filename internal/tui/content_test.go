package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/naveenspark/folio/pkg/client"
)

func contentApp(t *testing.T) App {
	t.Helper()
	env := newTestEnv(t)
	a := env.loggedInApp(t)
	a = press(a, "2")
	if a.content.loading {
		t.Fatal("content still loading")
	}
	return a
}

func TestContentListsBlogs(t *testing.T) {
	a := contentApp(t)

	if got := contentKinds[a.content.kind].label; got != "blogs" {
		t.Fatalf("kind = %q, want blogs", got)
	}
	if len(a.content.rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(a.content.rows))
	}
	view := a.View()
	assertContains(t, view, "Shipping a Go API client")
	assertContains(t, view, "[published]")
	assertContains(t, view, "42 views")
}

func TestContentCycleKinds(t *testing.T) {
	a := contentApp(t)

	a = press(a, "t")
	if got := contentKinds[a.content.kind].label; got != "projects" {
		t.Fatalf("kind = %q, want projects", got)
	}
	if len(a.content.rows) != 1 || a.content.rows[0].title != "folio" {
		t.Errorf("rows = %+v, want the seeded project", a.content.rows)
	}

	a = press(a, "T")
	a = press(a, "T")
	if got := contentKinds[a.content.kind].label; got != "subscribers" {
		t.Errorf("kind after wrapping back = %q, want subscribers", got)
	}
}

func TestContentStaleLoadIgnored(t *testing.T) {
	a := contentApp(t)
	before := len(a.content.rows)

	m, _ := a.content.Update(contentLoadedMsg{kind: a.content.kind + 1, rows: nil})
	if len(m.rows) != before {
		t.Error("rows replaced by a load for another kind")
	}
}

func TestContentCopyID(t *testing.T) {
	a := contentApp(t)

	var copied string
	prev := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyToClipboard = prev })

	a = press(a, "c")
	if copied == "" || copied != a.content.rows[0].id {
		t.Errorf("copied %q, want %q", copied, a.content.rows[0].id)
	}
	assertContains(t, a.View(), "copied "+copied)
}

func TestContentCopyFailure(t *testing.T) {
	a := contentApp(t)

	prev := copyToClipboard
	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { copyToClipboard = prev })

	a = press(a, "c")
	assertContains(t, a.View(), "copy failed: no clipboard")
}

func TestContentOpenPublicPage(t *testing.T) {
	a := contentApp(t)

	var opened string
	prev := openURL
	openURL = func(u string) error { opened = u; return nil }
	t.Cleanup(func() { openURL = prev })

	a = press(a, "o")
	if want := testSiteURL + "/blog/shipping-a-go-api-client"; opened != want {
		t.Errorf("opened %q, want %q", opened, want)
	}

	opened = ""
	for contentKinds[a.content.kind].label != "skills" {
		a = press(a, "t")
	}
	a = press(a, "o")
	if opened != "" {
		t.Errorf("opened %q for a kind without public pages", opened)
	}
	assertContains(t, a.View(), "skills have no public page")
}

func TestContentDelete(t *testing.T) {
	a := contentApp(t)
	target := a.content.rows[0]

	a = press(a, "d")
	if !a.content.confirmDelete {
		t.Fatal("d did not ask for confirmation")
	}
	assertContains(t, a.View(), "y to confirm")

	a = press(a, "y")
	if len(a.content.rows) != 1 {
		t.Fatalf("rows after delete = %d, want 1", len(a.content.rows))
	}
	if a.content.rows[0].id == target.id {
		t.Error("deleted row still listed")
	}
	assertContains(t, a.View(), "deleted "+target.id)
}

func TestContentDeleteCancelled(t *testing.T) {
	a := contentApp(t)

	a = press(a, "d")
	a = press(a, "n")
	if len(a.content.rows) != 2 {
		t.Errorf("rows = %d, want 2", len(a.content.rows))
	}
	assertContains(t, a.View(), "delete cancelled")
}

func TestContentShowsServerError(t *testing.T) {
	m := newContentModel(t.Context(), nil, testSiteURL)
	m, _ = m.Update(contentLoadedMsg{kind: 0, err: &client.HTTPError{StatusCode: 500, Message: "boom"}})
	if !strings.Contains(m.View(), "boom (500)") {
		t.Errorf("view = %q, want the server message", m.View())
	}
}

func TestSlugPage(t *testing.T) {
	page := slugPage("/blog/")
	tests := []struct {
		row  contentRow
		want string
	}{
		{contentRow{id: "1", slug: "hello-world"}, "/blog/hello-world"},
		{contentRow{id: "42"}, "/blog/42"},
		{contentRow{slug: "a b"}, "/blog/a%20b"},
		{contentRow{}, ""},
	}
	for _, tc := range tests {
		if got := page(tc.row); got != tc.want {
			t.Errorf("slugPage(%+v) = %q, want %q", tc.row, got, tc.want)
		}
	}
}
