// Package router names the back-office screens and tracks where the user was sent.
package router

import "sync"

// Route identifies a screen.
type Route string

const (
	Login     Route = "/admin/login"
	Dashboard Route = "/admin"
	Resources Route = "/admin/content"
	Contacts  Route = "/admin/contacts"
	Settings  Route = "/admin/settings"
)

// Protected reports whether r requires a session.
func (r Route) Protected() bool {
	return r != Login
}

// Navigator moves the UI to another screen.
type Navigator interface {
	Navigate(to Route)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(to Route)

func (f NavigatorFunc) Navigate(to Route) { f(to) }

// History records the current route and how many navigations happened.
// Safe for concurrent use.
type History struct {
	mu      sync.Mutex
	current Route
	count   int
}

// NewHistory starts at route start without counting it as a navigation.
func NewHistory(start Route) *History {
	return &History{current: start}
}

func (h *History) Navigate(to Route) {
	h.mu.Lock()
	h.current = to
	h.count++
	h.mu.Unlock()
}

// Current returns the route most recently navigated to.
func (h *History) Current() Route {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Count returns the number of Navigate calls.
func (h *History) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}
