package router

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory(t *testing.T) {
	h := NewHistory(Dashboard)
	assert.Equal(t, Dashboard, h.Current())
	assert.Zero(t, h.Count())

	h.Navigate(Contacts)
	h.Navigate(Login)
	assert.Equal(t, Login, h.Current())
	assert.Equal(t, 2, h.Count())
}

func TestHistory_Concurrent(t *testing.T) {
	h := NewHistory(Login)
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Navigate(Dashboard)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, h.Count())
	assert.Equal(t, Dashboard, h.Current())
}

func TestNavigatorFunc(t *testing.T) {
	var got Route
	var nav Navigator = NavigatorFunc(func(to Route) { got = to })
	nav.Navigate(Settings)
	assert.Equal(t, Settings, got)
}

func TestRouteProtected(t *testing.T) {
	assert.False(t, Login.Protected())
	for _, r := range []Route{Dashboard, Resources, Contacts, Settings} {
		assert.True(t, r.Protected(), r)
	}
}
