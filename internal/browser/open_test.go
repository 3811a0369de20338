package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsNonWebURLs(t *testing.T) {
	called := false
	prev := start
	start = func(string, ...string) error { called = true; return nil }
	t.Cleanup(func() { start = prev })

	for _, raw := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "/blog", "https://"} {
		assert.Error(t, Open(raw), raw)
	}
	assert.False(t, called)
}

func TestOpenLaunchesCommand(t *testing.T) {
	var gotName string
	var gotArgs []string
	prev := start
	start = func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return errors.New("no display")
	}
	t.Cleanup(func() { start = prev })

	err := Open("https://example.dev/blog")
	if gotName == "" {
		// Unsupported GOOS: command never ran.
		require.Error(t, err)
		return
	}
	require.EqualError(t, err, "no display")
	assert.Equal(t, "https://example.dev/blog", gotArgs[len(gotArgs)-1])
}

func TestCommandPerOS(t *testing.T) {
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"darwin", "open", []string{"https://x.dev"}},
		{"linux", "xdg-open", []string{"https://x.dev"}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "https://x.dev"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args, err := command(tt.goos, "https://x.dev")
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.args, args)
		})
	}

	_, _, err := command("plan9", "https://x.dev")
	assert.Error(t, err)
}
