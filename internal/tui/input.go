package tui

import (
	"strings"
	"unicode/utf8"
)

// pageSize is the number of items fetched per list call.
const pageSize = 50

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 256

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	default:
		if utf8.RuneCountInString(key) == 1 {
			if utf8.RuneCountInString(text) >= maxInputLen {
				return text
			}
			return text + key
		}
		return text
	}
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// renderField renders a labelled single-line input with a cursor when focused.
func renderField(label, value, placeholder string, masked, focused bool) string {
	shown := value
	if masked {
		shown = strings.Repeat("•", utf8.RuneCountInString(value))
	}
	prompt := metaStyle.Render("  ")
	if focused {
		prompt = inputPromptStyle.Render("> ")
	}
	var text string
	switch {
	case shown == "" && !focused:
		text = inputPlaceholderStyle.Render(placeholder)
	case focused:
		text = selectedStyle.Render(shown) + accentStyle.Render("█")
	default:
		text = normalStyle.Render(shown)
	}
	return " " + prompt + dimStyle.Render(label+" ") + text
}
