package textutil

import (
	"strings"
	"unicode"
)

// SanitizeTerminalText makes directory names safe to draw. Control runes
// become '?', line breaks and tabs become spaces, and invisible formatting
// runes (bidi overrides, zero-width joiners) become U+FFFD so a name cannot
// disguise itself or inject escape sequences.
func SanitizeTerminalText(text string) string {
	if strings.IndexFunc(text, requiresSanitization) < 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case unicode.IsControl(r):
			b.WriteByte('?')
		case unicode.Is(unicode.Cf, r):
			b.WriteRune(unicode.ReplacementChar)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func requiresSanitization(r rune) bool {
	return unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
}
