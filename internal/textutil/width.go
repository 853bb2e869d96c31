package textutil

import "github.com/mattn/go-runewidth"

const Ellipsis = "…"

// DisplayWidth reports the printable width of text accounting for wide runes
// and grapheme clusters.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// TruncateToWidth shortens text to at most width cells, ending in an
// ellipsis when something was cut.
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width <= runewidth.StringWidth(Ellipsis) {
		return Ellipsis
	}
	return runewidth.Truncate(text, width, Ellipsis)
}

// PadRight pads text with spaces to exactly width cells, truncating first
// when needed.
func PadRight(text string, width int) string {
	return runewidth.FillRight(TruncateToWidth(text, width), width)
}
