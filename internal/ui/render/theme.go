package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines the styles used by the selector.
type ColorTheme struct {
	Header        tcell.Style
	Prompt        tcell.Style
	Query         tcell.Style
	Item          tcell.Style
	DatePrefix    tcell.Style
	Match         tcell.Style
	Selected      tcell.Style
	SelectedMatch tcell.Style
	Symlink       tcell.Style
	Age           tcell.Style
	Hint          tcell.Style
	Status        tcell.Style
	Error         tcell.Style
	Footer        tcell.Style
	Dialog        tcell.Style
	DialogBorder  tcell.Style
	DialogWarn    tcell.Style
}

// ThemeFor picks the theme for a color capability decided by the caller.
func ThemeFor(colors bool) ColorTheme {
	if colors {
		return GetColorTheme()
	}
	return GetMonochromeTheme()
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	base := tcell.StyleDefault
	selected := base.Background(tcell.Color33).Foreground(tcell.ColorWhite)
	return ColorTheme{
		Header:        base.Bold(true),
		Prompt:        base.Foreground(tcell.Color33).Bold(true),
		Query:         base,
		Item:          base,
		DatePrefix:    base.Foreground(tcell.ColorLightSlateGray),
		Match:         base.Foreground(tcell.Color214).Bold(true),
		Selected:      selected,
		SelectedMatch: selected.Foreground(tcell.Color226).Bold(true),
		Symlink:       base.Foreground(tcell.Color51),
		Age:           base.Foreground(tcell.ColorLightSlateGray),
		Hint:          base.Foreground(tcell.ColorLightSlateGray).Italic(true),
		Status:        base.Foreground(tcell.Color40),
		Error:         base.Foreground(tcell.Color196).Bold(true),
		Footer:        base.Foreground(tcell.ColorLightSlateGray),
		Dialog:        base.Background(tcell.Color234).Foreground(tcell.Color252),
		DialogBorder:  base.Background(tcell.Color234).Foreground(tcell.Color196),
		DialogWarn:    base.Background(tcell.Color234).Foreground(tcell.Color196).Bold(true),
	}
}

// GetMonochromeTheme relies on attributes only, for terminals where color
// is disabled.
func GetMonochromeTheme() ColorTheme {
	base := tcell.StyleDefault
	return ColorTheme{
		Header:        base.Bold(true),
		Prompt:        base.Bold(true),
		Query:         base,
		Item:          base,
		DatePrefix:    base.Dim(true),
		Match:         base.Bold(true).Underline(true),
		Selected:      base.Reverse(true),
		SelectedMatch: base.Reverse(true).Bold(true).Underline(true),
		Symlink:       base,
		Age:           base.Dim(true),
		Hint:          base.Dim(true),
		Status:        base,
		Error:         base.Bold(true),
		Footer:        base.Dim(true),
		Dialog:        base,
		DialogBorder:  base,
		DialogWarn:    base.Bold(true),
	}
}
