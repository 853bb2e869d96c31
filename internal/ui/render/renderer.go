package render

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	searchpkg "github.com/kk-code-lab/try/internal/search"
	statepkg "github.com/kk-code-lab/try/internal/state"
	textutil "github.com/kk-code-lab/try/internal/textutil"
	"golang.org/x/text/unicode/norm"
)

const (
	headerRow     = 0
	promptRow     = 1
	listStartRow  = 2
	promptLabel   = "Search: "
	cursorMarker  = "› "
	ageColumnGap  = 2
	minNameColumn = 8
)

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	now              func() time.Time
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

type Option func(*Renderer)

// WithClock overrides the time used for ages and the create hint.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRenderer creates a renderer. colors is the caller's decision about
// terminal color support; the renderer never probes the environment.
func NewRenderer(screen tcell.Screen, colors bool, opts ...Option) *Renderer {
	r := &Renderer{
		screen: screen,
		theme:  ThemeFor(colors),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.SessionState) {
	r.screen.Clear()
	r.screen.HideCursor()

	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		r.screen.Show()
		return
	}

	r.drawHeader(state, w)
	r.drawPrompt(state, w)
	r.drawList(state, w, h)
	r.drawStatusLine(state, w, h)
	r.drawFooter(state, w, h)
	if state.Mode == statepkg.ModeConfirmDelete && state.Pending != nil {
		r.drawConfirmDialog(state.Pending, w, h)
	}

	r.screen.Show()
}

func (r *Renderer) drawHeader(state *statepkg.SessionState, w int) {
	x := r.drawTextLine(0, headerRow, w, "try", r.theme.Header)
	if state.Root == "" || x+1 >= w {
		return
	}
	root := textutil.SanitizeTerminalText(state.Root)
	count := fmt.Sprintf(" (%d)", len(state.Catalog))
	avail := w - x - 1 - r.measureTextWidth(count)
	if avail > 0 {
		x = r.drawTextLine(x+1, headerRow, avail, textutil.TruncateToWidth(root, avail), r.theme.Age)
		r.drawTextLine(x, headerRow, w-x, count, r.theme.Age)
	}
}

func (r *Renderer) drawPrompt(state *statepkg.SessionState, w int) {
	x := r.drawTextLine(0, promptRow, w, promptLabel, r.theme.Prompt)
	query := textutil.SanitizeTerminalText(state.Query)
	avail := w - x - 1
	if width := r.measureTextWidth(query); width > avail && avail > 0 {
		// Keep the tail of a long query visible.
		runes := []rune(query)
		for len(runes) > 0 && r.measureTextWidth(string(runes)) > avail {
			runes = runes[1:]
		}
		query = string(runes)
	}
	x = r.drawTextLine(x, promptRow, w-x, query, r.theme.Query)
	if state.Mode == statepkg.ModeBrowsing && x < w {
		r.screen.ShowCursor(x, promptRow)
	}
}

func (r *Renderer) listHeight(h int) int {
	// header, prompt, status, footer
	rows := h - 4
	if rows < 0 {
		return 0
	}
	return rows
}

func (r *Renderer) drawList(state *statepkg.SessionState, w, h int) {
	rows := r.listHeight(h)
	if rows == 0 {
		return
	}

	if len(state.Items) == 0 {
		r.drawTextLine(2, listStartRow, w-2, textutil.TruncateToWidth(r.emptyHint(state), w-2), r.theme.Hint)
		return
	}

	start, end := state.VisibleRange()
	if end-start > rows {
		end = start + rows
	}
	now := r.now()
	for i := start; i < end; i++ {
		y := listStartRow + (i - start)
		r.drawItem(state.Items[i], i == state.CursorIndex, y, w, now)
	}
}

func (r *Renderer) emptyHint(state *statepkg.SessionState) string {
	if state.Query == "" {
		return "No tries yet. Type a name and press Enter to create one."
	}
	name := r.now().Format(statepkg.DateLayout) + "-" + textutil.SanitizeTerminalText(state.Query)
	return "No matches. Enter creates " + name
}

func (r *Renderer) drawItem(item statepkg.RankedItem, selected bool, y, w int, now time.Time) {
	base, date, match := r.theme.Item, r.theme.DatePrefix, r.theme.Match
	if item.Entry.IsSymlink {
		base = r.theme.Symlink
	}
	if selected {
		base, date, match = r.theme.Selected, r.theme.Selected, r.theme.SelectedMatch
		r.fillRow(0, w, y, base)
	}

	marker := "  "
	if selected {
		marker = cursorMarker
	}
	x := r.drawTextLine(0, y, w, marker, base)

	age := textutil.RelativeAge(item.Entry.LastTouched(), now)
	ageWidth := r.measureTextWidth(age)
	nameMax := w - x - ageWidth - ageColumnGap
	showAge := nameMax >= minNameColumn
	if !showAge {
		nameMax = w - x
	}

	name := textutil.SanitizeTerminalText(norm.NFC.String(item.Entry.Name))
	if item.Entry.IsSymlink {
		name += " →"
	}
	name = textutil.TruncateToWidth(name, nameMax)

	positions := make(map[int]struct{}, len(item.Positions))
	for _, p := range item.Positions {
		positions[p] = struct{}{}
	}

	limit := x + nameMax
	if prefix, rest, ok := searchpkg.SplitDatePrefix(name); ok {
		x = r.drawHighlightedText(x, y, limit, prefix+"-", positions, 0, date, match)
		r.drawHighlightedText(x, y, limit, rest, positions, len([]rune(prefix))+1, base, match)
	} else {
		r.drawHighlightedText(x, y, limit, name, positions, 0, base, match)
	}

	if showAge {
		ageStyle := r.theme.Age
		if selected {
			ageStyle = r.theme.Selected
		}
		r.drawTextLine(w-ageWidth, y, ageWidth, age, ageStyle)
	}
}

func (r *Renderer) drawStatusLine(state *statepkg.SessionState, w, h int) {
	y := h - 2
	if y <= promptRow || state.Status == "" {
		return
	}
	style := r.theme.Status
	if state.LastError != nil {
		style = r.theme.Error
	}
	msg := textutil.TruncateToWidth(textutil.SanitizeTerminalText(state.Status), w)
	r.drawTextLine(0, y, w, msg, style)
}

func (r *Renderer) drawFooter(state *statepkg.SessionState, w, h int) {
	y := h - 1
	if y <= promptRow {
		return
	}
	text := textutil.TruncateToWidth(buildFooterHelpText(state), w)
	r.drawTextLine(0, y, w, text, r.theme.Footer)
}
