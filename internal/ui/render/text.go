package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru >= 0 && ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 {
			actualWidth := runewidth.RuneWidth(ru)
			if actualWidth < 0 {
				actualWidth = 0
			}
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actualWidth + 1
			r.runeWidthCacheMu.Unlock()
			return actualWidth
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}

	width := runewidth.RuneWidth(ru)
	if width < 0 {
		width = 0
	}
	r.runeWidthWide.Store(ru, width)
	return width
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.cachedRuneWidth(ru)
	}
	return width
}

// drawTextLine draws text from startX, clipped to maxWidth cells, and
// returns the next free column. Zero-width runes attach to the previous
// cell as combining characters.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		mainc := runes[i]
		w := r.cachedRuneWidth(mainc)
		if w <= 0 {
			w = 1
		}
		if x-startX+w > maxWidth {
			break
		}
		i++

		var combc []rune
		for i < len(runes) && r.cachedRuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}

func (r *Renderer) drawStyledRune(x, y, maxX int, ru rune, style tcell.Style) int {
	width := r.cachedRuneWidth(ru)
	if width <= 0 {
		width = 1
	}
	if x+width > maxX {
		return maxX
	}

	r.screen.SetContent(x, y, ru, nil, style)
	for w := 1; w < width; w++ {
		r.screen.SetContent(x+w, y, ' ', nil, style)
	}
	return x + width
}

// drawHighlightedText draws text with the runes at the given indexes in
// highlightStyle. offset shifts the indexes when text is a suffix of the
// string the positions refer to.
func (r *Renderer) drawHighlightedText(startX, y, maxX int, text string, positions map[int]struct{}, offset int, baseStyle, highlightStyle tcell.Style) int {
	x := startX
	idx := offset
	for _, ru := range text {
		if x >= maxX {
			break
		}
		style := baseStyle
		if _, ok := positions[idx]; ok {
			style = highlightStyle
		}
		x = r.drawStyledRune(x, y, maxX, ru, style)
		idx++
	}
	return x
}

func (r *Renderer) fillRow(startX, endX, y int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}
