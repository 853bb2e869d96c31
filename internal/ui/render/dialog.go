package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/try/internal/state"
	textutil "github.com/kk-code-lab/try/internal/textutil"
)

const (
	dialogMaxWidth = 64
	dialogHeight   = 8
)

// confirmDialogLines returns the body of the delete confirmation box.
func confirmDialogLines(pending *statepkg.PendingDelete) []string {
	files := "files"
	if pending.Usage.Files == 1 {
		files = "file"
	}
	return []string{
		"Delete " + textutil.SanitizeTerminalText(pending.Target.Name) + "?",
		textutil.SanitizeTerminalText(pending.Target.Path),
		fmt.Sprintf("%s %s, %s", textutil.Count(pending.Usage.Files), files, textutil.HumanBytes(pending.Usage.Bytes)),
		"",
		"Type " + statepkg.ConfirmationWord + " to confirm: " + textutil.SanitizeTerminalText(pending.Confirmation),
	}
}

func (r *Renderer) drawConfirmDialog(pending *statepkg.PendingDelete, w, h int) {
	boxW := w - 4
	if boxW > dialogMaxWidth {
		boxW = dialogMaxWidth
	}
	boxH := dialogHeight
	if boxH > h {
		boxH = h
	}
	if boxW < 10 || boxH < 3 {
		return
	}
	left := (w - boxW) / 2
	top := (h - boxH) / 2
	right := left + boxW - 1
	bottom := top + boxH - 1

	border := r.theme.DialogBorder
	for y := top; y <= bottom; y++ {
		r.fillRow(left, right+1, y, r.theme.Dialog)
		r.screen.SetContent(left, y, tcell.RuneVLine, nil, border)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, border)
	}
	for x := left; x <= right; x++ {
		r.screen.SetContent(x, top, tcell.RuneHLine, nil, border)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, border)
	}
	r.screen.SetContent(left, top, tcell.RuneULCorner, nil, border)
	r.screen.SetContent(right, top, tcell.RuneURCorner, nil, border)
	r.screen.SetContent(left, bottom, tcell.RuneLLCorner, nil, border)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, border)

	inner := boxW - 4
	lines := confirmDialogLines(pending)
	for i, line := range lines {
		y := top + 1 + i
		if y >= bottom {
			break
		}
		style := r.theme.Dialog
		if i == 0 {
			style = r.theme.DialogWarn
		}
		end := r.drawTextLine(left+2, y, inner, textutil.TruncateToWidth(line, inner), style)
		if i == len(lines)-1 && end < right {
			r.screen.ShowCursor(end, y)
		}
	}
}
