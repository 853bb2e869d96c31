package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/try/internal/state"
)

// InputHandler converts tcell events to Actions. It holds no state: the
// reducer decides what a key means in the current mode.
type InputHandler struct{}

// NewInputHandler creates a new input handler
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Translate maps an event to an Action. ok is false for events the
// selector ignores.
func (ih *InputHandler) Translate(ev tcell.Event) (statepkg.Action, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.translateKey(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		return statepkg.ResizeAction{Width: w, Height: h}, true
	default:
		return nil, false
	}
}

func (ih *InputHandler) translateKey(ev *tcell.EventKey) (statepkg.Action, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return statepkg.CancelAction{}, true
	case tcell.KeyEnter:
		return statepkg.EnterAction{}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return statepkg.BackspaceAction{}, true
	case tcell.KeyUp, tcell.KeyCtrlP:
		return statepkg.MoveUpAction{}, true
	case tcell.KeyDown, tcell.KeyCtrlN:
		return statepkg.MoveDownAction{}, true
	case tcell.KeyCtrlD:
		return statepkg.DeleteAction{}, true
	case tcell.KeyCtrlT:
		return statepkg.CreateAction{}, true
	case tcell.KeyCtrlW:
		return statepkg.DeleteWordAction{}, true
	case tcell.KeyCtrlU:
		return statepkg.ClearQueryAction{}, true
	case tcell.KeyCtrlZ:
		return statepkg.SuspendAction{}, true
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) != 0 {
			return nil, false
		}
		r := ev.Rune()
		if !unicode.IsPrint(r) {
			return nil, false
		}
		return statepkg.CharAction{Char: r}, true
	}
	return nil, false
}
