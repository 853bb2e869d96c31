package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var scriptKeys = map[string]tcell.Key{
	"UP":        tcell.KeyUp,
	"DOWN":      tcell.KeyDown,
	"ENTER":     tcell.KeyEnter,
	"RETURN":    tcell.KeyEnter,
	"ESC":       tcell.KeyEscape,
	"ESCAPE":    tcell.KeyEscape,
	"BACKSPACE": tcell.KeyBackspace2,
	"BS":        tcell.KeyBackspace2,
	"CTRL-C":    tcell.KeyCtrlC,
	"CTRL-D":    tcell.KeyCtrlD,
	"CTRL-N":    tcell.KeyCtrlN,
	"CTRL-P":    tcell.KeyCtrlP,
	"CTRL-T":    tcell.KeyCtrlT,
	"CTRL-U":    tcell.KeyCtrlU,
	"CTRL-W":    tcell.KeyCtrlW,
	"CTRL-Z":    tcell.KeyCtrlZ,
}

// ParseScript turns a comma-separated key script such as
// "TYPE=demo,DOWN,CTRL-D,TYPE=YES,ENTER" into key events. Named keys are
// case-insensitive, "CTRLD" is accepted for "CTRL-D", TYPE= text is taken
// verbatim and a lone character stands for itself. The result is never
// nil, so an empty script still selects headless mode.
func ParseScript(script string) ([]*tcell.EventKey, error) {
	events := []*tcell.EventKey{}
	for _, raw := range strings.Split(script, ",") {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}

		if len(token) >= 5 && strings.EqualFold(token[:5], "TYPE=") {
			for _, r := range token[5:] {
				events = append(events, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
			}
			continue
		}

		name := strings.ToUpper(token)
		if strings.HasPrefix(name, "CTRL") && !strings.HasPrefix(name, "CTRL-") {
			name = "CTRL-" + strings.TrimPrefix(name, "CTRL")
		}
		if key, ok := scriptKeys[name]; ok {
			mod := tcell.ModNone
			if strings.HasPrefix(name, "CTRL-") {
				mod = tcell.ModCtrl
			}
			events = append(events, tcell.NewEventKey(key, 0, mod))
			continue
		}

		if runes := []rune(token); len(runes) == 1 {
			events = append(events, tcell.NewEventKey(tcell.KeyRune, runes[0], tcell.ModNone))
			continue
		}
		return nil, fmt.Errorf("unknown key %q in script", token)
	}
	return events, nil
}
