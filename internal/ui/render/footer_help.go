package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/try/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.SessionState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

func buildFooterHelpSegments(state *statepkg.SessionState) []string {
	if state == nil {
		return nil
	}

	switch state.Mode {
	case statepkg.ModeConfirmDelete:
		return []string{
			"type " + statepkg.ConfirmationWord + ": confirm",
			"↵: submit",
			"Esc: back",
		}
	case statepkg.ModeDone:
		return nil
	}

	segments := []string{"↑↓/^P^N: select"}
	switch {
	case len(state.Items) > 0:
		segments = append(segments, "↵: open")
	case state.Query != "":
		segments = append(segments, "↵: create")
	}
	if state.Query != "" {
		segments = append(segments, "^T: new from query")
	}
	if len(state.Items) > 0 {
		segments = append(segments, "^D: delete")
	}
	segments = append(segments, "^W/^U: edit", "Esc: quit")
	return segments
}
