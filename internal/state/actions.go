package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== QUERY ACTIONS =====

// CharAction types a rune into the query, or into the confirmation buffer
// while a delete is pending.
type CharAction struct {
	Char rune
}
type BackspaceAction struct{}
type DeleteWordAction struct{}
type ClearQueryAction struct{}

// ===== NAVIGATION ACTIONS =====

type MoveUpAction struct{}
type MoveDownAction struct{}

// ===== COMMAND ACTIONS =====

type EnterAction struct{}
type CreateAction struct{}
type DeleteAction struct{}
type CancelAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

// SuspendAction hands the terminal back to the shell (Ctrl-Z). The
// application loop handles it; the reducer ignores it.
type SuspendAction struct{}
