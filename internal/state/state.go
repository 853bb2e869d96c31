package state

import (
	fsutil "github.com/kk-code-lab/try/internal/fs"
	search "github.com/kk-code-lab/try/internal/search"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry
type RankedItem = search.RankedItem

// ConfirmationWord must be typed exactly to confirm a deletion.
const ConfirmationWord = "YES"

// Rows taken by the header, prompt, status and footer around the list.
const chromeLines = 4

type Mode int

const (
	ModeBrowsing Mode = iota
	ModeConfirmDelete
	ModeDone
)

func (m Mode) String() string {
	switch m {
	case ModeBrowsing:
		return "browsing"
	case ModeConfirmDelete:
		return "confirm-delete"
	case ModeDone:
		return "done"
	default:
		return "unknown"
	}
}

type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeOpen
	OutcomeCreate
	OutcomeCancel
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOpen:
		return "open"
	case OutcomeCreate:
		return "create"
	case OutcomeCancel:
		return "cancel"
	default:
		return "none"
	}
}

// Outcome is how a session ended. Entry is set for Open and Create.
type Outcome struct {
	Kind  OutcomeKind
	Entry FileEntry
}

// PendingDelete holds the entry awaiting confirmation together with the
// usage measured when the dialog opened.
type PendingDelete struct {
	Target       FileEntry
	Usage        fsutil.Usage
	Confirmation string
}

// SessionState is the single source of truth for one selector run.
type SessionState struct {
	Root    string
	Catalog []FileEntry // snapshot taken at start, patched by create/delete

	Query        string
	Items        []RankedItem // Catalog filtered and ranked by Query
	CursorIndex  int
	ScrollOffset int

	Mode    Mode
	Pending *PendingDelete
	Outcome Outcome

	Status    string
	LastError error

	ScreenWidth  int
	ScreenHeight int
}

// Selected returns the item under the cursor.
func (s *SessionState) Selected() (RankedItem, bool) {
	if s.CursorIndex < 0 || s.CursorIndex >= len(s.Items) {
		return RankedItem{}, false
	}
	return s.Items[s.CursorIndex], true
}

// Done reports whether the session reached its terminal mode.
func (s *SessionState) Done() bool {
	return s.Mode == ModeDone
}

// VisibleLines is the number of list rows that fit on screen.
func (s *SessionState) VisibleLines() int {
	lines := s.ScreenHeight - chromeLines
	if lines < 1 {
		return 1
	}
	return lines
}

// VisibleRange returns the half-open range of Items currently on screen.
func (s *SessionState) VisibleRange() (start, end int) {
	start = s.ScrollOffset
	end = start + s.VisibleLines()
	if end > len(s.Items) {
		end = len(s.Items)
	}
	if start > end {
		start = end
	}
	return start, end
}

func (s *SessionState) clampCursor() {
	if len(s.Items) == 0 {
		s.CursorIndex = 0
		return
	}
	if s.CursorIndex < 0 {
		s.CursorIndex = 0
	}
	if s.CursorIndex > len(s.Items)-1 {
		s.CursorIndex = len(s.Items) - 1
	}
}

func (s *SessionState) updateScrollVisibility() {
	visibleLines := s.VisibleLines()

	if s.CursorIndex < s.ScrollOffset {
		s.ScrollOffset = s.CursorIndex
	} else if s.CursorIndex >= s.ScrollOffset+visibleLines {
		s.ScrollOffset = s.CursorIndex - visibleLines + 1
	}

	maxOffset := len(s.Items) - visibleLines
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
}

func (s *SessionState) clearMessages() {
	s.Status = ""
	s.LastError = nil
}
