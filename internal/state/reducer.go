package state

import (
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	fsutil "github.com/kk-code-lab/try/internal/fs"
	search "github.com/kk-code-lab/try/internal/search"
	"go.uber.org/zap"
)

// DateLayout prefixes names made by the create path.
const DateLayout = "2006-01-02"

// Storage is the filesystem surface the reducer drives. *fs.Store
// satisfies it; tests substitute fakes.
type Storage interface {
	Create(name string) (fsutil.Entry, error)
	Measure(entry fsutil.Entry) (fsutil.Usage, error)
	Delete(entry fsutil.Entry) (fsutil.Usage, error)
	Touch(entry fsutil.Entry) (fsutil.Entry, error)
}

// StateReducer applies actions to a SessionState. It mutates the state in
// place and returns it; a non-nil error is always recoverable and has
// already been recorded on the state for display.
type StateReducer struct {
	storage Storage
	ranker  *search.Ranker
	now     func() time.Time
	logger  *zap.Logger
}

type ReducerOption func(*StateReducer)

func WithRanker(ranker *search.Ranker) ReducerOption {
	return func(r *StateReducer) {
		if ranker != nil {
			r.ranker = ranker
		}
	}
}

func WithClock(now func() time.Time) ReducerOption {
	return func(r *StateReducer) {
		if now != nil {
			r.now = now
		}
	}
}

func WithLogger(logger *zap.Logger) ReducerOption {
	return func(r *StateReducer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewStateReducer(storage Storage, opts ...ReducerOption) *StateReducer {
	r := &StateReducer{
		storage: storage,
		ranker:  search.NewRanker(nil),
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewSession builds the initial Browsing state over a catalog snapshot.
func (r *StateReducer) NewSession(root string, catalog []FileEntry, query string) *SessionState {
	state := &SessionState{
		Root:    root,
		Catalog: append([]FileEntry(nil), catalog...),
		Query:   query,
		Mode:    ModeBrowsing,
	}
	r.rerank(state)
	return state
}

func (r *StateReducer) rerank(state *SessionState) {
	state.Items = r.ranker.Rank(state.Query, state.Catalog, r.now())
	state.CursorIndex = 0
	state.ScrollOffset = 0
}

func (r *StateReducer) Reduce(state *SessionState, action Action) (*SessionState, error) {
	if state.Mode == ModeDone {
		return state, nil
	}
	if a, ok := action.(ResizeAction); ok {
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.updateScrollVisibility()
		return state, nil
	}

	state.clearMessages()
	if state.Mode == ModeConfirmDelete {
		return r.reduceConfirm(state, action)
	}
	return r.reduceBrowsing(state, action)
}

func (r *StateReducer) reduceBrowsing(state *SessionState, action Action) (*SessionState, error) {
	switch a := action.(type) {

	// ===== QUERY =====

	case CharAction:
		if !unicode.IsPrint(a.Char) {
			return state, nil
		}
		state.Query += string(a.Char)
		r.rerank(state)
		return state, nil

	case BackspaceAction:
		if state.Query == "" {
			return state, nil
		}
		state.Query = dropLastRune(state.Query)
		r.rerank(state)
		return state, nil

	case DeleteWordAction:
		if state.Query == "" {
			return state, nil
		}
		state.Query = dropLastWord(state.Query)
		r.rerank(state)
		return state, nil

	case ClearQueryAction:
		if state.Query == "" {
			return state, nil
		}
		state.Query = ""
		r.rerank(state)
		return state, nil

	// ===== NAVIGATION =====

	case MoveUpAction:
		if len(state.Items) == 0 || state.CursorIndex <= 0 {
			return state, nil
		}
		state.CursorIndex--
		state.updateScrollVisibility()
		return state, nil

	case MoveDownAction:
		if len(state.Items) == 0 || state.CursorIndex >= len(state.Items)-1 {
			return state, nil
		}
		state.CursorIndex++
		state.updateScrollVisibility()
		return state, nil

	// ===== COMMANDS =====

	case EnterAction:
		if item, ok := state.Selected(); ok {
			return state, r.open(state, item.Entry)
		}
		if state.Query == "" {
			return state, nil
		}
		return state, r.create(state)

	case CreateAction:
		if state.Query == "" {
			return state, nil
		}
		return state, r.create(state)

	case DeleteAction:
		item, ok := state.Selected()
		if !ok {
			return state, nil
		}
		return state, r.beginDelete(state, item.Entry)

	case CancelAction:
		state.Mode = ModeDone
		state.Outcome = Outcome{Kind: OutcomeCancel}
		return state, nil
	}

	return state, nil
}

func (r *StateReducer) reduceConfirm(state *SessionState, action Action) (*SessionState, error) {
	pending := state.Pending
	if pending == nil {
		state.Mode = ModeBrowsing
		return state, nil
	}

	switch a := action.(type) {
	case CharAction:
		if unicode.IsPrint(a.Char) {
			pending.Confirmation += string(a.Char)
		}
	case BackspaceAction:
		pending.Confirmation = dropLastRune(pending.Confirmation)
	case DeleteWordAction:
		pending.Confirmation = dropLastWord(pending.Confirmation)
	case ClearQueryAction:
		pending.Confirmation = ""
	case EnterAction:
		return state, r.confirmDelete(state)
	case CancelAction:
		r.leaveConfirm(state)
		state.Status = "Delete cancelled"
	}
	return state, nil
}

// open finishes the session on an existing entry. A failed visit stamp is
// logged but does not block opening.
func (r *StateReducer) open(state *SessionState, entry FileEntry) error {
	touched, err := r.storage.Touch(entry)
	if err != nil {
		r.logger.Warn("recording visit failed", zap.String("path", entry.Path), zap.Error(err))
		touched = entry
	}
	state.Mode = ModeDone
	state.Outcome = Outcome{Kind: OutcomeOpen, Entry: touched}
	return nil
}

func (r *StateReducer) create(state *SessionState) error {
	name := r.now().Format(DateLayout) + "-" + state.Query
	entry, err := r.storage.Create(name)
	if err != nil {
		r.fail(state, "Cannot create", err)
		return err
	}

	state.Catalog = upsertEntry(state.Catalog, entry)
	state.Mode = ModeDone
	state.Outcome = Outcome{Kind: OutcomeCreate, Entry: entry}
	return nil
}

func (r *StateReducer) beginDelete(state *SessionState, entry FileEntry) error {
	usage, err := r.storage.Measure(entry)
	if err != nil {
		r.fail(state, "Cannot delete", err)
		return err
	}
	state.Mode = ModeConfirmDelete
	state.Pending = &PendingDelete{Target: entry, Usage: usage}
	return nil
}

func (r *StateReducer) confirmDelete(state *SessionState) error {
	pending := state.Pending
	if pending.Confirmation != ConfirmationWord {
		r.leaveConfirm(state)
		state.Status = "Delete cancelled"
		return nil
	}

	target := pending.Target
	r.leaveConfirm(state)
	if _, err := r.storage.Delete(target); err != nil {
		r.fail(state, "Delete failed", err)
		return err
	}

	state.Catalog = removeEntry(state.Catalog, target)
	prevCursor := state.CursorIndex
	r.rerank(state)
	state.CursorIndex = prevCursor
	state.clampCursor()
	state.updateScrollVisibility()
	state.Status = "Deleted: " + target.Name
	return nil
}

func (r *StateReducer) leaveConfirm(state *SessionState) {
	state.Mode = ModeBrowsing
	state.Pending = nil
}

func (r *StateReducer) fail(state *SessionState, prefix string, err error) {
	state.LastError = err
	state.Status = fmt.Sprintf("%s: %v", prefix, err)
	r.logger.Warn(prefix, zap.Error(err), zap.Bool("validation", fsutil.IsValidation(err)))
}

func upsertEntry(catalog []FileEntry, entry FileEntry) []FileEntry {
	for i := range catalog {
		if catalog[i].Path == entry.Path {
			catalog[i] = entry
			return catalog
		}
	}
	return append(catalog, entry)
}

func removeEntry(catalog []FileEntry, entry FileEntry) []FileEntry {
	out := catalog[:0]
	for _, e := range catalog {
		if e.Path != entry.Path {
			out = append(out, e)
		}
	}
	return out
}

func dropLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// dropLastWord removes trailing separators and then the word before them.
func dropLastWord(s string) string {
	runes := []rune(s)
	i := len(runes) - 1
	for i >= 0 && !isWordChar(runes[i]) {
		i--
	}
	for i >= 0 && isWordChar(runes[i]) {
		i--
	}
	return string(runes[:i+1])
}
