package state

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	fsutil "github.com/kk-code-lab/try/internal/fs"
)

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func newTestReducer(storage Storage) *StateReducer {
	return NewStateReducer(storage, WithClock(testClock))
}

func mustReduce(t *testing.T, r *StateReducer, state *SessionState, actions ...Action) *SessionState {
	t.Helper()
	for _, action := range actions {
		var err error
		state, err = r.Reduce(state, action)
		if err != nil {
			t.Fatalf("Reduce(%T) returned error: %v", action, err)
		}
	}
	return state
}

func typeText(text string) []Action {
	actions := make([]Action, 0, len(text))
	for _, ch := range text {
		actions = append(actions, CharAction{Char: ch})
	}
	return actions
}

func makeTry(t *testing.T, root, name string, files map[string]string) FileEntry {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for rel, content := range files {
		if err := os.WriteFile(filepath.Join(dir, rel), []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return FileEntry{Name: name, Path: dir, CreatedAt: testNow.Add(-time.Hour)}
}

func itemNames(state *SessionState) []string {
	names := make([]string, len(state.Items))
	for i, item := range state.Items {
		names[i] = item.Entry.Name
	}
	return names
}

// ===== SCENARIOS =====

func TestScenarioQueryFiltersCatalog(t *testing.T) {
	root := t.TempDir()
	catalog := []FileEntry{
		makeTry(t, root, "2025-01-01-foo", nil),
		makeTry(t, root, "2025-06-01-bar", nil),
	}
	r := newTestReducer(fsutil.NewStore(root))
	state := r.NewSession(root, catalog, "")

	state = mustReduce(t, r, state, typeText("fo")...)

	if got := itemNames(state); len(got) != 1 || got[0] != "2025-01-01-foo" {
		t.Fatalf("items = %v, want [2025-01-01-foo]", got)
	}
	if state.Items[0].Score <= 0 {
		t.Fatalf("expected positive score, got %f", state.Items[0].Score)
	}
}

func TestScenarioFastCreateOnEmptyRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tries")
	r := newTestReducer(fsutil.NewStore(root, fsutil.WithClock(testClock)))
	state := r.NewSession(root, nil, "")

	state = mustReduce(t, r, state, typeText("demo")...)
	state = mustReduce(t, r, state, EnterAction{})

	if state.Mode != ModeDone || state.Outcome.Kind != OutcomeCreate {
		t.Fatalf("mode=%v outcome=%v, want done/create", state.Mode, state.Outcome.Kind)
	}
	wantPath := filepath.Join(root, "2025-06-10-demo")
	if state.Outcome.Entry.Path != wantPath {
		t.Fatalf("created path = %q, want %q", state.Outcome.Entry.Path, wantPath)
	}
	if info, err := os.Stat(wantPath); err != nil || !info.IsDir() {
		t.Fatalf("expected directory on disk, err=%v", err)
	}
}

func TestScenarioLowercaseConfirmationKeepsEntry(t *testing.T) {
	root := t.TempDir()
	entry := makeTry(t, root, "2025-01-01-foo", map[string]string{"a.txt": "hello", "b.txt": "!"})
	r := newTestReducer(fsutil.NewStore(root))
	state := r.NewSession(root, []FileEntry{entry}, "")

	state = mustReduce(t, r, state, DeleteAction{})
	if state.Mode != ModeConfirmDelete || state.Pending == nil {
		t.Fatalf("expected confirm mode, got %v", state.Mode)
	}
	before := state.Pending.Usage
	if before.Files != 2 || before.Bytes != 6 {
		t.Fatalf("usage = %+v, want 2 files / 6 bytes", before)
	}

	state = mustReduce(t, r, state, typeText("yes")...)
	state = mustReduce(t, r, state, EnterAction{})

	if state.Mode != ModeBrowsing || state.Pending != nil {
		t.Fatalf("expected browsing without pending delete, got %v", state.Mode)
	}
	if _, err := os.Stat(entry.Path); err != nil {
		t.Fatalf("entry must survive wrong confirmation: %v", err)
	}
	after, err := fsutil.NewStore(root).Measure(entry)
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if after != before {
		t.Fatalf("usage changed: %+v -> %+v", before, after)
	}
	if len(state.Catalog) != 1 || len(state.Items) != 1 {
		t.Fatalf("catalog must be unchanged, got %d entries", len(state.Catalog))
	}
}

func TestScenarioExactConfirmationDeletes(t *testing.T) {
	root := t.TempDir()
	keep := makeTry(t, root, "2025-01-01-keep", nil)
	gone := makeTry(t, root, "2025-01-02-gone", map[string]string{"x": "123"})
	gone.CreatedAt = testNow // newest, ranked first
	r := newTestReducer(fsutil.NewStore(root))
	state := r.NewSession(root, []FileEntry{keep, gone}, "")

	if sel, _ := state.Selected(); sel.Entry.Name != "2025-01-02-gone" {
		t.Fatalf("selected = %q, want the newest entry", sel.Entry.Name)
	}

	state = mustReduce(t, r, state, DeleteAction{})
	state = mustReduce(t, r, state, typeText("YES")...)
	state = mustReduce(t, r, state, EnterAction{})

	if _, err := os.Stat(gone.Path); !os.IsNotExist(err) {
		t.Fatalf("deleted entry still on disk, err = %v", err)
	}
	if state.Mode != ModeBrowsing {
		t.Fatalf("mode = %v, want browsing", state.Mode)
	}
	for _, e := range state.Catalog {
		if e.Name == gone.Name {
			t.Fatalf("deleted entry still in catalog")
		}
	}
	if got := itemNames(state); len(got) != 1 || got[0] != keep.Name {
		t.Fatalf("items = %v, want [%s]", got, keep.Name)
	}
	if !strings.Contains(state.Status, gone.Name) {
		t.Fatalf("status = %q, want mention of %q", state.Status, gone.Name)
	}
}

// ===== BROWSING =====

func TestEnterOpensSelectedEntryAndTouches(t *testing.T) {
	root := t.TempDir()
	entry := makeTry(t, root, "2025-01-01-foo", nil)
	storage := fsutil.NewStore(root, fsutil.WithClock(testClock))
	r := newTestReducer(storage)
	state := r.NewSession(root, []FileEntry{entry}, "")

	state = mustReduce(t, r, state, EnterAction{})

	if state.Outcome.Kind != OutcomeOpen || state.Outcome.Entry.Path != entry.Path {
		t.Fatalf("outcome = %+v, want open of %s", state.Outcome, entry.Path)
	}
	if !state.Outcome.Entry.LastVisitedAt.Equal(testNow) {
		t.Fatalf("visit time = %v, want %v", state.Outcome.Entry.LastVisitedAt, testNow)
	}
}

func TestEnterOnEmptyQueryAndListIsNoop(t *testing.T) {
	root := t.TempDir()
	r := newTestReducer(fsutil.NewStore(root))
	state := r.NewSession(root, nil, "")

	state = mustReduce(t, r, state, EnterAction{})
	if state.Mode != ModeBrowsing {
		t.Fatalf("mode = %v, want browsing", state.Mode)
	}
	if entries, _ := os.ReadDir(root); len(entries) != 0 {
		t.Fatalf("no-op enter created %v", entries)
	}
}

func TestCreateRejectsHostileQuery(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "tries")
	r := newTestReducer(fsutil.NewStore(root))
	state := r.NewSession(root, nil, "")

	state = mustReduce(t, r, state, typeText("x/../../evil")...)
	state, err := r.Reduce(state, EnterAction{})
	if err == nil || !fsutil.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if state.Mode != ModeBrowsing || state.LastError == nil || state.Status == "" {
		t.Fatalf("session must stay browsing with an error, got mode=%v status=%q", state.Mode, state.Status)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Fatalf("rejected create touched disk: %v", err)
	}

	// The error clears on the next action.
	state = mustReduce(t, r, state, BackspaceAction{})
	if state.LastError != nil || state.Status != "" {
		t.Fatalf("status should clear, got %q", state.Status)
	}
}

func TestCreateKeyWorksWithMatches(t *testing.T) {
	root := t.TempDir()
	existing := makeTry(t, root, "2025-01-01-foo", nil)
	r := newTestReducer(fsutil.NewStore(root, fsutil.WithClock(testClock)))
	state := r.NewSession(root, []FileEntry{existing}, "foo")

	if len(state.Items) != 1 {
		t.Fatalf("expected initial query to match")
	}
	state = mustReduce(t, r, state, CreateAction{})
	if state.Outcome.Kind != OutcomeCreate || state.Outcome.Entry.Name != "2025-06-10-foo" {
		t.Fatalf("outcome = %+v", state.Outcome)
	}
}

func TestCursorMovementClamps(t *testing.T) {
	root := t.TempDir()
	catalog := []FileEntry{
		makeTry(t, root, "a", nil),
		makeTry(t, root, "b", nil),
		makeTry(t, root, "c", nil),
	}
	r := newTestReducer(fsutil.NewStore(root))
	state := r.NewSession(root, catalog, "")

	state = mustReduce(t, r, state, MoveUpAction{})
	if state.CursorIndex != 0 {
		t.Fatalf("cursor = %d after up at top", state.CursorIndex)
	}
	state = mustReduce(t, r, state, MoveDownAction{}, MoveDownAction{}, MoveDownAction{}, MoveDownAction{})
	if state.CursorIndex != 2 {
		t.Fatalf("cursor = %d, want clamp at 2", state.CursorIndex)
	}
	state = mustReduce(t, r, state, CharAction{Char: 'b'})
	if state.CursorIndex != 0 {
		t.Fatalf("typing must reset cursor, got %d", state.CursorIndex)
	}

	empty := r.NewSession(root, nil, "")
	empty = mustReduce(t, r, empty, MoveDownAction{}, MoveUpAction{})
	if empty.CursorIndex != 0 {
		t.Fatalf("cursor on empty list = %d", empty.CursorIndex)
	}
}

func TestQueryEditing(t *testing.T) {
	r := newTestReducer(fsutil.NewStore(t.TempDir()))
	state := r.NewSession("", nil, "")

	state = mustReduce(t, r, state, typeText("redis stream")...)
	state = mustReduce(t, r, state, CharAction{Char: '\x07'})
	if state.Query != "redis stream" {
		t.Fatalf("control rune must be ignored, query = %q", state.Query)
	}
	state = mustReduce(t, r, state, DeleteWordAction{})
	if state.Query != "redis " {
		t.Fatalf("after delete word query = %q", state.Query)
	}
	state = mustReduce(t, r, state, BackspaceAction{})
	if state.Query != "redis" {
		t.Fatalf("after backspace query = %q", state.Query)
	}
	state = mustReduce(t, r, state, CharAction{Char: 'ü'}, BackspaceAction{})
	if state.Query != "redis" {
		t.Fatalf("backspace must drop a whole rune, query = %q", state.Query)
	}
	state = mustReduce(t, r, state, ClearQueryAction{})
	if state.Query != "" {
		t.Fatalf("after clear query = %q", state.Query)
	}
}

func TestCancelEndsSession(t *testing.T) {
	r := newTestReducer(fsutil.NewStore(t.TempDir()))
	state := r.NewSession("", nil, "")

	state = mustReduce(t, r, state, CancelAction{})
	if state.Mode != ModeDone || state.Outcome.Kind != OutcomeCancel {
		t.Fatalf("mode=%v outcome=%v", state.Mode, state.Outcome.Kind)
	}

	// Done is terminal.
	state = mustReduce(t, r, state, typeText("abc")...)
	state = mustReduce(t, r, state, EnterAction{})
	if state.Query != "" || state.Outcome.Kind != OutcomeCancel {
		t.Fatalf("terminal state changed: query=%q outcome=%v", state.Query, state.Outcome.Kind)
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	root := t.TempDir()
	var catalog []FileEntry
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		catalog = append(catalog, FileEntry{Name: name, Path: filepath.Join(root, name), CreatedAt: testNow})
	}
	r := newTestReducer(fsutil.NewStore(root))
	state := r.NewSession(root, catalog, "")
	state = mustReduce(t, r, state, ResizeAction{Width: 40, Height: chromeLines + 3})

	for i := 0; i < 5; i++ {
		state = mustReduce(t, r, state, MoveDownAction{})
	}
	if state.CursorIndex != 5 || state.ScrollOffset != 3 {
		t.Fatalf("cursor=%d scroll=%d, want 5/3", state.CursorIndex, state.ScrollOffset)
	}
	start, end := state.VisibleRange()
	if start != 3 || end != 6 {
		t.Fatalf("visible range = [%d,%d), want [3,6)", start, end)
	}
	for i := 0; i < 5; i++ {
		state = mustReduce(t, r, state, MoveUpAction{})
	}
	if state.ScrollOffset != 0 {
		t.Fatalf("scroll = %d, want 0", state.ScrollOffset)
	}
}

// ===== CONFIRM DELETE =====

type failingStorage struct {
	measureErr error
	deleteErr  error
	deleted    []FileEntry
}

func (f *failingStorage) Create(name string) (fsutil.Entry, error) {
	return fsutil.Entry{}, errors.New("not supported")
}

func (f *failingStorage) Measure(entry fsutil.Entry) (fsutil.Usage, error) {
	if f.measureErr != nil {
		return fsutil.Usage{}, f.measureErr
	}
	return fsutil.Usage{Files: 1, Bytes: 1}, nil
}

func (f *failingStorage) Delete(entry fsutil.Entry) (fsutil.Usage, error) {
	if f.deleteErr != nil {
		return fsutil.Usage{}, f.deleteErr
	}
	f.deleted = append(f.deleted, entry)
	return fsutil.Usage{Files: 1, Bytes: 1}, nil
}

func (f *failingStorage) Touch(entry fsutil.Entry) (fsutil.Entry, error) {
	return entry, nil
}

func TestConfirmModeTreatsKeysAsBufferEdits(t *testing.T) {
	storage := &failingStorage{}
	r := newTestReducer(storage)
	entry := FileEntry{Name: "victim", Path: "/tries/victim", CreatedAt: testNow}
	state := r.NewSession("/tries", []FileEntry{entry}, "")

	state = mustReduce(t, r, state, DeleteAction{})
	state = mustReduce(t, r, state,
		MoveDownAction{}, CreateAction{}, DeleteAction{},
		CharAction{Char: 'Y'}, CharAction{Char: 'E'}, CharAction{Char: 'X'}, BackspaceAction{}, CharAction{Char: 'S'},
	)
	if state.Mode != ModeConfirmDelete || state.Pending.Confirmation != "YES" {
		t.Fatalf("mode=%v confirmation=%q", state.Mode, state.Pending.Confirmation)
	}
	if state.Query != "" {
		t.Fatalf("typing in confirm mode leaked into query: %q", state.Query)
	}

	state = mustReduce(t, r, state, EnterAction{})
	if len(storage.deleted) != 1 || storage.deleted[0].Path != entry.Path {
		t.Fatalf("deleted = %v", storage.deleted)
	}
	if len(state.Items) != 0 || state.CursorIndex != 0 {
		t.Fatalf("items=%d cursor=%d after deleting the only entry", len(state.Items), state.CursorIndex)
	}
}

func TestConfirmModeCancel(t *testing.T) {
	storage := &failingStorage{}
	r := newTestReducer(storage)
	entry := FileEntry{Name: "victim", Path: "/tries/victim", CreatedAt: testNow}
	state := r.NewSession("/tries", []FileEntry{entry}, "")

	state = mustReduce(t, r, state, DeleteAction{}, CharAction{Char: 'Y'}, CancelAction{})
	if state.Mode != ModeBrowsing || state.Pending != nil {
		t.Fatalf("cancel must return to browsing, got %v", state.Mode)
	}
	if state.Status != "Delete cancelled" {
		t.Fatalf("status = %q", state.Status)
	}
	if len(storage.deleted) != 0 {
		t.Fatalf("cancel deleted %v", storage.deleted)
	}
}

func TestDeleteFailuresKeepSessionUsable(t *testing.T) {
	entry := FileEntry{Name: "victim", Path: "/tries/victim", CreatedAt: testNow}

	measureFail := &failingStorage{measureErr: &fsutil.IOError{Op: "measure", Path: entry.Path, Err: os.ErrPermission}}
	r := newTestReducer(measureFail)
	state := r.NewSession("/tries", []FileEntry{entry}, "")
	state, err := r.Reduce(state, DeleteAction{})
	if err == nil || state.Mode != ModeBrowsing || state.LastError == nil {
		t.Fatalf("measure failure: err=%v mode=%v", err, state.Mode)
	}

	deleteFail := &failingStorage{deleteErr: &fsutil.IOError{Op: "delete", Path: entry.Path, Err: os.ErrNotExist}}
	r = newTestReducer(deleteFail)
	state = r.NewSession("/tries", []FileEntry{entry}, "")
	state = mustReduce(t, r, state, DeleteAction{})
	state = mustReduce(t, r, state, typeText(ConfirmationWord)...)
	state, err = r.Reduce(state, EnterAction{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if state.Mode != ModeBrowsing || len(state.Catalog) != 1 || len(state.Items) != 1 {
		t.Fatalf("failed delete corrupted session: mode=%v catalog=%d", state.Mode, len(state.Catalog))
	}

	state = mustReduce(t, r, state, MoveDownAction{})
	if state.Mode != ModeBrowsing {
		t.Fatalf("session unusable after failure")
	}
}

func TestStaleDeleteThroughRealStore(t *testing.T) {
	root := t.TempDir()
	entry := makeTry(t, root, "stale", nil)
	r := newTestReducer(fsutil.NewStore(root))
	state := r.NewSession(root, []FileEntry{entry}, "")

	state = mustReduce(t, r, state, DeleteAction{})
	if err := os.RemoveAll(entry.Path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	state = mustReduce(t, r, state, typeText("YES")...)
	state, err := r.Reduce(state, EnterAction{})

	var ioErr *fsutil.IOError
	if !errors.As(err, &ioErr) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected IOError not-found, got %v", err)
	}
	if state.Mode != ModeBrowsing || len(state.Catalog) != 1 {
		t.Fatalf("session state corrupted: mode=%v catalog=%d", state.Mode, len(state.Catalog))
	}
	if _, err := os.Stat(root); err != nil {
		t.Fatalf("root affected: %v", err)
	}
}
