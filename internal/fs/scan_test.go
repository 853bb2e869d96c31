package fs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func mustWrite(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func entryNames(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

func TestScanMissingRootIsEmpty(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")

	entries, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil catalog, got %#v", entries)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Fatalf("Scan must not create the root, stat err = %v", err)
	}
}

func TestScanListsOnlyVisibleDirectories(t *testing.T) {
	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "2024-01-02-beta"))
	mustMkdir(t, filepath.Join(root, "2024-01-01-alpha"))
	mustMkdir(t, filepath.Join(root, ".cache"))
	mustWrite(t, filepath.Join(root, "notes.txt"), "x")

	entries, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	got := entryNames(entries)
	want := []string{"2024-01-01-alpha", "2024-01-02-beta"}
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names = %v, want %v", got, want)
		}
	}
	for _, e := range entries {
		if e.Path != filepath.Join(root, e.Name) {
			t.Errorf("entry %q path = %q", e.Name, e.Path)
		}
		if e.CreatedAt.IsZero() {
			t.Errorf("entry %q has zero CreatedAt", e.Name)
		}
	}
}

func TestScanIncludesDirectorySymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on Windows")
	}
	root := t.TempDir()
	outside := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(root, "linked")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := os.Symlink(filepath.Join(outside, "missing"), filepath.Join(root, "broken")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	entries, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "linked" {
		t.Fatalf("entries = %v, want [linked]", entryNames(entries))
	}
	if !entries[0].IsSymlink {
		t.Fatalf("expected linked entry to be flagged as symlink")
	}
}

func TestScanRootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	mustWrite(t, file, "x")

	_, err := Scan(file)
	if err == nil {
		t.Fatalf("expected error scanning a file root")
	}
	if _, ok := err.(*IOError); !ok {
		t.Fatalf("expected *IOError, got %T", err)
	}
}

func TestScanDetectsVisit(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "visited")
	mustMkdir(t, dir)

	later := time.Now().Add(48 * time.Hour)
	if err := os.Chtimes(dir, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	entries, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.CreatedAt.Equal(later) {
		// No birth time on this filesystem; mtime doubles as creation time.
		if entry.Visited() {
			t.Fatalf("entry without birth time must not report a visit")
		}
		return
	}
	if !entry.Visited() {
		t.Fatalf("expected visit to be detected, created=%v", entry.CreatedAt)
	}
	if !entry.LastTouched().Equal(entry.LastVisitedAt) {
		t.Fatalf("LastTouched = %v, want %v", entry.LastTouched(), entry.LastVisitedAt)
	}
}

func TestEntryLastTouched(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	e := Entry{CreatedAt: created}
	if !e.LastTouched().Equal(created) {
		t.Fatalf("unvisited LastTouched = %v", e.LastTouched())
	}
	e.LastVisitedAt = created.Add(time.Hour)
	if !e.LastTouched().Equal(created.Add(time.Hour)) {
		t.Fatalf("visited LastTouched = %v", e.LastTouched())
	}
	e.LastVisitedAt = created.Add(-time.Hour)
	if !e.LastTouched().Equal(created) {
		t.Fatalf("stale visit must not win, got %v", e.LastTouched())
	}
}
