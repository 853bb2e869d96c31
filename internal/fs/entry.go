package fs

import (
	"os"
	"time"
)

// visitSlack is how far a directory's mtime must trail its birth time before
// the entry counts as visited. Creating files inside a fresh directory bumps
// mtime by a few milliseconds and should not read as a visit.
const visitSlack = time.Second

// Entry is one immediate subdirectory of the tries root.
type Entry struct {
	Name          string
	Path          string
	CreatedAt     time.Time
	LastVisitedAt time.Time // zero when never opened
	IsSymlink     bool
}

// Visited reports whether the entry carries a visit time.
func (e Entry) Visited() bool {
	return !e.LastVisitedAt.IsZero()
}

// LastTouched is the later of the visit and creation times.
func (e Entry) LastTouched() time.Time {
	if e.LastVisitedAt.After(e.CreatedAt) {
		return e.LastVisitedAt
	}
	return e.CreatedAt
}

func newEntry(name, path string, info os.FileInfo, symlink bool) Entry {
	created := birthTime(path, info)
	entry := Entry{
		Name:      name,
		Path:      path,
		CreatedAt: created,
		IsSymlink: symlink,
	}
	if modified := info.ModTime(); modified.Sub(created) > visitSlack {
		entry.LastVisitedAt = modified
	}
	return entry
}
