package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Scan lists the immediate subdirectories of root. A missing root yields an
// empty catalog. Symlinks that resolve to directories are listed; broken
// links, plain files and hidden entries are skipped. Entries come back
// sorted by name.
func Scan(root string) ([]Entry, error) {
	dirents, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, &IOError{Op: "scan", Path: root, Err: err}
	}

	entries := make([]Entry, 0, len(dirents))
	for _, dirent := range dirents {
		name := dirent.Name()
		full := filepath.Join(root, name)
		if skipInCatalog(full, name) {
			continue
		}
		info, err := os.Stat(full)
		if err != nil || !info.IsDir() {
			continue
		}
		entries = append(entries, newEntry(name, full, info, dirent.Type()&fs.ModeSymlink != 0))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}
