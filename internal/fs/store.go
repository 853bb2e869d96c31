package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Store performs every mutation under a single tries root. The root is fixed
// at construction; nothing here consults process-wide state.
type Store struct {
	root   string
	logger *zap.Logger
	usage  *UsageCache
	now    func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithUsageCache(cache *UsageCache) StoreOption {
	return func(s *Store) {
		s.usage = cache
	}
}

func NewStore(root string, opts ...StoreOption) *Store {
	s := &Store{
		root:   filepath.Clean(root),
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Root() string { return s.root }

// Scan lists the store's root.
func (s *Store) Scan() ([]Entry, error) {
	return Scan(s.root)
}

// Create makes root/name, creating the root as well when it is missing. An
// existing directory with that name is reused as is.
func (s *Store) Create(name string) (Entry, error) {
	if err := ValidateName(name); err != nil {
		return Entry{}, &ValidationError{Op: "create", Name: name, Err: err}
	}
	target, err := childPath(s.root, name)
	if err != nil {
		return Entry{}, &ValidationError{Op: "create", Name: name, Err: err}
	}

	info, err := os.Stat(target)
	switch {
	case err == nil && info.IsDir():
		s.logger.Info("reusing existing try", zap.String("path", target))
		return newEntry(name, target, info, isSymlink(target)), nil
	case err == nil:
		return Entry{}, &IOError{Op: "create", Path: target, Err: ErrNotDirectory}
	case !errors.Is(err, iofs.ErrNotExist):
		return Entry{}, &IOError{Op: "create", Path: target, Err: err}
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return Entry{}, &IOError{Op: "create", Path: target, Err: err}
	}
	s.usage.Forget(target)
	s.logger.Info("created try", zap.String("path", target))
	return Entry{Name: name, Path: target, CreatedAt: s.now()}, nil
}

// Measure counts the regular files and bytes an entry would free if deleted.
func (s *Store) Measure(entry Entry) (Usage, error) {
	target, err := s.resolve("measure", entry)
	if err != nil {
		return Usage{}, err
	}
	if usage, ok := s.usage.Get(target); ok {
		return usage, nil
	}
	usage, err := treeUsage(target)
	if err != nil {
		return Usage{}, &IOError{Op: "measure", Path: target, Err: err}
	}
	s.usage.Set(target, usage)
	s.logger.Debug("measured try",
		zap.String("path", target),
		zap.Int64("files", usage.Files),
		zap.Int64("bytes", usage.Bytes))
	return usage, nil
}

// Delete removes an entry's directory tree and reports what was removed. A
// symlinked entry loses only the link. Deleting a path that no longer exists
// fails with an IOError wrapping fs.ErrNotExist.
func (s *Store) Delete(entry Entry) (Usage, error) {
	target, err := s.resolve("delete", entry)
	if err != nil {
		return Usage{}, err
	}
	usage, err := treeUsage(target)
	if err != nil {
		return Usage{}, &IOError{Op: "delete", Path: target, Err: err}
	}
	if err := os.RemoveAll(target); err != nil {
		return Usage{}, &IOError{Op: "delete", Path: target, Err: err}
	}
	s.usage.Forget(target)
	s.logger.Info("deleted try",
		zap.String("path", target),
		zap.Int64("files", usage.Files),
		zap.Int64("bytes", usage.Bytes))
	return usage, nil
}

// Touch records a visit by stamping the entry's directory with the current
// time.
func (s *Store) Touch(entry Entry) (Entry, error) {
	target, err := s.resolve("touch", entry)
	if err != nil {
		return entry, err
	}
	now := s.now()
	if err := os.Chtimes(target, now, now); err != nil {
		return entry, &IOError{Op: "touch", Path: target, Err: err}
	}
	entry.LastVisitedAt = now
	return entry, nil
}

// resolve applies the containment checks shared by every operation that acts
// on an existing entry and confirms the target is still there.
func (s *Store) resolve(op string, entry Entry) (string, error) {
	path := entry.Path
	if path == "" {
		path = filepath.Join(s.root, entry.Name)
	}
	if name := filepath.Base(filepath.Clean(path)); ValidateName(name) != nil {
		return "", &ValidationError{Op: op, Name: path, Err: ErrOutsideRoot}
	}

	target, err := containedChild(s.root, path)
	if err != nil {
		if errors.Is(err, ErrIsRoot) || errors.Is(err, ErrOutsideRoot) {
			return "", &ValidationError{Op: op, Name: path, Err: err}
		}
		return "", &IOError{Op: op, Path: path, Err: err}
	}
	if _, err := os.Lstat(target); err != nil {
		return "", &IOError{Op: op, Path: target, Err: err}
	}
	return target, nil
}

func isSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&iofs.ModeSymlink != 0
}

// treeUsage walks path without following symlinks. Unreadable subtrees are
// skipped rather than failing the whole measurement.
func treeUsage(path string) (Usage, error) {
	var usage Usage
	err := filepath.WalkDir(path, func(current string, d iofs.DirEntry, err error) error {
		if err != nil {
			if current == path {
				return err
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		usage.Files++
		usage.Bytes += info.Size()
		return nil
	})
	return usage, err
}
