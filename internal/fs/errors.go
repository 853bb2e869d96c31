package fs

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyName     = errors.New("name is empty")
	ErrInvalidName   = errors.New("name is not a valid directory name")
	ErrAbsolutePath  = errors.New("name is an absolute path")
	ErrPathTraversal = errors.New("name contains a '..' segment")
	ErrPathSeparator = errors.New("name contains a path separator")
	ErrOutsideRoot   = errors.New("path is not a direct child of the root")
	ErrIsRoot        = errors.New("path is the root itself")
	ErrNotDirectory  = errors.New("path exists and is not a directory")
)

// IOError reports a failed filesystem operation against a concrete path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

// ValidationError reports a name or path that was refused before any
// filesystem mutation took place.
type ValidationError struct {
	Op   string
	Name string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidation reports whether err was produced by name or containment checks.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
