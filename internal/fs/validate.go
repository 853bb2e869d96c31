package fs

import (
	"path/filepath"
	"strings"
)

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// ValidateName checks that name can only ever denote a direct child of a
// root directory. It never touches the filesystem.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if filepath.IsAbs(name) || isSeparator(rune(name[0])) || filepath.VolumeName(name) != "" {
		return ErrAbsolutePath
	}
	for _, segment := range strings.FieldsFunc(name, isSeparator) {
		if segment == ".." {
			return ErrPathTraversal
		}
	}
	if strings.IndexFunc(name, isSeparator) >= 0 {
		return ErrPathSeparator
	}
	if name == "." || strings.ContainsRune(name, 0) {
		return ErrInvalidName
	}
	return nil
}

// childPath joins a validated name onto root and confirms the result is a
// direct child.
func childPath(root, name string) (string, error) {
	cleanRoot := filepath.Clean(root)
	target := filepath.Join(cleanRoot, name)
	if filepath.Dir(target) != cleanRoot || target == cleanRoot {
		return "", ErrOutsideRoot
	}
	return target, nil
}

// containedChild verifies that path names an existing-or-not direct child of
// root, both lexically and after resolving symlinks on the parent chain.
func containedChild(root, path string) (string, error) {
	cleanRoot := filepath.Clean(root)
	target := filepath.Clean(path)
	if !filepath.IsAbs(target) {
		target = filepath.Join(cleanRoot, target)
	}
	if target == cleanRoot {
		return "", ErrIsRoot
	}

	rel, err := filepath.Rel(cleanRoot, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	if strings.ContainsRune(rel, filepath.Separator) {
		return "", ErrOutsideRoot
	}

	realRoot, err := filepath.EvalSymlinks(cleanRoot)
	if err != nil {
		return "", err
	}
	realParent, err := filepath.EvalSymlinks(filepath.Dir(target))
	if err != nil {
		return "", err
	}
	if realParent != realRoot {
		return "", ErrOutsideRoot
	}
	return target, nil
}
