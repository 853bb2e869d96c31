//go:build !windows

package fs

// skipInCatalog reports whether a root child must be left out of the catalog.
// Dot-directories are tool state, not tries.
func skipInCatalog(_ string, name string) bool {
	return name == "" || name[0] == '.'
}
