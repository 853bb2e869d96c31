//go:build windows

package fs

import (
	"syscall"
)

const (
	fileAttributeHidden       = 0x02
	fileAttributeSystem       = 0x04
	fileAttributeReparsePoint = 0x0400
)

// skipInCatalog reports whether a root child must be left out of the catalog:
// dot-directories, entries flagged hidden, and system junctions.
func skipInCatalog(fullPath, name string) bool {
	if name == "" || name[0] == '.' {
		return true
	}
	ptr, err := syscall.UTF16PtrFromString(fullPath)
	if err != nil {
		return false
	}
	attrs, err := syscall.GetFileAttributes(ptr)
	if err != nil {
		return false
	}
	if attrs&fileAttributeHidden != 0 {
		return true
	}
	const junction = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&junction == junction
}
