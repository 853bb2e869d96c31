//go:build !linux && !darwin && !windows

package fs

import (
	"os"
	"time"
)

// Platforms without a portable birth time fall back to mtime.
func birthTime(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}
