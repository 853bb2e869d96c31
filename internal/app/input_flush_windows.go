//go:build windows

package app

import "golang.org/x/sys/windows"

// flushConsoleInput drops keys typed before the screen opened, such as the
// Enter that launched the command.
func flushConsoleInput() error {
	handle, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return err
	}
	return windows.FlushConsoleInputBuffer(handle)
}
