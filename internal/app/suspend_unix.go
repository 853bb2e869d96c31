//go:build !windows

package app

import (
	"syscall"

	statepkg "github.com/kk-code-lab/try/internal/state"
	"go.uber.org/zap"
)

func (app *Application) suspendToShell() {
	_ = app.screen.Suspend()
	// Stop only this process, not the group: the group includes the shell
	// function that launched us.
	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTSTP); err != nil {
		app.logger.Warn("suspend failed", zap.Error(err))
	}
}

// resumeAfterStop runs once the shell continues the process.
func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		app.logger.Warn("resume failed", zap.Error(err))
		return false
	}
	app.screen.Sync()
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		_, _ = app.reducer.Reduce(app.state, statepkg.ResizeAction{Width: w, Height: h})
	}
	return true
}
