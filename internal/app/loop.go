package app

import (
	statepkg "github.com/kk-code-lab/try/internal/state"
	"go.uber.org/zap"
)

// Run drives the session to completion: draw, wait for one event, reduce,
// repeat. Everything happens on the calling goroutine.
func (app *Application) Run() statepkg.Outcome {
	for !app.state.Done() {
		app.renderer.Render(app.state)

		ev := app.events.NextEvent()
		if ev == nil {
			app.logger.Debug("input exhausted, cancelling")
			// A pending delete cancels back to browsing first.
			for !app.state.Done() {
				app.dispatch(statepkg.CancelAction{})
			}
			break
		}

		action, ok := app.input.Translate(ev)
		if !ok {
			continue
		}
		if _, suspend := action.(statepkg.SuspendAction); suspend {
			if app.interactive {
				app.suspendToShell()
				app.resumeAfterStop()
			}
			continue
		}
		app.dispatch(action)
	}

	outcome := app.state.Outcome
	app.logger.Info("session finished",
		zap.Stringer("outcome", outcome.Kind),
		zap.String("path", outcome.Entry.Path))
	return outcome
}

func (app *Application) dispatch(action statepkg.Action) {
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.logger.Debug("action failed", zap.String("status", app.state.Status), zap.Error(err))
	}
}
