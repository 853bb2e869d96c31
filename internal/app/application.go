package app

import (
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/try/internal/fs"
	statepkg "github.com/kk-code-lab/try/internal/state"
	inputui "github.com/kk-code-lab/try/internal/ui/input"
	renderui "github.com/kk-code-lab/try/internal/ui/render"
	"go.uber.org/zap"
)

// Headless runs draw into a simulation screen of this size.
const (
	headlessWidth  = 80
	headlessHeight = 24
)

// ErrNoRoot is returned when Options.Root is empty.
var ErrNoRoot = errors.New("tries root is not set")

// Options configures one selector run.
type Options struct {
	Root   string
	Query  string
	Colors bool

	// Script, when non-nil, replaces the terminal: keys are replayed in
	// order against an off-screen buffer and the run ends as Cancel once
	// they run out.
	Script []*tcell.EventKey

	// Storage defaults to an fs.Store over Root.
	Storage statepkg.Storage
	// Screen overrides the terminal, mainly for tests.
	Screen tcell.Screen
	Logger *zap.Logger
	Now    func() time.Time
}

// Application represents the running selector.
type Application struct {
	screen   tcell.Screen
	state    *statepkg.SessionState
	reducer  *statepkg.StateReducer
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	events   EventSource
	logger   *zap.Logger

	// interactive is false for scripted runs, which never own a terminal.
	interactive bool
}

// NewApplication scans the root, prepares the screen and builds the
// initial session. A scan failure is fatal.
func NewApplication(opts Options) (*Application, error) {
	if opts.Root == "" {
		return nil, ErrNoRoot
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	catalog, err := fsutil.Scan(opts.Root)
	if err != nil {
		return nil, err
	}
	logger.Debug("scanned tries root", zap.String("root", opts.Root), zap.Int("entries", len(catalog)))

	storage := opts.Storage
	if storage == nil {
		storage = fsutil.NewStore(opts.Root,
			fsutil.WithLogger(logger),
			fsutil.WithClock(now),
			fsutil.WithUsageCache(fsutil.NewUsageCache()))
	}

	screen, events, err := openScreen(opts)
	if err != nil {
		return nil, err
	}

	reducer := statepkg.NewStateReducer(storage,
		statepkg.WithClock(now),
		statepkg.WithLogger(logger))
	state := reducer.NewSession(opts.Root, catalog, opts.Query)
	w, h := screen.Size()
	_, _ = reducer.Reduce(state, statepkg.ResizeAction{Width: w, Height: h})

	return &Application{
		screen:   screen,
		state:    state,
		reducer:  reducer,
		renderer: renderui.NewRenderer(screen, opts.Colors, renderui.WithClock(now)),
		input:    inputui.NewInputHandler(),
		events:   events,
		logger:   logger,

		interactive: opts.Script == nil,
	}, nil
}

func openScreen(opts Options) (tcell.Screen, EventSource, error) {
	if opts.Script != nil {
		screen := opts.Screen
		if screen == nil {
			sim := tcell.NewSimulationScreen("UTF-8")
			if err := sim.Init(); err != nil {
				return nil, nil, err
			}
			sim.SetSize(headlessWidth, headlessHeight)
			screen = sim
		}
		return screen, NewScriptSource(opts.Script), nil
	}

	screen := opts.Screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, nil, err
		}
		if err := screen.Init(); err != nil {
			return nil, nil, err
		}
		_ = flushConsoleInput()
	}
	return screen, NewScreenSource(screen), nil
}

// State exposes the session, mainly for tests.
func (app *Application) State() *statepkg.SessionState {
	return app.state
}

// Close restores the terminal.
func (app *Application) Close() {
	app.screen.Fini()
}

// Select runs a complete session and returns how it ended.
func Select(opts Options) (statepkg.Outcome, error) {
	app, err := NewApplication(opts)
	if err != nil {
		return statepkg.Outcome{}, err
	}
	defer app.Close()
	return app.Run(), nil
}
