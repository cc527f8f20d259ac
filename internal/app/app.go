// Package app is the composition root: it owns the terminal backend,
// the shared icon cache, the configuration manager, and the root
// modal controller, and routes key input to whichever controller or
// chooser is active.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/gridkey/internal/action"
	"github.com/dshills/gridkey/internal/chooser"
	"github.com/dshills/gridkey/internal/chord"
	"github.com/dshills/gridkey/internal/config"
	"github.com/dshills/gridkey/internal/grid"
	"github.com/dshills/gridkey/internal/icon"
	"github.com/dshills/gridkey/internal/modal"
	"github.com/dshills/gridkey/internal/script"
	"github.com/dshills/gridkey/internal/terminal"
	"github.com/dshills/gridkey/internal/theme"
)

// Options configures the application.
type Options struct {
	// ConfigPath pins an explicit config file. Empty searches the
	// standard locations.
	ConfigPath string

	// GridPath overrides the configured grid definition file.
	GridPath string

	// Logger is the process logger. It must not write to stderr
	// while the overlay runs.
	Logger zerolog.Logger
}

// App wires the pieces together and runs the event loop.
type App struct {
	log     zerolog.Logger
	manager *config.Manager
	backend *terminal.Backend
	cache   *icon.Cache
	root    *modal.Controller
	toggle  chord.Chord

	mu sync.Mutex

	// capture is the controller currently showing, or nil. Only one
	// controller in a submenu chain captures input at a time.
	capture *modal.Controller

	// Chooser state while the searchable fallback is open.
	session *chooser.Session
	view    *terminal.ChooserView
	onPick  func(*action.Action)
}

// New builds the application: load config, parse the grid, open the
// terminal.
func New(opts Options) (*App, error) {
	log := opts.Logger
	action.SetLogger(log)

	manager := config.NewManager(opts.ConfigPath, log)
	if err := manager.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := manager.Get()

	gridPath := opts.GridPath
	if gridPath == "" {
		gridPath = cfg.Grid.Path
	}
	if gridPath == "" {
		return nil, fmt.Errorf("no grid definition configured; set grid.path or pass --grid")
	}

	runner := script.NewRunner(script.WithLogger(log))
	loader := grid.NewLoader(grid.WithLogger(log), grid.WithScripts(runner))
	matrix, err := loader.LoadFile(gridPath)
	if err != nil {
		return nil, err
	}

	toggle, err := chord.Parse(cfg.Toggle)
	if err != nil {
		return nil, fmt.Errorf("toggle chord: %w", err)
	}
	var chooserChord chord.Chord
	if cfg.Chooser != "" {
		if chooserChord, err = chord.Parse(cfg.Chooser); err != nil {
			return nil, fmt.Errorf("chooser chord: %w", err)
		}
	}

	backend, err := terminal.NewBackend(log)
	if err != nil {
		return nil, err
	}

	a := &App{
		log:     log,
		manager: manager,
		backend: backend,
		cache:   icon.NewWithBatch(cfg.Icons.CacheCapacity, cfg.Icons.EvictBatch, icon.SystemDecoder{}),
		toggle:  toggle,
	}

	th := theme.Default().Apply(cfg.ThemeOverride())
	a.root = modal.New(modal.Options{
		Matrix:        matrix,
		Theme:         th,
		Surface:       backend.NewSurface(),
		NewSurface:    backend.NewSurface,
		Cache:         a.cache,
		Config:        cfg.Modal(),
		Toggle:        toggle,
		ChooserChord:  chooserChord,
		Chooser:       a.openChooser,
		Notify:        a.notify,
		OnStateChange: a.trackState,
		Logger:        log,
	})

	manager.OnConfigChange(a.applyConfig)
	manager.Watch()

	return a, nil
}

// Run blocks on the terminal event loop until the context is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	a.log.Info().Stringer("toggle", a.toggle).Msg("gridkey running")
	return a.backend.Run(ctx, a.HandleChord)
}

// Shutdown finalizes the terminal. Safe to call more than once.
func (a *App) Shutdown() {
	a.backend.Shutdown()
}

// CacheStats exposes icon cache counters for diagnostics.
func (a *App) CacheStats() icon.Stats {
	return a.cache.Stats()
}

// HandleChord routes one key chord: to the chooser when it is open,
// else to the showing controller, else the global toggle.
func (a *App) HandleChord(k chord.Chord) {
	a.mu.Lock()
	session := a.session
	capture := a.capture
	toggle := a.toggle
	a.mu.Unlock()

	if session != nil {
		a.handleChooserChord(k)
		return
	}
	if capture != nil {
		capture.HandleChord(k)
		return
	}
	if k.Equal(toggle) {
		a.root.Start()
	}
}

// trackState follows controller transitions so input routes to
// whichever controller currently shows.
func (a *App) trackState(c *modal.Controller, s modal.State) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch s {
	case modal.StateShowing:
		a.capture = c
	case modal.StateExiting, modal.StateIdle:
		if a.capture == c {
			a.capture = nil
		}
	}
}

// applyConfig absorbs a live config reload. Timing updates apply to
// the running controller; grid and theme changes need a restart.
func (a *App) applyConfig(cfg *config.Config) {
	a.root.SetConfig(cfg.Modal())
	if t, err := chord.Parse(cfg.Toggle); err == nil {
		a.mu.Lock()
		a.toggle = t
		a.mu.Unlock()
	}
	a.log.Info().Msg("configuration reloaded")
}

// notify surfaces a one-shot user-visible notice.
func (a *App) notify(msg string) {
	a.log.Warn().Msg(msg)
	terminal.Notice(a.backend.Screen(), msg)
}
