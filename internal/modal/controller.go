package modal

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/gridkey/internal/action"
	"github.com/dshills/gridkey/internal/binding"
	"github.com/dshills/gridkey/internal/chord"
	"github.com/dshills/gridkey/internal/icon"
	"github.com/dshills/gridkey/internal/render"
	"github.com/dshills/gridkey/internal/theme"
)

// cancelChord is always bound: Escape closes the overlay with no
// selection.
var cancelChord = chord.New(nil, "escape")

// ChooserFunc presents a searchable list over flattened bindings and
// invokes onSelect with the chosen action. Selecting there runs the
// action's handler directly, bypassing grid dispatch.
type ChooserFunc func(entries []action.FlatEntry, onSelect func(*action.Action)) error

// Options configures a Controller.
type Options struct {
	// Matrix is the action grid this controller dispatches over.
	Matrix action.Matrix

	// Theme feeds geometry and timing to the render pipeline.
	Theme theme.Theme

	// Surface is the drawing surface for this controller's grid.
	Surface render.Surface

	// NewSurface creates surfaces for lazily resolved child
	// controllers. Required when the matrix contains submenus.
	NewSurface func() render.Surface

	// Cache is the process-wide icon cache, shared by reference.
	Cache *icon.Cache

	// Config is the timing surface.
	Config Config

	// Toggle is the chord that opens this controller; pressing it
	// again while showing closes with no selection. Zero disables.
	Toggle chord.Chord

	// ChooserChord opens the searchable-selection fallback. Zero
	// disables.
	ChooserChord chord.Chord

	// Chooser is the optional searchable-selection collaborator.
	Chooser ChooserFunc

	// Notify surfaces one-shot user-visible notices.
	Notify func(string)

	// OnStateChange is invoked (outside the lock) after every state
	// transition; the composition root uses it to route key input to
	// the active controller.
	OnStateChange func(*Controller, State)

	// Logger for state transitions and dropped callbacks.
	Logger zerolog.Logger
}

// Controller is the overlay state machine.
type Controller struct {
	mu sync.Mutex

	state State
	cfg   Config

	matrix   action.Matrix
	table    *binding.Table
	pipeline *render.Pipeline
	cache    *icon.Cache

	toggle       chord.Chord
	chooserChord chord.Chord
	chooser      ChooserFunc
	notify       func(string)
	onState      func(*Controller, State)
	newSurface   func() render.Surface
	th           theme.Theme
	log          zerolog.Logger

	// children memoizes resolved submenu controllers by the owning
	// binding's stable ID, instead of writing back onto the shared
	// action value.
	children map[string]*Controller

	// timer is the single armed show-or-hide timer slot. Arming one
	// cancels the other. gen invalidates a stale fire.
	timer *time.Timer
	gen   uint64

	// active is true only while Showing; icon-load completions check
	// it before touching the pipeline.
	active bool
}

// New creates a controller for an action matrix. The matrix gets
// position-derived stable IDs and its active cells are bound into the
// dispatch table.
func New(opts Options) *Controller {
	opts.Matrix.EnsureIDs()

	c := &Controller{
		cfg:          opts.Config,
		matrix:       opts.Matrix,
		table:        binding.FromMatrix(opts.Matrix),
		pipeline:     render.New(opts.Matrix, opts.Theme, opts.Surface),
		cache:        opts.Cache,
		toggle:       opts.Toggle,
		chooserChord: opts.ChooserChord,
		chooser:      opts.Chooser,
		notify:       opts.Notify,
		onState:      opts.OnStateChange,
		newSurface:   opts.NewSurface,
		th:           opts.Theme,
		log:          opts.Logger,
		children:     make(map[string]*Controller),
	}
	if c.notify == nil {
		c.notify = func(string) {}
	}
	return c
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// TimerArmed reports whether a show or hide timer is pending.
func (c *Controller) TimerArmed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// Bindings exposes the dispatch table for diagnostics.
func (c *Controller) Bindings() *binding.Table {
	return c.table
}

// SetConfig replaces the timing surface. Takes effect on the next
// transition; an armed timer keeps its original duration.
func (c *Controller) SetConfig(cfg Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
}

// Start opens the overlay. From Idle it either presents immediately
// (zero show-delay) or arms a cancellable timer; a Stop before the
// timer fires returns to Idle without ever presenting. A Start while
// Exiting cancels the pending dismissal and re-presents.
func (c *Controller) Start() {
	c.mu.Lock()

	switch c.state {
	case StateEntering, StateShowing:
		c.mu.Unlock()
		return

	case StateExiting:
		// Re-entry during the hide-delay window cancels the pending
		// release.
		c.cancelTimerLocked()
		c.presentLocked()
		return

	case StateIdle:
		c.setStateLocked(StateEntering)
		if c.cfg.ShowDelay <= 0 {
			c.presentLocked()
			return
		}
		c.armTimerLocked(c.cfg.ShowDelay, c.present)
		c.mu.Unlock()
		c.emitState(StateEntering)
	}
}

// Stop closes the overlay with no selection. Idempotent: on an Idle
// controller it is a no-op and leaves no timers armed.
func (c *Controller) Stop() {
	c.stop("")
}

// stop closes the overlay. selectedID is reserved for future
// highlight use; it is passed through to the render pipeline's
// highlight seam and otherwise unused.
func (c *Controller) stop(selectedID string) {
	c.mu.Lock()

	switch c.state {
	case StateIdle, StateExiting:
		c.mu.Unlock()
		return

	case StateEntering:
		// Never presented; cancel the show timer and go home.
		c.cancelTimerLocked()
		c.setStateLocked(StateIdle)
		c.mu.Unlock()
		c.emitState(StateIdle)
		return

	case StateShowing:
		c.active = false
		c.setStateLocked(StateExiting)
		c.armTimerLocked(c.cfg.AnimationDelay, c.finishExit)
		pipeline := c.pipeline
		c.mu.Unlock()

		if selectedID != "" {
			pipeline.HighlightCell(selectedID)
		}
		pipeline.Dismiss()
		c.emitState(StateExiting)
	}
}

// HandleChord dispatches one key chord. Ignored unless Showing.
func (c *Controller) HandleChord(k chord.Chord) {
	c.mu.Lock()
	if c.state != StateShowing {
		c.mu.Unlock()
		return
	}
	toggle := c.toggle
	chooserChord := c.chooserChord
	c.mu.Unlock()

	// Reserved chords win over user bindings of the same value; the
	// source left this precedence to registration order, which was
	// almost certainly unintentional.
	switch {
	case k.Equal(cancelChord):
		c.Stop()
		return

	case !toggle.IsZero() && k.Equal(toggle):
		// Pressing the trigger again closes rather than reopens.
		c.Stop()
		return

	case !chooserChord.IsZero() && k.Equal(chooserChord):
		c.Stop()
		c.openChooser()
		return
	}

	a, ok := c.table.LookupChord(k)
	if !ok {
		if c.cfg.InvalidKeyAlert {
			c.notify("unbound: " + k.DisplayString() + " (valid: " + c.table.DescribeValidChords() + ")")
		}
		return
	}

	if a.Submenu != nil {
		child := c.resolveChild(a)
		// No selection feedback for submenu entry.
		c.Stop()
		c.afterFade(child.Start)
		return
	}

	handler := a.Handler()
	c.stop(a.ID)
	c.afterFade(handler)
}

// presentLocked transitions to Showing and performs presentation side
// effects outside the lock. Caller must hold the lock; it is released
// here.
func (c *Controller) presentLocked() {
	c.setStateLocked(StateShowing)
	c.active = true
	pipeline := c.pipeline
	c.mu.Unlock()

	pipeline.Present()
	c.emitState(StateShowing)
	c.loadIcons()
}

// present is the show-timer callback.
func (c *Controller) present() {
	c.mu.Lock()
	if c.state != StateEntering {
		c.mu.Unlock()
		return
	}
	c.presentLocked()
}

// finishExit is the hide-timer callback: release render resources and
// settle in Idle, unless the controller was re-entered meanwhile.
func (c *Controller) finishExit() {
	c.mu.Lock()
	if c.state != StateExiting {
		c.mu.Unlock()
		return
	}
	c.setStateLocked(StateIdle)
	pipeline := c.pipeline
	c.mu.Unlock()

	pipeline.Release()
	c.emitState(StateIdle)
}

// loadIcons fans out fire-and-forget loads for every cell with a
// loadable icon source. Completions that arrive after the overlay
// closed are dropped by the active guard.
func (c *Controller) loadIcons() {
	for _, row := range c.matrix {
		for _, a := range row {
			if a == nil || a.IconSource.IsZero() || c.cache == nil {
				continue
			}
			id := a.ID
			c.cache.LoadAsync(context.Background(), id, a.IconSource, func(asset *icon.Asset) {
				if asset == nil {
					// Load failed; the generated placeholder stays.
					return
				}
				c.mu.Lock()
				live := c.active
				c.mu.Unlock()
				if !live {
					c.log.Debug().Str("cell", id).Msg("icon load after dismissal dropped")
					return
				}
				c.pipeline.UpdateIcon(id, asset)
			})
		}
	}
}

// resolveChild lazily materializes the child controller for a submenu
// binding, memoized so repeat activation reuses it.
func (c *Controller) resolveChild(a *action.Action) *Controller {
	c.mu.Lock()
	defer c.mu.Unlock()

	if child, ok := c.children[a.ID]; ok {
		return child
	}

	var surface render.Surface
	if c.newSurface != nil {
		surface = c.newSurface()
	}

	child := New(Options{
		Matrix:        *a.Submenu,
		Theme:         c.th,
		Surface:       surface,
		NewSurface:    c.newSurface,
		Cache:         c.cache,
		Config:        c.cfg,
		Toggle:        chord.New(a.Mods, a.Key),
		ChooserChord:  c.chooserChord,
		Chooser:       c.chooser,
		Notify:        c.notify,
		OnStateChange: c.onState,
		Logger:        c.log,
	})
	c.children[a.ID] = child
	return child
}

// openChooser presents the searchable-selection collaborator over a
// flattened view of all bindings.
func (c *Controller) openChooser() {
	if c.chooser == nil {
		c.notify("chooser unavailable")
		return
	}

	entries := c.matrix.FlattenActive()
	if len(entries) == 0 {
		c.notify("no bindable actions")
		return
	}

	if err := c.chooser(entries, func(a *action.Action) {
		a.Handler()()
	}); err != nil {
		c.notify("chooser failed: " + err.Error())
	}
}

// afterFade schedules fn after the configured fade duration, so the
// user perceives the close before the side effect fires. Separate
// from the single-slot show/hide timer.
func (c *Controller) afterFade(fn func()) {
	c.mu.Lock()
	fade := c.cfg.Fade
	c.mu.Unlock()

	if fade <= 0 {
		fn()
		return
	}
	time.AfterFunc(fade, fn)
}

// armTimerLocked arms the single timer slot, cancelling whatever was
// armed before. Caller must hold the lock.
func (c *Controller) armTimerLocked(d time.Duration, fn func()) {
	c.cancelTimerLocked()
	c.gen++
	gen := c.gen
	c.timer = time.AfterFunc(d, func() {
		c.mu.Lock()
		if c.gen != gen {
			c.mu.Unlock()
			return
		}
		c.timer = nil
		c.mu.Unlock()
		fn()
	})
}

// cancelTimerLocked stops any pending timer and invalidates in-flight
// fires. Caller must hold the lock.
func (c *Controller) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

// setStateLocked records a transition. Caller must hold the lock.
func (c *Controller) setStateLocked(s State) {
	if c.state == s {
		return
	}
	c.log.Debug().Stringer("from", c.state).Stringer("to", s).Msg("modal transition")
	c.state = s
}

// emitState notifies the state-change callback outside the lock.
func (c *Controller) emitState(s State) {
	if c.onState != nil {
		c.onState(c, s)
	}
}
