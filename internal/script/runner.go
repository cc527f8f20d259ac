package script

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single chunk execution.
const DefaultTimeout = 5 * time.Second

// Runner executes Lua chunks. Safe for concurrent use: every
// execution owns a private LState, since gopher-lua states are not
// goroutine-safe.
type Runner struct {
	timeout time.Duration
	log     zerolog.Logger
	globals map[string]lua.LGFunction
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the per-execution deadline.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithLogger sets the failure logger.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// WithGlobal exposes a Go function to every chunk under the given
// name.
func WithGlobal(name string, fn lua.LGFunction) Option {
	return func(r *Runner) {
		r.globals[name] = fn
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		timeout: DefaultTimeout,
		log:     zerolog.Nop(),
		globals: make(map[string]lua.LGFunction),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes an inline chunk. name identifies the chunk in logs and
// error messages.
func (r *Runner) Run(ctx context.Context, name, chunk string) error {
	return r.exec(ctx, name, func(L *lua.LState) error {
		return L.DoString(chunk)
	})
}

// RunFile executes a chunk from a file.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	return r.exec(ctx, path, func(L *lua.LState) error {
		return L.DoFile(path)
	})
}

// Handler wraps an inline chunk as an action handler. Failures are
// logged, not surfaced: an action's side effect must never take the
// overlay down.
func (r *Runner) Handler(name, chunk string) func() {
	return func() {
		if err := r.Run(context.Background(), name, chunk); err != nil {
			r.log.Error().Err(err).Str("script", name).Msg("script handler failed")
		}
	}
}

// FileHandler wraps a script file as an action handler.
func (r *Runner) FileHandler(path string) func() {
	return func() {
		if err := r.RunFile(context.Background(), path); err != nil {
			r.log.Error().Err(err).Str("script", path).Msg("script handler failed")
		}
	}
}

func (r *Runner) exec(ctx context.Context, name string, do func(*lua.LState) error) (err error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibraries(L)
	for gname, fn := range r.globals {
		L.SetGlobal(gname, L.NewFunction(fn))
	}
	L.SetContext(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			switch v := rec.(type) {
			case error:
				err = fmt.Errorf("script %q: %w", name, v)
			case string:
				err = fmt.Errorf("script %q: %s", name, v)
			default:
				err = errors.New("script panic")
			}
		}
	}()

	if err := do(L); err != nil {
		return fmt.Errorf("script %q: %w", name, err)
	}
	return nil
}

// openSafeLibraries opens only side-effect-free standard libraries.
// io, os, debug, and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}
