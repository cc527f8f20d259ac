package terminal

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/gridkey/internal/chord"
	"github.com/dshills/gridkey/internal/render"
)

// Backend owns the tcell screen and the polling event loop.
type Backend struct {
	screen tcell.Screen
	set    surfaceSet
	log    zerolog.Logger

	mu       sync.Mutex
	finished bool
}

// NewBackend creates and initializes a terminal backend. Call
// Shutdown when done.
func NewBackend(log zerolog.Logger) (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()
	screen.Show()

	return &Backend{screen: screen, log: log}, nil
}

// Screen exposes the underlying tcell screen.
func (b *Backend) Screen() tcell.Screen {
	return b.screen
}

// NewSurface creates a drawing surface over this backend's screen.
// All surfaces from one backend share a set, so a parent grid
// dismissing repaints a child grid it overlapped.
func (b *Backend) NewSurface() render.Surface {
	return newSurfaceInSet(b.screen, &b.set)
}

// Run polls events until the context is cancelled or the screen is
// shut down, converting key presses into chords for the handler.
// Resize events resync the screen. Blocks; run it from the main
// goroutine.
func (b *Backend) Run(ctx context.Context, handle func(chord.Chord)) error {
	go func() {
		<-ctx.Done()
		b.Shutdown()
	}()

	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			// Screen finalized.
			return ctx.Err()
		}

		switch e := ev.(type) {
		case *tcell.EventKey:
			k, ok := ChordFromEvent(e)
			if !ok {
				b.log.Debug().Str("key", e.Name()).Msg("unmapped key event dropped")
				continue
			}
			handle(k)

		case *tcell.EventResize:
			b.screen.Sync()
		}
	}
}

// Shutdown finalizes the screen. Safe to call more than once.
func (b *Backend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.finished {
		return
	}
	b.finished = true
	b.screen.Fini()
}
