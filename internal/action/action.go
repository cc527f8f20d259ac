package action

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/gridkey/internal/icon"
)

// Kind identifies the variant of an Action.
type Kind uint8

const (
	// KindSpacer is a non-interactive filler cell with no key.
	KindSpacer Kind = iota

	// KindEmpty renders as a dimmed tile; display only.
	KindEmpty

	// KindApp launches an application.
	KindApp

	// KindFile opens a file or directory.
	KindFile

	// KindSubmenu enters a nested grid.
	KindSubmenu

	// KindCustom runs a caller-supplied handler.
	KindCustom
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindSpacer:
		return "spacer"
	case KindEmpty:
		return "empty"
	case KindApp:
		return "app"
	case KindFile:
		return "file"
	case KindSubmenu:
		return "submenu"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Action is one unit of the grid.
type Action struct {
	// ID is the stable identifier used as the icon-cache and
	// render-diff key. Derived from matrix position when not supplied.
	ID string

	// Kind is the variant decided at construction.
	Kind Kind

	// Key is the trigger key token. Empty for spacers.
	Key string

	// Mods are the modifier names for the trigger chord.
	Mods []string

	// Description is the display label.
	Description string

	// IconSource describes where the cell's icon loads from.
	// Zero for cells that use a generated placeholder.
	IconSource icon.Source

	// Empty dims the cell; display only, no behavioral effect.
	Empty bool

	// Missing marks the cell's resource as not found; display only.
	Missing bool

	// Submenu is the nested matrix awaiting lazy resolution.
	// Non-nil only for KindSubmenu.
	Submenu *Matrix

	handler func()
}

// HasHandler returns true if the action carries a non-default handler.
func (a *Action) HasHandler() bool {
	return a.handler != nil
}

// Handler returns the action's effect. The zero handler is a no-op.
func (a *Action) Handler() func() {
	if a.handler == nil {
		return func() {}
	}
	return a.handler
}

// Active reports whether the action participates in dispatch and
// full-opacity rendering: it must have a key and either a non-default
// handler or a submenu. A keyed cell with only display data renders
// but never dispatches.
func (a *Action) Active() bool {
	return a.Key != "" && (a.handler != nil || a.Submenu != nil)
}

// Spec carries the convenience parameters the factory builds an
// Action from.
type Spec struct {
	Key         string
	Mods        []string
	Description string
	Handler     func()
	App         string
	File        string
	Submenu     *Matrix
	IconPath    string
	Empty       bool
	Missing     bool
	ID          string
}

// New builds an Action from a Spec, applying the variant precedence
// empty > no-key > app > file > submenu > custom.
func New(spec Spec) (*Action, error) {
	a := &Action{
		ID:          spec.ID,
		Key:         strings.ToLower(strings.TrimSpace(spec.Key)),
		Mods:        spec.Mods,
		Description: spec.Description,
		Empty:       spec.Empty,
		Missing:     spec.Missing,
	}

	switch {
	case spec.Empty:
		a.Kind = KindEmpty

	case a.Key == "":
		a.Kind = KindSpacer

	case spec.App != "":
		a.Kind = KindApp
		app := spec.App
		a.handler = func() { LaunchApp(app) }
		a.IconSource = icon.Source{App: app, Label: a.label(app)}
		if a.Description == "" {
			a.Description = app
		}

	case spec.File != "":
		a.Kind = KindFile
		path := spec.File
		a.handler = func() { OpenFile(path) }
		base := filepath.Base(path)
		a.IconSource = icon.Source{Path: path, Label: a.label(base)}
		if a.Description == "" {
			a.Description = base
		}

	case spec.Submenu != nil:
		if len(*spec.Submenu) == 0 {
			return nil, fmt.Errorf("action %q: submenu matrix is empty", a.Key)
		}
		a.Kind = KindSubmenu
		a.Submenu = spec.Submenu

	default:
		a.Kind = KindCustom
		a.handler = spec.Handler
	}

	if spec.IconPath != "" && a.IconSource.IsZero() {
		a.IconSource = icon.Source{Path: spec.IconPath, Label: a.label("")}
	}

	return a, nil
}

// label picks the placeholder label for this action: the description
// wins, then the fallback, then the key.
func (a *Action) label(fallback string) string {
	if a.Description != "" {
		return a.Description
	}
	if fallback != "" {
		return fallback
	}
	return a.Key
}
