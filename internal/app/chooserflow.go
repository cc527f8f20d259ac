package app

import (
	"github.com/dshills/gridkey/internal/action"
	"github.com/dshills/gridkey/internal/chooser"
	"github.com/dshills/gridkey/internal/chord"
	"github.com/dshills/gridkey/internal/terminal"
)

var chooserCancel = chord.New(nil, "escape")

// openChooser is the controller's chooser collaborator: it opens an
// interactive narrowing session over the flattened bindings. The
// selection callback fires when the user confirms an entry.
func (a *App) openChooser(entries []action.FlatEntry, onSelect func(*action.Action)) error {
	session := chooser.NewSession(chooser.FromActions(entries))
	view := terminal.NewChooserView(a.backend.Screen(), session)

	a.mu.Lock()
	a.session = session
	a.view = view
	a.onPick = onSelect
	a.mu.Unlock()

	view.Paint()
	return nil
}

// handleChooserChord drives the narrowing session: typed characters
// extend the query, arrows move the cursor, enter confirms, escape
// abandons.
func (a *App) handleChooserChord(k chord.Chord) {
	a.mu.Lock()
	session := a.session
	view := a.view
	onPick := a.onPick
	a.mu.Unlock()
	if session == nil {
		return
	}

	switch {
	case k.Equal(chooserCancel):
		a.closeChooser()

	case k.Key == "enter" && k.Mods == 0:
		entry, ok := session.Selected()
		a.closeChooser()
		if ok && onPick != nil {
			onPick(entry.Action)
		}

	case k.Key == "up" && k.Mods == 0:
		session.Move(-1)
		view.Paint()

	case k.Key == "down" && k.Mods == 0:
		session.Move(1)
		view.Paint()

	case k.Key == "backspace" && k.Mods == 0:
		session.Backspace()
		view.Paint()

	default:
		if r, ok := typedRune(k); ok {
			session.Type(r)
			view.Paint()
		}
	}
}

func (a *App) closeChooser() {
	a.mu.Lock()
	view := a.view
	a.session = nil
	a.view = nil
	a.onPick = nil
	a.mu.Unlock()

	if view != nil {
		view.Clear()
	}
}

// typedRune maps a chord onto a query character. Only bare or
// shift-modified single-rune keys qualify.
func typedRune(k chord.Chord) (rune, bool) {
	if k.Mods != 0 && k.Mods != chord.ModShift {
		return 0, false
	}
	if k.Key == "space" {
		return ' ', true
	}
	runes := []rune(k.Key)
	if len(runes) != 1 {
		return 0, false
	}
	return runes[0], true
}
