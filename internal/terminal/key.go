package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/gridkey/internal/chord"
)

// namedKeys maps tcell special keys to chord key tokens.
var namedKeys = map[tcell.Key]string{
	tcell.KeyEscape:    "escape",
	tcell.KeyEnter:     "enter",
	tcell.KeyTab:       "tab",
	tcell.KeyBacktab:   "tab",
	tcell.KeyBackspace: "backspace",
	tcell.KeyDelete:    "delete",
	tcell.KeyInsert:    "insert",
	tcell.KeyHome:      "home",
	tcell.KeyEnd:       "end",
	tcell.KeyPgUp:      "pageup",
	tcell.KeyPgDn:      "pagedown",
	tcell.KeyUp:        "up",
	tcell.KeyDown:      "down",
	tcell.KeyLeft:      "left",
	tcell.KeyRight:     "right",
	tcell.KeyF1:        "f1",
	tcell.KeyF2:        "f2",
	tcell.KeyF3:        "f3",
	tcell.KeyF4:        "f4",
	tcell.KeyF5:        "f5",
	tcell.KeyF6:        "f6",
	tcell.KeyF7:        "f7",
	tcell.KeyF8:        "f8",
	tcell.KeyF9:        "f9",
	tcell.KeyF10:       "f10",
	tcell.KeyF11:       "f11",
	tcell.KeyF12:       "f12",
}

// ChordFromEvent converts a tcell key event into a chord. Returns
// false for events that do not map onto one.
func ChordFromEvent(ev *tcell.EventKey) (chord.Chord, bool) {
	mods := modNames(ev.Modifiers())

	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return chord.New(mods, "space"), true
		}
		if unicode.IsUpper(r) {
			mods = append(mods, "shift")
		}
		return chord.New(mods, string(unicode.ToLower(r))), true

	case k == tcell.KeyBackspace2:
		return chord.New(mods, "backspace"), true

	case k == tcell.KeyCtrlSpace:
		return chord.New(append(mods, "ctrl"), "space"), true

	default:
		if name, ok := namedKeys[k]; ok {
			if k == tcell.KeyBacktab {
				mods = append(mods, "shift")
			}
			return chord.New(mods, name), true
		}
		// Control-letter keys arrive as dedicated key codes with the
		// modifier already folded in.
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			letter := string(rune('a' + int(k) - int(tcell.KeyCtrlA)))
			return chord.New(append(mods, "ctrl"), letter), true
		}
	}

	return chord.Chord{}, false
}

func modNames(m tcell.ModMask) []string {
	var mods []string
	if m&tcell.ModMeta != 0 {
		mods = append(mods, "meta")
	}
	if m&tcell.ModCtrl != 0 {
		mods = append(mods, "ctrl")
	}
	if m&tcell.ModAlt != 0 {
		mods = append(mods, "alt")
	}
	if m&tcell.ModShift != 0 {
		mods = append(mods, "shift")
	}
	return mods
}
