package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestChordFromEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"plain rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), "q"},
		{"uppercase rune implies shift", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), "shift+q"},
		{"space rune", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "space"},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "alt+x"},
		{"meta shift rune", tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModMeta|tcell.ModShift), "meta+shift+e"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "escape"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter"},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "tab"},
		{"backtab is shift tab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), "shift+tab"},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "backspace"},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "up"},
		{"function key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), "f5"},
		{"ctrl letter code", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), "ctrl+q"},
		{"ctrl space", tcell.NewEventKey(tcell.KeyCtrlSpace, 0, tcell.ModCtrl), "ctrl+space"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, ok := ChordFromEvent(tt.ev)
			if !ok {
				t.Fatal("event did not map to a chord")
			}
			if got := k.String(); got != tt.want {
				t.Errorf("chord = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChordFromEventUnmapped(t *testing.T) {
	if _, ok := ChordFromEvent(tcell.NewEventKey(tcell.KeyPrint, 0, tcell.ModNone)); ok {
		t.Error("unmapped key produced a chord")
	}
}
