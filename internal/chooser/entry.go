package chooser

import (
	"github.com/dshills/gridkey/internal/action"
	"github.com/dshills/gridkey/internal/chord"
)

// Entry is one selectable item in the chooser list.
type Entry struct {
	// Label is the primary display text, searched first.
	Label string

	// Sublabel is secondary display text: the bound chord plus the
	// submenu trail when the entry is nested.
	Sublabel string

	// ID is the owning action's stable identifier.
	ID string

	// Action is the underlying binding.
	Action *action.Action
}

// FromActions converts a flattened matrix view into chooser entries.
func FromActions(flat []action.FlatEntry) []Entry {
	entries := make([]Entry, 0, len(flat))
	for _, fe := range flat {
		a := fe.Action
		label := a.Description
		if label == "" {
			label = a.Key
		}
		sub := chord.New(a.Mods, a.Key).DisplayString()
		if fe.Path != "" {
			sub = fe.Path + " " + sub
		}
		entries = append(entries, Entry{
			Label:    label,
			Sublabel: sub,
			ID:       a.ID,
			Action:   a,
		})
	}
	return entries
}
