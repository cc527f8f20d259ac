package binding

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/gridkey/internal/action"
	"github.com/dshills/gridkey/internal/chord"
)

// Table holds the chord-to-action dispatch map for one grid.
type Table struct {
	mu      sync.RWMutex
	entries map[string]*action.Action
}

// NewTable creates an empty dispatch table.
func NewTable() *Table {
	return &Table{
		entries: make(map[string]*action.Action),
	}
}

// FromMatrix builds a table from every active action in a matrix.
// Inactive cells (spacers, empties, display-only) are never bound.
func FromMatrix(m action.Matrix) *Table {
	t := NewTable()
	for _, row := range m {
		for _, a := range row {
			if a != nil && a.Active() {
				t.Add(a.Mods, a.Key, a)
			}
		}
	}
	return t
}

// Add binds a chord to an action. An empty key is a no-op: spacer
// actions are never bound. A duplicate chord replaces the previous
// binding.
func (t *Table) Add(mods []string, key string, a *action.Action) {
	if strings.TrimSpace(key) == "" || a == nil {
		return
	}

	canonical := chord.Normalize(mods, key)
	t.mu.Lock()
	t.entries[canonical] = a
	t.mu.Unlock()
}

// Lookup returns the action bound to a chord, if any.
func (t *Table) Lookup(mods []string, key string) (*action.Action, bool) {
	return t.LookupChord(chord.New(mods, key))
}

// LookupChord returns the action bound to an already-normalized chord.
func (t *Table) LookupChord(c chord.Chord) (*action.Action, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	a, ok := t.entries[c.String()]
	return a, ok
}

// Has returns true if the chord is bound.
func (t *Table) Has(mods []string, key string) bool {
	_, ok := t.Lookup(mods, key)
	return ok
}

// Count returns the number of bound chords.
func (t *Table) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Actions returns all bound actions in canonical chord order.
func (t *Table) Actions() []*action.Action {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*action.Action, 0, len(keys))
	for _, k := range keys {
		out = append(out, t.entries[k])
	}
	return out
}

// DescribeValidChords returns a sorted, human-readable list of all
// bound chords. Diagnostics only; dispatch never consults it.
func (t *Table) DescribeValidChords() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return strings.Join(keys, ", ")
}
