package action

import "fmt"

// Matrix is ordered rows of ordered Actions. Rows may have unequal
// lengths.
type Matrix [][]*Action

// EnsureIDs assigns position-derived stable identifiers ("r1c2",
// 1-based) to every action that does not already carry one. Nested
// submenu matrices receive identifiers prefixed with their parent's.
func (m Matrix) EnsureIDs() {
	m.ensureIDs("")
}

func (m Matrix) ensureIDs(prefix string) {
	for r, row := range m {
		for c, a := range row {
			if a == nil {
				continue
			}
			if a.ID == "" {
				a.ID = fmt.Sprintf("%sr%dc%d", prefix, r+1, c+1)
			}
			if a.Submenu != nil {
				a.Submenu.ensureIDs(a.ID + "/")
			}
		}
	}
}

// Dimensions returns the row count and the widest row's length.
func (m Matrix) Dimensions() (rows, maxCols int) {
	rows = len(m)
	for _, row := range m {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	return rows, maxCols
}

// FlatEntry is one dispatchable action in a flattened matrix view.
type FlatEntry struct {
	// Action is the bound action.
	Action *Action

	// Path is the slash-joined description trail from the root, used
	// as a sublabel when submenus nest.
	Path string
}

// FlattenActive returns every active binding in the matrix, walking
// submenu matrices depth-first. Spacers, empties, and display-only
// cells are skipped.
func (m Matrix) FlattenActive() []FlatEntry {
	return m.flatten("")
}

func (m Matrix) flatten(path string) []FlatEntry {
	var out []FlatEntry
	for _, row := range m {
		for _, a := range row {
			if a == nil || !a.Active() {
				continue
			}
			if a.Submenu != nil {
				child := path
				if child == "" {
					child = a.Description
				} else {
					child = child + "/" + a.Description
				}
				out = append(out, a.Submenu.flatten(child)...)
				continue
			}
			out = append(out, FlatEntry{Action: a, Path: path})
		}
	}
	return out
}
