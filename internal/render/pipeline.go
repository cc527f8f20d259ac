package render

import (
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/gridkey/internal/action"
	"github.com/dshills/gridkey/internal/chord"
	"github.com/dshills/gridkey/internal/icon"
	"github.com/dshills/gridkey/internal/theme"
)

// Dimensions returns the matrix's row count and widest row length.
func Dimensions(m action.Matrix) (rows, maxCols int) {
	return m.Dimensions()
}

// CanvasSize computes the full canvas extents for a matrix under a
// theme: cell size, spacing, and grid extents plus frame padding.
func CanvasSize(m action.Matrix, th theme.Theme) (width, height int) {
	rows, cols := m.Dimensions()
	if rows == 0 || cols == 0 {
		return 0, 0
	}
	width = 2*th.Padding + cols*th.CellWidth + (cols-1)*th.Spacing
	height = 2*th.Padding + rows*th.CellHeight + (rows-1)*th.Spacing
	return width, height
}

// Pipeline owns the element list for one grid and the surface it is
// drawn on.
type Pipeline struct {
	mu        sync.Mutex
	matrix    action.Matrix
	th        theme.Theme
	surface   Surface
	elements  []Element
	cellIndex map[string][]int
	presented bool
}

// New builds a pipeline for a matrix. Elements are computed once at
// construction; Present submits them as a single batch.
func New(m action.Matrix, th theme.Theme, surface Surface) *Pipeline {
	p := &Pipeline{
		matrix:  m,
		th:      th,
		surface: surface,
	}
	p.elements, p.cellIndex = BuildElements(m, th)
	return p
}

// BuildElements produces the ordered element list for a matrix plus a
// side map from stable cell ID to element indices for later
// incremental update.
//
// A cell with neither key nor description is pure filler and
// contributes zero elements. Empty and resource-missing cells render
// dimmed. Icon content is a generated placeholder tile (resolved
// assets arrive later through UpdateIcon); flagged-empty cells get a
// plain dimmed tile with no glyph.
func BuildElements(m action.Matrix, th theme.Theme) ([]Element, map[string][]int) {
	width, height := CanvasSize(m, th)

	elements := make([]Element, 0, 1)
	index := make(map[string][]int)

	elements = append(elements, Element{
		ID:   "frame",
		Kind: KindFrame,
		W:    width,
		H:    height,
		Fill: th.Frame,
	})

	for r, row := range m {
		for c, a := range row {
			if a == nil {
				continue
			}
			if a.Key == "" && a.Description == "" {
				continue
			}

			x := th.Padding + c*(th.CellWidth+th.Spacing)
			y := th.Padding + r*(th.CellHeight+th.Spacing)
			dim := a.Empty || a.Missing

			cell := buildCell(a, th, x, y, dim)
			for _, el := range cell {
				index[a.ID] = append(index[a.ID], len(elements))
				elements = append(elements, el)
			}
		}
	}

	return elements, index
}

// buildCell produces the five elements of one rendered cell:
// background, border, icon-or-placeholder, hotkey label, description
// label. Labels are omitted when their source data is absent.
func buildCell(a *action.Action, th theme.Theme, x, y int, dim bool) []Element {
	out := make([]Element, 0, 5)

	bg := th.CellBackground
	border := th.Border
	if dim {
		bg = th.Dim(bg)
		border = th.Dim(border)
	}

	out = append(out, Element{
		ID:     a.ID + ":bg",
		CellID: a.ID,
		Kind:   KindCellBackground,
		X:      x, Y: y, W: th.CellWidth, H: th.CellHeight,
		Fill: bg,
		Dim:  dim,
	})
	out = append(out, Element{
		ID:     a.ID + ":border",
		CellID: a.ID,
		Kind:   KindCellBorder,
		X:      x, Y: y, W: th.CellWidth, H: th.CellHeight,
		Color: border,
		Dim:   dim,
	})

	out = append(out, placeholderElement(a, th, x, y, dim))

	if a.Key != "" {
		hk := chord.New(a.Mods, a.Key).DisplayString()
		hkColor := th.Hotkey
		if dim {
			hkColor = th.Dim(hkColor)
		}
		out = append(out, Element{
			ID:     a.ID + ":hotkey",
			CellID: a.ID,
			Kind:   KindHotkeyLabel,
			X:      x + 1,
			Y:      y + th.CellHeight - 2,
			W:      runewidth.StringWidth(hk),
			H:      1,
			Text:   hk,
			Color:  hkColor,
			Dim:    dim,
		})
	}

	if a.Description != "" {
		desc := truncate(a.Description, th.CellWidth-2)
		descColor := th.Text
		if dim {
			descColor = th.Dim(descColor)
		}
		out = append(out, Element{
			ID:     a.ID + ":desc",
			CellID: a.ID,
			Kind:   KindDescLabel,
			X:      x + th.CellWidth - 1 - runewidth.StringWidth(desc),
			Y:      y + th.CellHeight - 1,
			W:      runewidth.StringWidth(desc),
			H:      1,
			Text:   desc,
			Color:  descColor,
			Dim:    dim,
		})
	}

	return out
}

// placeholderElement builds the icon stand-in for a cell: a colored
// tile with a glyph, or a plain dimmed tile for flagged-empty cells.
func placeholderElement(a *action.Action, th theme.Theme, x, y int, dim bool) Element {
	size := th.CellHeight - 3
	if size < 1 {
		size = 1
	}
	el := Element{
		ID:     a.ID + ":icon",
		CellID: a.ID,
		Kind:   KindPlaceholder,
		X:      x + (th.CellWidth-size)/2,
		Y:      y + 1,
		W:      size,
		H:      size,
		Dim:    dim,
	}

	if a.Empty {
		// Plain dimmed tile, no glyph.
		el.Fill = th.Dim(th.CellBackground)
		return el
	}

	ph := icon.Placeholder(placeholderLabel(a), 0)
	el.Glyph = ph.Glyph
	el.Fill = ph.Color
	el.Color = th.Text
	if dim {
		el.Fill = th.Dim(el.Fill)
		el.Color = th.Dim(el.Color)
	}
	return el
}

func placeholderLabel(a *action.Action) string {
	if a.Description != "" {
		return a.Description
	}
	return a.Key
}

// truncate shortens a label to fit a display width, appending an
// ellipsis when it was cut.
func truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// Elements returns a snapshot of the current element list.
func (p *Pipeline) Elements() []Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Element, len(p.elements))
	copy(out, p.elements)
	return out
}

// CellElements returns the indices of the elements owned by a cell.
func (p *Pipeline) CellElements(stableID string) []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]int, len(p.cellIndex[stableID]))
	copy(out, p.cellIndex[stableID])
	return out
}

// Present materializes the grid: sizes the surface, submits the
// element batch in one replace operation, and fades in over the
// themed duration.
func (p *Pipeline) Present() {
	p.mu.Lock()
	width, height := CanvasSize(p.matrix, p.th)
	elements := make([]Element, len(p.elements))
	copy(elements, p.elements)
	p.presented = true
	surface := p.surface
	fade := p.th.FadeIn
	p.mu.Unlock()

	surface.SetSize(width, height)
	surface.ReplaceAll(elements)
	surface.ShowFade(fade)
}

// Dismiss fades the surface out. Release frees it afterward; the two
// are separate so the controller can delay release past the hide
// animation.
func (p *Pipeline) Dismiss() {
	p.mu.Lock()
	p.presented = false
	surface := p.surface
	fade := p.th.FadeOut
	p.mu.Unlock()

	surface.HideFade(fade)
}

// Release frees the underlying surface resources.
func (p *Pipeline) Release() {
	p.mu.Lock()
	surface := p.surface
	p.mu.Unlock()
	surface.Release()
}

// UpdateIcon substitutes a cell's placeholder element with the
// resolved asset, leaving every other cell's elements untouched.
// Calling it for a cell with no placeholder present is a no-op.
func (p *Pipeline) UpdateIcon(stableID string, asset *icon.Asset) {
	if asset == nil {
		return
	}

	p.mu.Lock()

	var replaced *Element
	for _, i := range p.cellIndex[stableID] {
		el := &p.elements[i]
		if el.Kind != KindPlaceholder {
			continue
		}
		el.Kind = KindIcon
		el.Glyph = asset.Glyph
		el.Fill = asset.Color
		el.Color = p.th.Text
		if el.Dim {
			el.Fill = p.th.Dim(el.Fill)
			el.Color = p.th.Dim(el.Color)
		}
		replaced = el
		break
	}

	presented := p.presented
	surface := p.surface
	var updated Element
	if replaced != nil {
		updated = *replaced
	}
	p.mu.Unlock()

	if replaced == nil || !presented {
		return
	}

	surface.RemoveByID(updated.ID)
	surface.Insert(updated)
}

// HighlightCell is a reserved hook for selection feedback. It is
// intentionally a no-op; the seam stays so the dispatch path can keep
// passing the selected cell through.
func (p *Pipeline) HighlightCell(stableID string) {
}
