// Package theme holds the named constant table for grid geometry,
// colors, and timing. The core treats a Theme as an opaque input; it
// never validates internal construction.
package theme

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme is the geometry/color/timing constant table consumed by the
// render pipeline and modal controller.
type Theme struct {
	// CellWidth and CellHeight are the cell extents in terminal cells.
	CellWidth  int
	CellHeight int

	// Spacing is the gap between cells; Padding is the frame inset.
	Spacing int
	Padding int

	// FadeIn and FadeOut are the present/dismiss durations.
	FadeIn  time.Duration
	FadeOut time.Duration

	// Frame is the background frame fill.
	Frame colorful.Color

	// CellBackground fills each cell behind its icon.
	CellBackground colorful.Color

	// Border strokes each cell.
	Border colorful.Color

	// Text colors the description label; Hotkey colors the chord label.
	Text   colorful.Color
	Hotkey colorful.Color

	// DimFactor scales color intensity for empty and resource-missing
	// cells. 1.0 means no dimming.
	DimFactor float64
}

// Default returns the stock theme.
func Default() Theme {
	return Theme{
		CellWidth:      18,
		CellHeight:     7,
		Spacing:        1,
		Padding:        2,
		FadeIn:         120 * time.Millisecond,
		FadeOut:        150 * time.Millisecond,
		Frame:          colorful.Color{R: 0.08, G: 0.08, B: 0.10},
		CellBackground: colorful.Color{R: 0.13, G: 0.13, B: 0.16},
		Border:         colorful.Color{R: 0.30, G: 0.30, B: 0.36},
		Text:           colorful.Color{R: 0.85, G: 0.85, B: 0.88},
		Hotkey:         colorful.Color{R: 0.95, G: 0.78, B: 0.25},
		DimFactor:      0.45,
	}
}

// Dim scales a color by the theme's dim factor.
func (t Theme) Dim(c colorful.Color) colorful.Color {
	return colorful.Color{
		R: c.R * t.DimFactor,
		G: c.G * t.DimFactor,
		B: c.B * t.DimFactor,
	}
}

// Override holds optional theme replacements, typically sourced from
// configuration. Zero values leave the default untouched.
type Override struct {
	CellWidth  int
	CellHeight int
	Spacing    int
	Padding    int
	FadeIn     time.Duration
	FadeOut    time.Duration
	DimFactor  float64
}

// Apply merges an override onto a theme and returns the result.
func (t Theme) Apply(o Override) Theme {
	if o.CellWidth > 0 {
		t.CellWidth = o.CellWidth
	}
	if o.CellHeight > 0 {
		t.CellHeight = o.CellHeight
	}
	if o.Spacing > 0 {
		t.Spacing = o.Spacing
	}
	if o.Padding > 0 {
		t.Padding = o.Padding
	}
	if o.FadeIn > 0 {
		t.FadeIn = o.FadeIn
	}
	if o.FadeOut > 0 {
		t.FadeOut = o.FadeOut
	}
	if o.DimFactor > 0 {
		t.DimFactor = o.DimFactor
	}
	return t
}
