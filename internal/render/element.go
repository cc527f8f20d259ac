package render

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// ElementKind identifies what a visual element draws.
type ElementKind uint8

const (
	// KindFrame is the single background frame behind the grid.
	KindFrame ElementKind = iota

	// KindCellBackground fills one cell.
	KindCellBackground

	// KindCellBorder strokes one cell.
	KindCellBorder

	// KindIcon is a resolved icon tile.
	KindIcon

	// KindPlaceholder is a generated tile standing in for an icon.
	KindPlaceholder

	// KindHotkeyLabel is the chord text, bottom-left.
	KindHotkeyLabel

	// KindDescLabel is the description text, bottom-right.
	KindDescLabel
)

// String returns the string representation of the element kind.
func (k ElementKind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindCellBackground:
		return "cell-background"
	case KindCellBorder:
		return "cell-border"
	case KindIcon:
		return "icon"
	case KindPlaceholder:
		return "placeholder"
	case KindHotkeyLabel:
		return "hotkey-label"
	case KindDescLabel:
		return "desc-label"
	default:
		return "unknown"
	}
}

// Element is one drawable descriptor submitted to the surface.
type Element struct {
	// ID uniquely identifies the element for remove-by-identifier.
	ID string

	// CellID is the owning cell's stable identifier; empty for the
	// frame.
	CellID string

	// Kind selects the drawing primitive.
	Kind ElementKind

	// Geometry in surface cells.
	X, Y, W, H int

	// Text is the label content for label kinds.
	Text string

	// Glyph is the tile character for icon and placeholder kinds.
	Glyph rune

	// Fill is the background color for rectangle kinds.
	Fill colorful.Color

	// Color is the stroke or text color.
	Color colorful.Color

	// Dim reduces visual intensity for empty or resource-missing
	// cells. Display only.
	Dim bool
}

// Surface is the drawing collaborator the pipeline renders through.
// Implementations accept element descriptors with a replace-all and
// an insert/remove-by-identifier operation, plus show/hide with a
// fade duration.
type Surface interface {
	// SetSize sets the canvas extents before the first ReplaceAll.
	SetSize(width, height int)

	// ReplaceAll atomically replaces every element on the surface.
	ReplaceAll(elements []Element)

	// Insert adds a single element.
	Insert(el Element)

	// RemoveByID removes the element with the given ID, if present.
	RemoveByID(id string)

	// ShowFade makes the surface visible, fading in over d.
	ShowFade(d time.Duration)

	// HideFade hides the surface, fading out over d.
	HideFade(d time.Duration)

	// Release frees the underlying resources after dismissal.
	Release()
}
