package icon

import (
	"hash/fnv"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
)

// Asset is a fixed-size visual tile: a background color plus a glyph.
type Asset struct {
	// Glyph is the character drawn on the tile.
	Glyph rune

	// Color is the tile background.
	Color colorful.Color

	// Placeholder is true for generated fallback tiles.
	Placeholder bool
}

// Source describes where an asset can be loaded from.
// Exactly one of Path or App is normally set; Label is always set and
// feeds placeholder generation on failure.
type Source struct {
	// Path is a filesystem path to derive the asset from.
	Path string

	// App is an application identifier to derive the asset from.
	App string

	// Label is the cell's display label.
	Label string
}

// IsZero returns true if the source names nothing loadable.
func (s Source) IsZero() bool {
	return s.Path == "" && s.App == ""
}

// Placeholder saturation/lightness are fixed; only the hue varies with
// the label so tiles stay readable on any background.
const (
	placeholderSaturation = 0.55
	placeholderLightness  = 0.35
)

// Placeholder generates a deterministic fallback asset for a label.
// The color derives from a non-cryptographic hash of the label, stable
// across runs and processes; collisions are acceptable. The glyph is
// the uppercased first character of the label, or the override if one
// is supplied.
func Placeholder(label string, override rune) *Asset {
	glyph := override
	if glyph == 0 {
		for _, r := range label {
			glyph = unicode.ToUpper(r)
			break
		}
	}
	if glyph == 0 {
		glyph = '?'
	}

	h := fnv.New32a()
	h.Write([]byte(label))
	hue := float64(h.Sum32() % 360)

	return &Asset{
		Glyph:       glyph,
		Color:       colorful.Hsl(hue, placeholderSaturation, placeholderLightness),
		Placeholder: true,
	}
}
