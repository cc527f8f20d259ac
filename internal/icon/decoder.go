package icon

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
)

// Resolved-asset colors are brighter than placeholders so a loaded
// tile reads differently from a generated one.
const (
	resolvedSaturation = 0.65
	resolvedLightness  = 0.45
)

// SystemDecoder derives assets from the local system. App sources
// must resolve through PATH and file sources must exist; anything
// else fails the load so the placeholder stays.
type SystemDecoder struct{}

// Decode implements Decoder.
func (SystemDecoder) Decode(ctx context.Context, src Source) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case src.App != "":
		if _, err := exec.LookPath(src.App); err != nil {
			return nil, fmt.Errorf("resolve app %q: %w", src.App, err)
		}
		return resolved(src.App, firstUpper(src.App)), nil

	case src.Path != "":
		info, err := os.Stat(src.Path)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", src.Path, err)
		}
		glyph := fileGlyph(src.Path, info.IsDir())
		return resolved(colorKey(src.Path, info.IsDir()), glyph), nil
	}

	return nil, fmt.Errorf("source names nothing loadable")
}

// resolved builds a non-placeholder asset with a deterministic color
// derived from key.
func resolved(key string, glyph rune) *Asset {
	h := fnv.New32a()
	h.Write([]byte(key))
	hue := float64(h.Sum32() % 360)
	return &Asset{
		Glyph: glyph,
		Color: colorful.Hsl(hue, resolvedSaturation, resolvedLightness),
	}
}

// fileGlyph picks a tile character for a path: slash for directories,
// the extension's first letter otherwise, falling back to the
// basename's first letter.
func fileGlyph(path string, isDir bool) rune {
	if isDir {
		return '/'
	}
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		return firstUpper(ext)
	}
	return firstUpper(filepath.Base(path))
}

// colorKey groups files of the same type onto the same color: all
// directories share one hue, files hash by extension.
func colorKey(path string, isDir bool) string {
	if isDir {
		return "dir"
	}
	if ext := filepath.Ext(path); ext != "" {
		return ext
	}
	return filepath.Base(path)
}

func firstUpper(s string) rune {
	for _, r := range s {
		return unicode.ToUpper(r)
	}
	return '?'
}
