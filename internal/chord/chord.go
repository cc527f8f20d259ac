package chord

import (
	"fmt"
	"strings"
)

// Chord is the normalized identity of a modifier set plus key token.
type Chord struct {
	// Mods contains the active modifier keys.
	Mods Modifier

	// Key is the lowercased key token ("e", "escape", "f5", "space").
	Key string
}

// New creates a chord from modifier names and a key token.
func New(mods []string, key string) Chord {
	return Chord{
		Mods: ParseModifiers(mods),
		Key:  strings.ToLower(strings.TrimSpace(key)),
	}
}

// IsZero returns true if the chord has no key token.
func (c Chord) IsZero() bool {
	return c.Key == ""
}

// String returns the canonical string form.
// The "+" delimiter never occurs inside a valid key name, so the form
// is unambiguous and usable directly as a hash key.
func (c Chord) String() string {
	mods := c.Mods.String()
	if mods == "" {
		return c.Key
	}
	return mods + "+" + c.Key
}

// Equal returns true if the two chords have the same canonical form.
func (c Chord) Equal(other Chord) bool {
	return c.Mods == other.Mods && c.Key == other.Key
}

// DisplayString returns the compact user-facing form: modifier glyphs
// in canonical order with no separator, followed by the uppercased
// key token. "meta+shift+e" renders as "⌘⇧E".
func (c Chord) DisplayString() string {
	return c.Mods.Symbols() + strings.ToUpper(c.Key)
}

// Normalize produces the canonical string for a modifier-name set and
// key token without constructing a Chord. For all permutations of the
// same modifier set the result is identical.
func Normalize(mods []string, key string) string {
	return New(mods, key).String()
}

// Parse parses a chord spec like "ctrl+shift+e" or "meta+space".
// The final "+"-separated token is the key; everything before it must
// be a recognized modifier name.
func Parse(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, fmt.Errorf("empty chord spec")
	}

	parts := strings.Split(spec, "+")
	key := parts[len(parts)-1]
	if strings.TrimSpace(key) == "" {
		return Chord{}, fmt.Errorf("chord spec %q: missing key token", spec)
	}

	var mods Modifier
	for _, part := range parts[:len(parts)-1] {
		mod := ModifierFromName(part)
		if mod == ModNone {
			return Chord{}, fmt.Errorf("chord spec %q: unknown modifier %q", spec, part)
		}
		mods = mods.With(mod)
	}

	return Chord{Mods: mods, Key: strings.ToLower(strings.TrimSpace(key))}, nil
}
