package chord

import "strings"

// Modifier represents keyboard modifier keys as a bitmask.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModMeta indicates the Meta key (Cmd on macOS, Win/Super elsewhere).
	ModMeta Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModShift indicates the Shift key.
	ModShift

	// ModFn indicates the Fn key, where the host reports it.
	ModFn
)

// canonicalOrder is the fixed priority order used for normalization
// and display: primary, secondary, tertiary, shift-class, fn-class.
var canonicalOrder = []Modifier{ModMeta, ModCtrl, ModAlt, ModShift, ModFn}

// canonicalNames maps each modifier to its canonical token.
var canonicalNames = map[Modifier]string{
	ModMeta:  "meta",
	ModCtrl:  "ctrl",
	ModAlt:   "alt",
	ModShift: "shift",
	ModFn:    "fn",
}

// displaySymbols maps each modifier to its compact display glyph.
var displaySymbols = map[Modifier]string{
	ModMeta:  "⌘",
	ModCtrl:  "⌃",
	ModAlt:   "⌥",
	ModShift: "⇧",
	ModFn:    "fn",
}

// modifierNameMap maps accepted modifier spellings (lowercase) to
// Modifier values.
var modifierNameMap = map[string]Modifier{
	"meta":    ModMeta,
	"m":       ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"win":     ModMeta,
	"super":   ModMeta,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"c":       ModCtrl,
	"alt":     ModAlt,
	"a":       ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"s":       ModShift,
	"fn":      ModFn,
	"func":    ModFn,
}

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns the canonical token form like "meta+shift".
// Tokens appear in canonical priority order regardless of how the
// modifier set was assembled.
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	for _, mod := range canonicalOrder {
		if m.Has(mod) {
			parts = append(parts, canonicalNames[mod])
		}
	}
	return strings.Join(parts, "+")
}

// Symbols returns the compact glyph form like "⌘⇧" with no separator,
// in canonical priority order.
func (m Modifier) Symbols() string {
	if m == ModNone {
		return ""
	}
	var b strings.Builder
	for _, mod := range canonicalOrder {
		if m.Has(mod) {
			b.WriteString(displaySymbols[mod])
		}
	}
	return b.String()
}

// ModifierFromName returns the Modifier for a given name
// (case-insensitive). Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	name = strings.ToLower(strings.TrimSpace(name))
	if m, ok := modifierNameMap[name]; ok {
		return m
	}
	return ModNone
}

// ParseModifiers combines a list of modifier names into a Modifier.
// Unrecognized names are ignored; duplicates collapse.
func ParseModifiers(names []string) Modifier {
	var result Modifier
	for _, name := range names {
		result = result.With(ModifierFromName(name))
	}
	return result
}
