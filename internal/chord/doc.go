// Package chord provides canonical key-chord identity for the grid.
//
// A chord is a set of modifiers plus a key token. Two chords are equal
// iff their canonical string forms match: modifiers are sorted by a
// fixed priority order (Meta, Ctrl, Alt, Shift, Fn), the key token is
// lowercased, and the parts are joined with "+". Input modifier order
// never matters.
//
//	chord.Normalize([]string{"shift", "cmd"}, "E") == "meta+shift+e"
//	chord.Normalize([]string{"cmd", "shift"}, "e") == "meta+shift+e"
//
// The canonical form is what the binding table hashes on; the compact
// display form (DisplayString) is only ever shown to the user.
package chord
