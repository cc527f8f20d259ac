// Package binding maps normalized key chords to grid actions.
//
// Lookup is a single hash-map access on the chord's canonical string,
// so dispatch cost is constant regardless of grid size. An absent
// result signals "unbound", which is a normal outcome, not a failure.
// Two actions normalizing to the same chord resolve last-write-wins;
// that is a caller error, not a runtime fault.
package binding
