// Package chooser provides the searchable-selection fallback over the
// grid's bindings.
//
// The chooser flattens the action matrix into a list of entries and
// narrows it as the user types. Matching ranks exact prefixes above
// substrings above scattered subsequences, so the best candidate is
// always first.
//
// A Session holds the interactive state (query, cursor) and is driven
// by the terminal event loop; the Filter is the stateless ranking
// engine underneath it.
package chooser
