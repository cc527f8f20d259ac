// Package icon provides the bounded icon cache shared by every grid
// controller and render pipeline.
//
// The cache maps a cell's stable identifier to a visual asset, with
// LRU eviction in batches so eviction cost is amortized across many
// insertions. Load failures are never cached, so a future attempt
// retries; callers fall back to a generated placeholder instead.
//
// The cache is an explicit instance owned by the composition root and
// passed by shared reference. It is safe for concurrent use.
package icon
