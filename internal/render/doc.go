// Package render derives grid geometry from an action matrix and
// theme and produces the visual element descriptors for each cell.
//
// Elements are built as one batch and submitted to the underlying
// surface in a single replace operation; batched submission is
// measurably cheaper than N individual insertions. Once the grid is
// visible, UpdateIcon is the sole supported incremental path: it
// substitutes a single cell's icon element without rebuilding or
// touching any other cell.
package render
