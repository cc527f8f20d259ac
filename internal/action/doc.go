// Package action defines the units of the grid and the factory that
// builds them.
//
// An Action is a tagged variant: Spacer, Empty, App, File, Submenu, or
// Custom. The factory applies a fixed precedence when several
// convenience fields are present (empty > no-key > app > file >
// submenu > custom), so the variant is decided once at construction
// instead of by field-sniffing at dispatch time.
//
// A Matrix is ordered rows of ordered Actions; rows may have unequal
// lengths. Row/column positions (1-based) supply the default stable
// identifier used as the icon-cache and render-diff key.
package action
