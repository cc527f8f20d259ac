// Package terminal is the tcell backing for the overlay: a Surface
// implementation that paints render elements onto a tcell.Screen, key
// event conversion into chords, and the polling event loop that feeds
// the active controller.
package terminal
