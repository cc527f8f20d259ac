// Package modal implements the overlay state machine.
//
// A Controller owns one binding table, one render pipeline, and the
// timers that drive delayed show, post-dismissal cleanup, and the fade
// between a dispatch decision and its effect. Controllers compose:
// a binding with a submenu lazily materializes a child controller the
// first time its chord is activated, and the child is memoized by the
// binding's stable identifier so the shared action matrix is never
// written back to.
//
// Lifecycle: Idle -> Entering -> Showing -> Exiting -> Idle. Within
// one controller at most one of the show/hide timers is armed at any
// time; arming one cancels the other, so a stale timer can never fire
// against a state it no longer describes. Asynchronous icon-load
// completions check the controller's active flag and are dropped
// silently once the overlay has closed.
package modal
