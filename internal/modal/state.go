package modal

import "time"

// State is the controller's lifecycle phase.
type State uint8

const (
	// StateIdle means the overlay is not visible and nothing is
	// pending.
	StateIdle State = iota

	// StateEntering means start was requested and the show-delay
	// timer is running; the grid has not been presented.
	StateEntering

	// StateShowing means the grid is visible and capturing input.
	StateShowing

	// StateExiting means dismissal was requested and the hide-delay
	// timer is running before resources are released.
	StateExiting
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEntering:
		return "entering"
	case StateShowing:
		return "showing"
	case StateExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// Config is the timing surface the controller consumes. Read at
// construction, replaceable afterward with SetConfig.
type Config struct {
	// ShowDelay postpones presentation after Start. Zero presents
	// immediately; a fast double-tap inside the window toggles the
	// trigger without a visible flash.
	ShowDelay time.Duration

	// AnimationDelay is the gap between dismissal and releasing the
	// render resources.
	AnimationDelay time.Duration

	// Fade is the pause between a dispatch decision and invoking its
	// effect, so the close is perceived before the side effect fires.
	Fade time.Duration

	// InvalidKeyAlert surfaces a notice for unbound chords. Off by
	// default: the design trusts direct binding over validation.
	InvalidKeyAlert bool
}

// DefaultConfig returns the stock timing configuration.
func DefaultConfig() Config {
	return Config{
		ShowDelay:      0,
		AnimationDelay: 150 * time.Millisecond,
		Fade:           100 * time.Millisecond,
	}
}
