// Package power queries and switches the power state of the display output.
package power

import (
	"context"
	"strconv"
)

// State is the power state of the display as last observed.
type State int

const (
	StateError State = -1
	StateOff   State = 0
	StateOn    State = 1
)

func (s State) String() string {
	switch s {
	case StateError:
		return "error"
	case StateOff:
		return "off"
	case StateOn:
		return "on"
	default:
		return strconv.Itoa(int(s))
	}
}

// Controller drives the display power state.
type Controller interface {
	// State queries the hardware. It never caches.
	State(ctx context.Context) State

	// Set moves the display to target and returns the resulting state.
	// Implementations query first and issue no command when the display
	// is already in the target state.
	Set(ctx context.Context, target State) State
}
