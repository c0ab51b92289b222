// Package idle decides, tick by tick, whether the display should be on.
//
// A Machine owns a countdown Timer measured in ticks. Any activity or a busy
// workload refills the timer and asks for the display on. Otherwise the timer
// drops by one; once it is empty the display is asked off on every tick.
// Repeated requests are cheap because the controller checks the current
// state before issuing a command.
package idle

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/scienceol/displayidle/internal/power"
)

// Phase is the machine's view of the session.
type Phase int

const (
	// PhaseActive: timer full, display wanted on.
	PhaseActive Phase = iota
	// PhaseCounting: timer partly drained, display left alone.
	PhaseCounting
	// PhaseIdle: timer empty, display wanted off.
	PhaseIdle
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseCounting:
		return "counting"
	case PhaseIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Machine combines activity and busy signals into display power requests.
type Machine struct {
	timer   *Timer
	display power.Controller
	phase   Phase
}

// NewMachine starts in PhaseActive with a full timer. No display command is
// issued until the first Tick.
func NewMachine(maxTicks int, display power.Controller) *Machine {
	return &Machine{
		timer:   NewTimer(maxTicks),
		display: display,
		phase:   PhaseActive,
	}
}

func (m *Machine) Phase() Phase { return m.phase }
func (m *Machine) Remaining() int { return m.timer.Remaining() }
func (m *Machine) MaxTicks() int { return m.timer.Max() }

// Tick advances the machine by one sampling period. Activity and busy are
// checked before any decrement, so a tick with activity can never turn the
// display off.
func (m *Machine) Tick(ctx context.Context, activity, busy bool) Phase {
	prev := m.phase

	if activity || busy {
		m.timer.Reset()
		m.display.Set(ctx, power.StateOn)
		m.phase = PhaseActive
	} else if m.timer.Decrement() == 0 {
		m.display.Set(ctx, power.StateOff)
		m.phase = PhaseIdle
	} else {
		m.phase = PhaseCounting
	}

	if m.phase != prev {
		zerolog.Ctx(ctx).Debug().
			Stringer("from", prev).
			Stringer("to", m.phase).
			Bool("activity", activity).
			Bool("busy", busy).
			Int("remaining", m.timer.Remaining()).
			Msg("idle phase changed")
	}
	return m.phase
}
