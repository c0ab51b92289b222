// Package monitor runs the sampling loop that feeds the idle machine.
package monitor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/scienceol/displayidle/internal/busy"
	"github.com/scienceol/displayidle/internal/idle"
	"github.com/scienceol/displayidle/internal/input"
)

// Loop samples input activity and the busy predicate once per period.
// Ticks never overlap; everything runs on the caller's goroutine.
type Loop struct {
	sources []input.Source
	busy    busy.Predicate
	machine *idle.Machine
	period  time.Duration
}

// New creates a Loop.
func New(sources []input.Source, pred busy.Predicate, machine *idle.Machine, period time.Duration) *Loop {
	return &Loop{
		sources: sources,
		busy:    pred,
		machine: machine,
		period:  period,
	}
}

// Step runs a single tick. Every source is drained first. The busy predicate
// is then evaluated only when no input activity was seen: this deliberately
// short-circuits the per-tick busy evaluation, since activity already forces
// the active verdict and a busy check would only spawn another process.
func (l *Loop) Step(ctx context.Context) idle.Phase {
	activity := input.Any(l.sources)
	isBusy := !activity && l.busy.IsBusy(ctx)
	return l.machine.Tick(ctx, activity, isBusy)
}

// Run ticks until ctx is cancelled. It returns nil on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	log := zerolog.Ctx(ctx)
	log.Info().
		Dur("period", l.period).
		Int("idle_ticks", l.machine.MaxTicks()).
		Int("sources", len(l.sources)).
		Msg("sampling loop started")

	for {
		l.Step(ctx)

		if !l.wait(ctx) {
			log.Info().Msg("sampling loop stopped")
			return nil
		}
	}
}

// wait sleeps for one period and returns false if ctx ended first.
func (l *Loop) wait(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}

	t := time.NewTimer(l.period)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
