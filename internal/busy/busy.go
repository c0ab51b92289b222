// Package busy reports whether a keep-awake workload is running.
package busy

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/scienceol/displayidle/internal/executor"
)

// Predicate tells whether idling must be suppressed right now.
type Predicate interface {
	IsBusy(ctx context.Context) bool
}

// Pgrep matches running process names with pgrep. A match (exit 0) means
// busy; no match, a pgrep error or a failure to run pgrep means not busy.
type Pgrep struct {
	command string
	runner  executor.Runner
}

var _ Predicate = (*Pgrep)(nil)

// NewPgrep builds a predicate for the given process name patterns. With no
// patterns the predicate is never busy and runs nothing.
func NewPgrep(patterns []string, runner executor.Runner) *Pgrep {
	p := &Pgrep{runner: runner}
	if expr := joinPatterns(patterns); expr != "" {
		p.command = "pgrep " + shellQuote(expr)
	}
	return p
}

// IsBusy runs pgrep once. Results are never cached.
func (p *Pgrep) IsBusy(ctx context.Context) bool {
	if p.command == "" {
		return false
	}

	res := p.runner.Run(ctx, p.command, 1)
	if res.Err != nil {
		zerolog.Ctx(ctx).Debug().Err(res.Err).Msg("busy check failed, assuming not busy")
		return false
	}
	return res.ExitCode == 0
}

func joinPatterns(patterns []string) string {
	var parts []string
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "|")
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
