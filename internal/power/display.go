package power

import (
	"bytes"
	"context"

	"github.com/rs/zerolog"

	"github.com/scienceol/displayidle/internal/executor"
)

// Commands are the shell command lines that control the display.
type Commands struct {
	Status string
	On     string
	Off    string
	// OffSignature is the leading output of Status when the display is off.
	OffSignature string
}

// Display is a Controller backed by shell commands.
type Display struct {
	cmds   Commands
	runner executor.Runner
}

var _ Controller = (*Display)(nil)

// NewDisplay returns a Display that runs cmds through runner.
func NewDisplay(cmds Commands, runner executor.Runner) *Display {
	return &Display{cmds: cmds, runner: runner}
}

// State runs the status command and compares the first len(OffSignature)
// bytes of its output with the signature. Output that matches is off, any
// other output is on. The exit status of the query is not consulted.
func (d *Display) State(ctx context.Context) State {
	log := zerolog.Ctx(ctx)

	sig := []byte(d.cmds.OffSignature)
	res := d.runner.Run(ctx, d.cmds.Status, len(sig))
	if res.Err != nil {
		log.Debug().Err(res.Err).Msg("display status query failed")
		return StateError
	}

	if len(res.Stdout) == len(sig) && bytes.Equal(res.Stdout, sig) {
		return StateOff
	}
	return StateOn
}

// Set switches the display to target unless it is already there. When the
// command fails the state observed before the attempt is returned.
func (d *Display) Set(ctx context.Context, target State) State {
	log := zerolog.Ctx(ctx)

	current := d.State(ctx)
	if current == target {
		return target
	}

	var command string
	switch target {
	case StateOn:
		command = d.cmds.On
	case StateOff:
		command = d.cmds.Off
	default:
		return current
	}

	res := d.runner.Run(ctx, command, 0)
	if !res.OK() {
		log.Warn().
			Err(res.Err).
			Int("exit_code", res.ExitCode).
			Stringer("target", target).
			Stringer("current", current).
			Msg("display power command failed")
		return current
	}

	log.Info().Stringer("from", current).Stringer("to", target).Msg("display power changed")
	return target
}
