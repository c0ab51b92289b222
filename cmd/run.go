package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scienceol/displayidle/internal/busy"
	"github.com/scienceol/displayidle/internal/config"
	"github.com/scienceol/displayidle/internal/daemon"
	"github.com/scienceol/displayidle/internal/executor"
	"github.com/scienceol/displayidle/internal/idle"
	"github.com/scienceol/displayidle/internal/input"
	"github.com/scienceol/displayidle/internal/logging"
	"github.com/scienceol/displayidle/internal/monitor"
	"github.com/scienceol/displayidle/internal/power"
	"github.com/scienceol/displayidle/internal/ui"
)

var flagForeground bool

func init() {
	runCmd.Flags().BoolVar(&flagForeground, "foreground", false, "Stay attached to the terminal")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch input activity and drive the display power state",
	Long: `Opens every configured input device, detaches from the terminal and
samples activity once per tick. If any device cannot be opened the command
fails before detaching.`,
	RunE: runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Every device must open before anything else happens.
	devices, err := input.OpenAll(cfg.Devices)
	if err != nil {
		return err
	}

	if flagForeground {
		ui.Banner(version)
		ui.KeyValue("Devices", strings.Join(cfg.Devices, ", "))
		ui.KeyValue("Timeout", cfg.IdleTimeout.String())
		ui.Info("Watching for activity, press Ctrl+C to stop")
	} else {
		// The detached copy opens the devices again for itself.
		args, env := detachSpec(cfg)
		parent, err := daemon.Detach(args, env...)
		if err != nil {
			input.CloseAll(devices)
			return err
		}
		if parent {
			input.CloseAll(devices)
			return nil
		}
	}
	defer input.CloseAll(devices)

	logger, closer, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(logging.WithContext(context.Background(), logger))
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info().Stringer("signal", sig).Msg("shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	return newLoop(cfg, devices).Run(logging.WithComponent(ctx, "monitor"))
}

// detachSpec builds the arguments and extra environment of the detached copy.
// It runs from "/", so the config it loaded must be named by absolute path.
func detachSpec(cfg *config.Config) (args, env []string) {
	args = []string{"run"}
	if cfg.Path != "" {
		args = append(args, "--config="+cfg.Path)
	}
	if cfg.Log.File != "" {
		env = append(env, "DISPLAYIDLE_LOG_FILE="+cfg.Log.File)
	}
	return args, env
}

func newDisplay(cfg *config.Config, runner executor.Runner) *power.Display {
	return power.NewDisplay(power.Commands{
		Status:       cfg.Display.StatusCmd,
		On:           cfg.Display.OnCmd,
		Off:          cfg.Display.OffCmd,
		OffSignature: cfg.Display.OffSignature,
	}, runner)
}

func newLoop(cfg *config.Config, devices []*input.Device) *monitor.Loop {
	runner := executor.New(cfg.Display.CommandTimeout)

	sources := make([]input.Source, len(devices))
	for i, d := range devices {
		sources[i] = d
	}

	maxTicks := idle.TicksFor(cfg.IdleTimeout, cfg.TickPeriod)
	machine := idle.NewMachine(maxTicks, newDisplay(cfg, runner))

	return monitor.New(sources, busy.NewPgrep(cfg.BusyProcesses, runner), machine, cfg.TickPeriod)
}
