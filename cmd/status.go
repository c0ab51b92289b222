package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/scienceol/displayidle/internal/config"
	"github.com/scienceol/displayidle/internal/executor"
	"github.com/scienceol/displayidle/internal/power"
	"github.com/scienceol/displayidle/internal/ui"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query the current display power state once",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}

		d := newDisplay(cfg, executor.New(cfg.Display.CommandTimeout))
		st := d.State(context.Background())

		ui.KeyValue("Command", cfg.Display.StatusCmd)
		ui.State("Display", st.String())

		if st == power.StateError {
			ui.Warn("Could not run %q", cfg.Display.StatusCmd)
			return errors.New("display status query failed")
		}
		return nil
	},
}
