package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scienceol/displayidle/internal/ui"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "displayidle",
	Short: "Power the display off when nobody is using it",
	Long: `displayidle watches keyboard and pointer input devices and a list of
keep-awake processes. After a period without input, and with none of those
processes running, it switches the display off. Any input switches it back on.

Run without a subcommand it behaves like "displayidle run".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDaemon,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default /etc/displayidle/config.yaml if present)")
	rootCmd.Flags().BoolVar(&flagForeground, "foreground", false, "Stay attached to the terminal")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
}
