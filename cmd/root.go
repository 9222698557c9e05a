package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/caretaker-log/internal/app"
)

var (
	configPath string
	noSync     bool
)

var rootCmd = &cobra.Command{
	Use:   "caretaker",
	Short: "Caretaker log – record building maintenance tasks and print monthly reports",
	Long: `caretaker records completed maintenance tasks, day and week notes, and
prints monthly report tables. Data is stored in ~/.caretaker/ unless
CARETAKER_HOME or the config file say otherwise.

On every start the snapshot files logs.json,
reports/caretaker-logs-export.json and caretaker-logs-export.json are
probed in that order; the first non-empty one overrides local records
with the same id.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for storage failures and 1 for everything else.
func exitCode(err error) int {
	if errors.Is(err, app.ErrStorage) {
		return 2
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.caretaker/config.json)")
	rootCmd.PersistentFlags().BoolVar(&noSync, "no-sync", false, "Skip the snapshot sync on start")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(tasksCmd)
}
