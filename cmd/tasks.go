package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/caretaker-log/internal/render"
)

var tasksFlat bool

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List the task catalog",
	Args:  cobra.NoArgs,
	RunE:  runTasks,
}

func init() {
	tasksCmd.Flags().BoolVar(&tasksFlat, "flat", false, "One task per line in entry-form order")
}

func runTasks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if tasksFlat {
		for _, t := range cfg.TaskCatalog().Options() {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		return nil
	}
	return render.Tasks(cmd.OutOrStdout(), cfg.TaskCatalog())
}
