package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/caretaker-log/internal/render"
)

var (
	reportMonth  string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the monthly caretaker report",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportMonth, "month", "", "Month as YYYY-MM (default current month)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "Output format: text, md")
}

func runReport(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer s.Close()

	rep, err := s.app.Report(reportMonth)
	if err != nil {
		return err
	}
	switch reportFormat {
	case "md":
		return render.Markdown(cmd.OutOrStdout(), rep)
	case "text":
		return render.Text(cmd.OutOrStdout(), rep)
	default:
		return fmt.Errorf("unknown format %q (want text or md)", reportFormat)
	}
}
