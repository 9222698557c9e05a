package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/caretaker-log/internal/filter"
	"github.com/Tiliavir/caretaker-log/internal/render"
)

var (
	listSearch string
	listRange  string
	listFrom   string
	listTo     string
	listFormat string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List log entries, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	addFilterFlags(listCmd)
	listCmd.Flags().StringVar(&listFormat, "format", "md", "Output format: md, csv, json")
}

// addFilterFlags registers the filter flags shared by list and export. Both
// commands write the same variables.
func addFilterFlags(c *cobra.Command) {
	c.Flags().StringVar(&listSearch, "search", "", "Case-insensitive text in title, description or type")
	c.Flags().StringVar(&listRange, "range", string(filter.All), "Date range: all, current-week, last-week, current-month, last-month, current-year, last-year, custom")
	c.Flags().StringVar(&listFrom, "from", "", "Custom range start (YYYY-MM-DD); implies --range custom")
	c.Flags().StringVar(&listTo, "to", "", "Custom range end (YYYY-MM-DD); implies --range custom")
}

// filterSpec builds the filter from the list flags. --from/--to switch an
// unset range to custom.
func filterSpec(cmd *cobra.Command) (filter.Spec, error) {
	r, err := filter.ParseRange(listRange)
	if err != nil {
		return filter.Spec{}, err
	}
	if (listFrom != "" || listTo != "") && !cmd.Flags().Changed("range") {
		r = filter.Custom
	}
	spec := filter.Spec{Search: listSearch, Range: r, CustomStart: listFrom, CustomEnd: listTo}
	if err := spec.Validate(); err != nil {
		return filter.Spec{}, err
	}
	return spec, nil
}

func runList(cmd *cobra.Command, args []string) error {
	spec, err := filterSpec(cmd)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer s.Close()

	logs := s.app.SetFilter(spec)
	out := cmd.OutOrStdout()
	switch listFormat {
	case "csv":
		return render.CSV(out, logs)
	case "json":
		return s.app.Export(out)
	case "md":
		return render.List(out, logs, s.app.Location())
	default:
		return fmt.Errorf("unknown format %q (want md, csv or json)", listFormat)
	}
}
