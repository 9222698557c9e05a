package cmd

import (
	"bytes"
	"fmt"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

// defaultExportFile is also the last snapshot candidate, so an export can be
// dropped next to the binary and picked up on the next start.
const defaultExportFile = "caretaker-logs-export.json"

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered log entries as JSON",
	Long: `Write the entries selected by the list filters as indented JSON.
Use --output - to write to stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOutput, "output", defaultExportFile, "Output file, or - for stdout")
	addFilterFlags(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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
	if exportOutput == "-" {
		return s.app.Export(cmd.OutOrStdout())
	}

	var buf bytes.Buffer
	if err := s.app.Export(&buf); err != nil {
		return err
	}
	if err := atomic.WriteFile(exportOutput, &buf); err != nil {
		return fmt.Errorf("writing %s: %w", exportOutput, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(logs), exportOutput)
	return nil
}
