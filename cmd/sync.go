package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Merge the external snapshot into the local store",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.app.Sync(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, a := range res.Attempts {
		fmt.Fprintf(out, "skipped %s: %v\n", a.Source, a.Err)
	}
	if res.Source == "" {
		fmt.Fprintf(out, "No snapshot found; %d local entries unchanged.\n", res.Total)
		return nil
	}
	fmt.Fprintf(out, "Loaded %d entries from %s; %d entries total.\n", res.Loaded, res.Source, res.Total)
	return nil
}
