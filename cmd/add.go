package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/caretaker-log/internal/model"
)

var (
	addID          string
	addTitle       string
	addType        string
	addDate        string
	addDescription string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a completed task, or edit one with --id",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addID, "id", "", "Existing entry id to overwrite")
	addCmd.Flags().StringVar(&addTitle, "title", "", "Task name (see: caretaker tasks)")
	addCmd.Flags().StringVar(&addType, "type", "", "Category; filled from the catalog when empty")
	addCmd.Flags().StringVar(&addDate, "date", "", "Local date and time, e.g. 2024-03-05T08:30 (default now)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Optional description")
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer s.Close()

	date := addDate
	if date == "" {
		date = model.FormatInput(time.Now().In(s.app.Location()))
	}
	e, err := s.app.SaveEntry(cmd.Context(), model.EntryForm{
		ID:          addID,
		Title:       addTitle,
		Type:        addType,
		Date:        date,
		Description: addDescription,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %q at %s (id %s)\n", e.Title, e.Date, e.ID)
	return nil
}
