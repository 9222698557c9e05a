package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	commentDay  string
	commentWeek string
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Day and week notes",
}

var commentSetCmd = &cobra.Command{
	Use:   "set <YYYY-MM-DD>",
	Short: "Overwrite the notes of a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentSet,
}

var commentShowCmd = &cobra.Command{
	Use:   "show <YYYY-MM-DD>",
	Short: "Show the notes of a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentShow,
}

func init() {
	commentSetCmd.Flags().StringVar(&commentDay, "day", "", "Note shown under the day in the daily table")
	commentSetCmd.Flags().StringVar(&commentWeek, "week", "", "Note shown under the week in the weekly table")
	commentCmd.AddCommand(commentSetCmd)
	commentCmd.AddCommand(commentShowCmd)
}

func runCommentSet(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := s.app.SaveComment(cmd.Context(), args[0], commentDay, commentWeek)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved notes for %s\n", c.Date)
	return nil
}

func runCommentShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer s.Close()

	c := s.app.Comment(args[0])
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Day:  %s\n", c.DayContent)
	fmt.Fprintf(out, "Week: %s\n", c.WeekContent)
	return nil
}
