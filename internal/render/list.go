package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/caretaker-log/internal/catalog"
	"github.com/Tiliavir/caretaker-log/internal/model"
	"github.com/Tiliavir/caretaker-log/internal/timecalc"
)

var (
	weekStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	dayStyle    = lipgloss.NewStyle().Bold(true)
	reportStyle = lipgloss.NewStyle().Faint(true)
)

const noEntries = "No entries found."

// List writes logs grouped by week label and day, in the order given.
// Entries whose date cannot be parsed are grouped under their raw date string.
func List(w io.Writer, logs []model.LogEntry, loc *time.Location) error {
	if len(logs) == 0 {
		_, err := fmt.Fprintln(w, noEntries)
		return err
	}
	var (
		b           strings.Builder
		currentWeek string
		currentDay  string
	)
	for _, e := range logs {
		week, day, clock := "", e.Date, ""
		if t, ok := e.Time(loc); ok {
			week = timecalc.WeekKey(t)
			day, clock = t.Format(model.DayLayout), t.Format(model.ClockLayout)
		}
		if week != currentWeek && week != "" {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(weekStyle.Render(week))
			b.WriteString("\n")
			currentWeek = week
			currentDay = ""
		}
		if day != currentDay {
			b.WriteString(dayStyle.Render(day))
			b.WriteString("\n")
			currentDay = day
		}

		status := "x"
		if !e.Completed {
			status = " "
		}
		fmt.Fprintf(&b, "[%s] %-5s  %s", status, clock, e.Title)
		if e.Type != "" {
			fmt.Fprintf(&b, "  (%s)", e.Type)
		}
		if e.Source == model.SourceReport {
			b.WriteString("  " + reportStyle.Render("[report]"))
		}
		fmt.Fprintf(&b, "  %s\n", e.ID)
		if e.Description != "" {
			fmt.Fprintf(&b, "      %s\n", e.Description)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// CSV writes logs as comma separated values with a header line.
func CSV(w io.Writer, logs []model.LogEntry) error {
	var b strings.Builder
	b.WriteString("id,title,type,date,completed,description,source\n")
	for _, e := range logs {
		fields := []string{e.ID, e.Title, e.Type, e.Date, strconv.FormatBool(e.Completed), e.Description, e.Source}
		for i, f := range fields {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(csvEscape(f))
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Tasks writes the catalog, one category per block.
func Tasks(w io.Writer, cat *catalog.Catalog) error {
	var b strings.Builder
	for i, c := range cat.Categories() {
		if i > 0 {
			b.WriteString("\n")
		}
		title := c.Name
		if catalog.IsDaily(c.Name) {
			title += "  (quick complete with: caretaker done <task>)"
		}
		b.WriteString(dayStyle.Render(title))
		b.WriteString("\n")
		for _, t := range c.Tasks {
			fmt.Fprintf(&b, "  - %s\n", t)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
