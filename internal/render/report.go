// Package render turns log entries and reports into terminal, markdown and
// CSV output.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Tiliavir/caretaker-log/internal/report"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	notesStyle   = lipgloss.NewStyle().Italic(true).Padding(0, 1)
)

const notesLabel = "Notes"

type grid struct {
	headers []string
	rows    [][]string
	notes   []string // optional footer, one per data column
}

func dailyGrid(t report.DailyTable) grid {
	g := grid{headers: []string{"Task"}}
	for _, d := range t.Days {
		g.headers = append(g.headers, d.Format("Mon 2"))
	}
	for _, r := range t.Rows {
		g.rows = append(g.rows, append([]string{r.Task}, r.Cells...))
	}
	g.notes = t.Notes
	return g
}

func weeklyGrid(t report.WeeklyTable) grid {
	g := grid{headers: []string{"Task"}}
	for i, w := range t.Weeks {
		g.headers = append(g.headers, fmt.Sprintf("Week %d (%d-%d)", i+1, w.Days[0].Day(), w.Days[len(w.Days)-1].Day()))
	}
	for _, r := range t.Rows {
		g.rows = append(g.rows, append([]string{r.Task}, r.Cells...))
	}
	g.notes = t.Notes
	return g
}

func monthlyGrid(rows []report.Row) grid {
	g := grid{headers: []string{"Task", "Completed"}}
	for _, r := range rows {
		g.rows = append(g.rows, append([]string{r.Task}, r.Cells...))
	}
	return g
}

func hasNotes(notes []string) bool {
	for _, n := range notes {
		if n != "" {
			return true
		}
	}
	return false
}

// Text writes rep as bordered terminal tables.
func Text(w io.Writer, rep report.Report) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(rep.Title))
	b.WriteString("\n")
	for _, d := range rep.Daily {
		section(&b, fmt.Sprintf("Daily tasks - week %d", d.Week), dailyGrid(d))
	}
	section(&b, "Weekly tasks", weeklyGrid(rep.Weekly))
	section(&b, "Monthly and twice-yearly tasks", monthlyGrid(rep.Monthly))
	_, err := io.WriteString(w, b.String())
	return err
}

func section(b *strings.Builder, name string, g grid) {
	rows := g.rows
	notesRow := -1
	if hasNotes(g.notes) {
		notesRow = len(rows)
		rows = append(rows, append([]string{notesLabel}, g.notes...))
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(g.headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch row {
			case table.HeaderRow:
				return headerStyle
			case notesRow:
				return notesStyle
			default:
				return cellStyle
			}
		})
	b.WriteString(sectionStyle.Render(name))
	b.WriteString("\n")
	b.WriteString(t.String())
	b.WriteString("\n\n")
}

// Markdown writes rep as GitHub flavoured markdown tables.
func Markdown(w io.Writer, rep report.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", rep.Title)
	for _, d := range rep.Daily {
		mdSection(&b, fmt.Sprintf("Daily tasks - week %d", d.Week), dailyGrid(d))
	}
	mdSection(&b, "Weekly tasks", weeklyGrid(rep.Weekly))
	mdSection(&b, "Monthly and twice-yearly tasks", monthlyGrid(rep.Monthly))
	_, err := io.WriteString(w, b.String())
	return err
}

func mdSection(b *strings.Builder, name string, g grid) {
	fmt.Fprintf(b, "## %s\n\n", name)
	mdRow(b, g.headers)
	sep := make([]string, len(g.headers))
	for i := range sep {
		sep[i] = "---"
	}
	mdRow(b, sep)
	for _, r := range g.rows {
		mdRow(b, r)
	}
	if hasNotes(g.notes) {
		mdRow(b, append([]string{"*" + notesLabel + "*"}, g.notes...))
	}
	b.WriteString("\n")
}

var mdEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

func mdRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(mdEscaper.Replace(c))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
