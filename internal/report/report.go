// Package report builds the monthly caretaker report: per-week daily task
// tables, a weekly task table and a monthly task table.
package report

import (
	"fmt"
	"time"

	"github.com/Tiliavir/caretaker-log/internal/catalog"
	"github.com/Tiliavir/caretaker-log/internal/comment"
	"github.com/Tiliavir/caretaker-log/internal/model"
	"github.com/Tiliavir/caretaker-log/internal/timecalc"
)

// Row is one task line of a table; Cells holds one display value per column,
// empty where no completion was found.
type Row struct {
	Task  string
	Cells []string
}

// DailyTable covers one bucket of days.
type DailyTable struct {
	Week  int
	Days  []time.Time
	Rows  []Row
	Notes []string // day note per column
}

// WeeklyTable has one column per bucket.
type WeeklyTable struct {
	Weeks []Bucket
	Rows  []Row
	Notes []string // joined week notes per column
}

// Report is the full month.
type Report struct {
	Year    int
	Month   time.Month
	Title   string
	Weeks   []Bucket
	Daily   []DailyTable
	Weekly  WeeklyTable
	Monthly []Row // one cell each
}

// Input is everything Build reads.
type Input struct {
	Year     int
	Month    time.Month
	Logs     []model.LogEntry
	Comments []model.Comment
	Catalog  *catalog.Catalog
	Location *time.Location
}

type dated struct {
	entry model.LogEntry
	at    time.Time
}

// Build derives the report for in.Month. It has no side effects. When several
// completed entries match a cell, the first one in in.Logs order is shown.
func Build(in Input) Report {
	loc := in.Location
	if loc == nil {
		loc = time.Local
	}
	cat := in.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	book := comment.NewBook(in.Comments)

	from, to := timecalc.MonthRange(in.Year, in.Month, loc)
	var logs []dated
	for _, l := range in.Logs {
		at, ok := l.Time(loc)
		if !ok || at.Before(from) || at.After(to) {
			continue
		}
		logs = append(logs, dated{entry: l, at: at})
	}

	weeks := BucketWeeks(in.Year, in.Month, loc)
	r := Report{
		Year:  in.Year,
		Month: in.Month,
		Title: fmt.Sprintf("Caretaker Log Report - %s %d", in.Month, in.Year),
		Weeks: weeks,
	}
	r.Daily = dailyTables(weeks, logs, book, cat.DailyTasks())
	r.Weekly = weeklyTable(weeks, logs, book, cat.WeeklyTasks())
	r.Monthly = monthlyRows(logs, cat.PeriodicTasks())
	return r
}

func find(logs []dated, task string, match func(time.Time) bool) (dated, bool) {
	for _, l := range logs {
		if l.entry.Title == task && l.entry.Completed && match(l.at) {
			return l, true
		}
	}
	return dated{}, false
}

func dailyTables(weeks []Bucket, logs []dated, book *comment.Book, tasks []string) []DailyTable {
	tables := make([]DailyTable, 0, len(weeks))
	for i, w := range weeks {
		t := DailyTable{Week: i + 1, Days: w.Days}
		for _, task := range tasks {
			row := Row{Task: task, Cells: make([]string, len(w.Days))}
			for j, day := range w.Days {
				if hit, ok := find(logs, task, func(at time.Time) bool { return timecalc.SameDay(at, day) }); ok {
					row.Cells[j] = hit.at.Format(model.ClockLayout)
				}
			}
			t.Rows = append(t.Rows, row)
		}
		for _, day := range w.Days {
			t.Notes = append(t.Notes, book.DayNote(day))
		}
		tables = append(tables, t)
	}
	return tables
}

func weeklyTable(weeks []Bucket, logs []dated, book *comment.Book, tasks []string) WeeklyTable {
	t := WeeklyTable{Weeks: weeks}
	for _, task := range tasks {
		row := Row{Task: task, Cells: make([]string, len(weeks))}
		for i, w := range weeks {
			if hit, ok := find(logs, task, w.Contains); ok {
				row.Cells[i] = hit.at.Format(model.DisplayLayout)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	for _, w := range weeks {
		t.Notes = append(t.Notes, book.WeekNotes(w.Days))
	}
	return t
}

func monthlyRows(logs []dated, tasks []string) []Row {
	rows := make([]Row, 0, len(tasks))
	for _, task := range tasks {
		cell := ""
		if hit, ok := find(logs, task, func(time.Time) bool { return true }); ok {
			cell = hit.at.Format(model.DisplayLayout)
		}
		rows = append(rows, Row{Task: task, Cells: []string{cell}})
	}
	return rows
}
