package timecalc

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateID creates a unique entry ID based on timestamp and random suffix.
func GenerateID(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%s", t.Format("20060102-150405"), suffix)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Monday returns 00:00 of the Monday starting the week containing t.
// Sunday belongs to the week that started six days earlier.
func Monday(t time.Time) time.Time {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return StartOfDay(t.AddDate(0, 0, -(wd - 1)))
}

// WeekRange returns the Monday and Sunday of the week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	monday := Monday(t)
	return monday, EndOfDay(monday.AddDate(0, 0, 6))
}

// MonthRange returns the first instant and the end of the last day of the month.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
	return first, EndOfDay(last)
}

// YearRange returns Jan 1 00:00 and the end of Dec 31 of year.
func YearRange(year int, loc *time.Location) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		EndOfDay(time.Date(year, time.December, 31, 0, 0, 0, 0, loc))
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekKey returns the sidebar week label "YYYY-W<n>", where n counts started
// seven-day blocks since Jan 1 (Jan 1 itself is W0).
func WeekKey(t time.Time) string {
	days := t.YearDay() - 1
	week := (days + 6) / 7
	return fmt.Sprintf("%d-W%d", t.Year(), week)
}
