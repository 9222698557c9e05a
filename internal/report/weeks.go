package report

import (
	"fmt"
	"time"

	"github.com/Tiliavir/caretaker-log/internal/timecalc"
)

// Bucket is a run of at most seven consecutive days of one month.
type Bucket struct {
	Days []time.Time
}

// Start returns 00:00 of the first day.
func (b Bucket) Start() time.Time {
	return timecalc.StartOfDay(b.Days[0])
}

// End returns 23:59:59.999 of the last day.
func (b Bucket) End() time.Time {
	return timecalc.EndOfDay(b.Days[len(b.Days)-1])
}

// Contains reports whether t falls within the bucket's days, inclusive.
func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.Start()) && !t.After(b.End())
}

// BucketWeeks splits the month into seven-day chunks counted from day 1, so
// only the last chunk can be short. Calendar week boundaries are ignored.
func BucketWeeks(year int, month time.Month, loc *time.Location) []Bucket {
	if loc == nil {
		loc = time.Local
	}
	n := timecalc.DaysIn(year, month)
	var (
		weeks   []Bucket
		current []time.Time
	)
	for d := 1; d <= n; d++ {
		current = append(current, time.Date(year, month, d, 0, 0, 0, 0, loc))
		if len(current) == 7 || d == n {
			weeks = append(weeks, Bucket{Days: current})
			current = nil
		}
	}
	return weeks
}

// ParseMonth parses a "YYYY-MM" designator. An empty string selects the month of now.
func ParseMonth(s string, now time.Time) (int, time.Month, error) {
	if s == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (want YYYY-MM): %w", s, err)
	}
	return t.Year(), t.Month(), nil
}
