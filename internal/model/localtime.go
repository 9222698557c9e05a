package model

import (
	"fmt"
	"strings"
	"time"
)

// Display layouts used by list and report output.
const (
	DayLayout     = "2006-01-02"
	InputLayout   = "2006-01-02T15:04"
	ClockLayout   = "15:04"
	DisplayLayout = "2006-01-02 15:04"
)

// localLayouts are tried in order by ParseLocal. None of them carry an offset,
// so the result is interpreted in the caller's location.
var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	DayLayout,
}

// ParseLocal parses a local timestamp string such as "2024-03-05T08:30".
// RFC 3339 strings are accepted too and converted into loc.
func ParseLocal(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", s)
}

// FormatInput renders t the way the entry form stores dates.
func FormatInput(t time.Time) string {
	return t.Format(InputLayout)
}
