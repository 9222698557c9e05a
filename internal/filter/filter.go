// Package filter produces the ordered, filtered list view of log entries.
package filter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Tiliavir/caretaker-log/internal/model"
	"github.com/Tiliavir/caretaker-log/internal/timecalc"
)

// Range is a named date-range preset.
type Range string

const (
	All          Range = "all"
	CurrentWeek  Range = "current-week"
	LastWeek     Range = "last-week"
	CurrentMonth Range = "current-month"
	LastMonth    Range = "last-month"
	CurrentYear  Range = "current-year"
	LastYear     Range = "last-year"
	Custom       Range = "custom"
)

// Ranges lists every preset in menu order.
var Ranges = []Range{All, CurrentWeek, LastWeek, CurrentMonth, LastMonth, CurrentYear, LastYear, Custom}

// ParseRange validates a preset name. Empty means All.
func ParseRange(s string) (Range, error) {
	if s == "" {
		return All, nil
	}
	for _, r := range Ranges {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown date range %q", s)
}

// Spec is a compound text and date-range filter.
type Spec struct {
	Search      string
	Range       Range
	CustomStart string // YYYY-MM-DD, optional
	CustomEnd   string // YYYY-MM-DD, optional
}

// ErrInvalidBound is returned by Validate for a custom bound that is not a date.
var ErrInvalidBound = errors.New("invalid date bound")

// Validate checks that the custom bounds, when set, parse as dates.
func (s Spec) Validate() error {
	bounds := []struct{ name, value string }{{"start", s.CustomStart}, {"end", s.CustomEnd}}
	for _, b := range bounds {
		if b.value == "" {
			continue
		}
		if _, err := model.ParseLocal(b.value, time.UTC); err != nil {
			return fmt.Errorf("%w: %s %q (want YYYY-MM-DD)", ErrInvalidBound, b.name, b.value)
		}
	}
	return nil
}

// Bounds resolves the date window of spec relative to now. A nil start means
// no date restriction; a nil end means open-ended. A returned end is always
// normalised to 23:59:59.999 of its day.
func Bounds(spec Spec, now time.Time) (start, end *time.Time) {
	loc := now.Location()
	var s, e time.Time
	switch spec.Range {
	case CurrentWeek:
		s = timecalc.Monday(now)
		e = now
	case LastWeek:
		s, e = timecalc.WeekRange(now.AddDate(0, 0, -7))
	case CurrentMonth:
		s, e = timecalc.MonthRange(now.Year(), now.Month(), loc)
	case LastMonth:
		s, e = timecalc.MonthRange(now.Year(), now.Month()-1, loc)
	case CurrentYear:
		s, e = timecalc.YearRange(now.Year(), loc)
	case LastYear:
		s, e = timecalc.YearRange(now.Year()-1, loc)
	case Custom:
		if t, err := model.ParseLocal(spec.CustomStart, loc); err == nil {
			st := timecalc.StartOfDay(t)
			start = &st
		}
		if t, err := model.ParseLocal(spec.CustomEnd, loc); err == nil {
			et := timecalc.EndOfDay(t)
			end = &et
		}
		return start, end
	default:
		return nil, nil
	}
	e = timecalc.EndOfDay(e)
	return &s, &e
}

// Apply sorts logs most recent first, then applies the search text and the
// date range. A custom range with an unparseable bound matches nothing. The
// input slice is not modified.
func Apply(logs []model.LogEntry, spec Spec, now time.Time) []model.LogEntry {
	if spec.Range == Custom && spec.Validate() != nil {
		return []model.LogEntry{}
	}
	loc := now.Location()

	type keyed struct {
		entry model.LogEntry
		at    time.Time
		ok    bool
	}
	items := make([]keyed, len(logs))
	for i, l := range logs {
		at, ok := l.Time(loc)
		items[i] = keyed{entry: l, at: at, ok: ok}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.ok != b.ok {
			return a.ok
		}
		return a.at.After(b.at)
	})

	search := strings.ToLower(spec.Search)
	start, end := Bounds(spec, now)

	out := make([]model.LogEntry, 0, len(items))
	for _, it := range items {
		if search != "" && !matches(it.entry, search) {
			continue
		}
		if start != nil {
			if !it.ok || it.at.Before(*start) {
				continue
			}
			if end != nil && it.at.After(*end) {
				continue
			}
		}
		out = append(out, it.entry)
	}
	return out
}

func matches(e model.LogEntry, search string) bool {
	return strings.Contains(strings.ToLower(e.Title), search) ||
		strings.Contains(strings.ToLower(e.Description), search) ||
		strings.Contains(strings.ToLower(e.Type), search)
}
