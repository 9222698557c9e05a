// Package comment looks up day and week notes by calendar day.
package comment

import (
	"fmt"
	"strings"
	"time"

	"github.com/Tiliavir/caretaker-log/internal/model"
)

// Key returns the lookup key (YYYY-MM-DD) for day.
func Key(day time.Time) string {
	return day.Format(model.DayLayout)
}

// Book indexes comments by their day key.
type Book struct {
	byKey map[string]model.Comment
}

// NewBook indexes comments. A later comment for the same key replaces an earlier one.
func NewBook(comments []model.Comment) *Book {
	b := &Book{byKey: make(map[string]model.Comment, len(comments))}
	for _, c := range comments {
		key := c.ID
		if key == "" {
			key = c.Date
		}
		b.byKey[key] = c
	}
	return b
}

// Lookup returns the stored comment for key, or an empty one dated key.
func (b *Book) Lookup(key string) model.Comment {
	if c, ok := b.byKey[key]; ok {
		return c
	}
	return model.Comment{Date: key}
}

// DayNote returns the day-level note for day.
func (b *Book) DayNote(day time.Time) string {
	return b.Lookup(Key(day)).DayContent
}

// WeekNotes joins the week notes of days, one "[<day>]: <note>" line per day
// that has one.
func (b *Book) WeekNotes(days []time.Time) string {
	var lines []string
	for _, d := range days {
		if note := b.Lookup(Key(d)).WeekContent; note != "" {
			lines = append(lines, fmt.Sprintf("[%d]: %s", d.Day(), note))
		}
	}
	return strings.Join(lines, "\n")
}
