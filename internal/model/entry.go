package model

import "time"

// SourceReport marks an entry that was materialised from the external snapshot.
const SourceReport = "report"

// LogEntry is a single completed (or scheduled) caretaker task.
type LogEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Completed   bool   `json:"completed"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
}

// Time parses Date in loc. ok is false when the date is missing or malformed.
func (e LogEntry) Time(loc *time.Location) (time.Time, bool) {
	t, err := ParseLocal(e.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Comment is a free-text note keyed by calendar day (YYYY-MM-DD).
type Comment struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	DayContent  string `json:"dayContent"`
	WeekContent string `json:"weekContent"`
}

// EntryForm carries user input for creating or editing a LogEntry.
type EntryForm struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required,max=200"`
	Type        string `json:"type"`
	Date        string `json:"date" validate:"required,localtime"`
	Description string `json:"description"`
}
