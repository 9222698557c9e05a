package comment_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/caretaker-log/internal/comment"
	"github.com/Tiliavir/caretaker-log/internal/model"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestLookupMissing(t *testing.T) {
	b := comment.NewBook(nil)
	got := b.Lookup("2024-03-05")
	want := model.Comment{Date: "2024-03-05"}
	if got != want {
		t.Errorf("Lookup = %+v, want %+v", got, want)
	}
}

func TestLookupFound(t *testing.T) {
	b := comment.NewBook([]model.Comment{
		{ID: "2024-03-05", Date: "2024-03-05", DayContent: "Boiler serviced"},
	})
	if got := b.DayNote(day(5)); got != "Boiler serviced" {
		t.Errorf("DayNote = %q", got)
	}
	if got := b.DayNote(day(6)); got != "" {
		t.Errorf("DayNote for missing day = %q, want empty", got)
	}
}

func TestWeekNotes(t *testing.T) {
	b := comment.NewBook([]model.Comment{
		{ID: "2024-03-03", WeekContent: "Quiet week"},
		{ID: "2024-03-05", DayContent: "only a day note"},
		{ID: "2024-03-07", WeekContent: "Lobby repainted"},
	})
	days := []time.Time{day(1), day(2), day(3), day(4), day(5), day(6), day(7)}
	got := b.WeekNotes(days)
	want := "[3]: Quiet week\n[7]: Lobby repainted"
	if got != want {
		t.Errorf("WeekNotes = %q, want %q", got, want)
	}
	if got := b.WeekNotes(days[:2]); got != "" {
		t.Errorf("WeekNotes without notes = %q, want empty", got)
	}
}

func TestNewBookFallsBackToDate(t *testing.T) {
	b := comment.NewBook([]model.Comment{{Date: "2024-03-09", DayContent: "x"}})
	if got := b.DayNote(day(9)); got != "x" {
		t.Errorf("DayNote = %q, want x", got)
	}
}
