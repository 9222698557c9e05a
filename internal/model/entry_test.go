package model_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/caretaker-log/internal/model"
)

func TestParseLocal(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2024-03-05T08:30", time.Date(2024, 3, 5, 8, 30, 0, 0, loc), true},
		{"2024-03-05T08:30:15", time.Date(2024, 3, 5, 8, 30, 15, 0, loc), true},
		{"2024-03-05 08:30", time.Date(2024, 3, 5, 8, 30, 0, 0, loc), true},
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, loc), true},
		{"2024-03-05T08:30:00Z", time.Date(2024, 3, 5, 8, 30, 0, 0, loc), true},
		{"", time.Time{}, false},
		{"yesterday", time.Time{}, false},
		{"2024-13-40T08:30", time.Time{}, false},
	}
	for _, tt := range tests {
		got, err := model.ParseLocal(tt.input, loc)
		if (err == nil) != tt.ok {
			t.Errorf("ParseLocal(%q) err = %v, want ok=%v", tt.input, err, tt.ok)
			continue
		}
		if tt.ok && !got.Equal(tt.want) {
			t.Errorf("ParseLocal(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLogEntryTime(t *testing.T) {
	e := model.LogEntry{Date: "2024-02-29T23:59"}
	got, ok := e.Time(time.UTC)
	if !ok {
		t.Fatal("expected date to parse")
	}
	if got.Day() != 29 || got.Hour() != 23 {
		t.Errorf("Time = %v", got)
	}

	bad := model.LogEntry{Date: "not a date"}
	if _, ok := bad.Time(time.UTC); ok {
		t.Error("expected malformed date to report ok=false")
	}
}
