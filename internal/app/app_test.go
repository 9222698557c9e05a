package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/caretaker-log/internal/app"
	"github.com/Tiliavir/caretaker-log/internal/apperror"
	"github.com/Tiliavir/caretaker-log/internal/catalog"
	"github.com/Tiliavir/caretaker-log/internal/filter"
	"github.com/Tiliavir/caretaker-log/internal/model"
	"github.com/Tiliavir/caretaker-log/internal/snapshot"
	"github.com/Tiliavir/caretaker-log/internal/store"
)

var fixedNow = time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)

func openStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.OpenFile(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func open(t *testing.T, s store.Store, sources ...snapshot.Source) *app.App {
	t.Helper()
	a, err := app.Open(context.Background(), app.Options{
		Store:    s,
		Location: time.UTC,
		Sources:  sources,
		Now:      func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return a
}

func TestOpenEmpty(t *testing.T) {
	a := open(t, openStore(t))
	st := a.State()
	assert.Empty(t, st.Logs)
	assert.Empty(t, st.Filtered)
	assert.Empty(t, st.Comments)
	assert.Equal(t, filter.All, st.Filter.Range)
}

func TestOpenRequiresStore(t *testing.T) {
	_, err := app.Open(context.Background(), app.Options{})
	assert.Error(t, err)
}

func TestSaveEntryCreatesAndPersists(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	a := open(t, s)

	e, err := a.SaveEntry(ctx, model.EntryForm{Title: "Snow removal", Date: "2024-03-05 08:30"})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, catalog.DailyWinter, e.Type)
	assert.Equal(t, "2024-03-05T08:30", e.Date)
	assert.True(t, e.Completed)

	reopened := open(t, s)
	if diff := cmp.Diff([]model.LogEntry{e}, reopened.State().Logs); diff != "" {
		t.Errorf("persisted logs mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveEntryValidationWritesNothing(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	a := open(t, s)

	_, err := a.SaveEntry(ctx, model.EntryForm{Title: "  ", Date: "not a date"})
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)

	raw, err := s.GetAll(ctx, store.Logs)
	require.NoError(t, err)
	assert.Empty(t, raw)
	assert.Empty(t, a.State().Logs)
}

func TestSaveEntryOverwritesByID(t *testing.T) {
	ctx := context.Background()
	a := open(t, openStore(t))

	first, err := a.SaveEntry(ctx, model.EntryForm{Title: "Clean Ice Machine", Date: "2024-03-01T09:00"})
	require.NoError(t, err)
	_, err = a.SaveEntry(ctx, model.EntryForm{Title: "Dust horizontal surfaces", Date: "2024-03-02T09:00"})
	require.NoError(t, err)

	edited, err := a.SaveEntry(ctx, model.EntryForm{
		ID:          first.ID,
		Title:       "Clean Ice Machine",
		Type:        "Custom",
		Date:        "2024-03-01T11:00",
		Description: "descaled",
	})
	require.NoError(t, err)

	logs := a.State().Logs
	require.Len(t, logs, 2)
	assert.Equal(t, edited, logs[0])
	assert.Equal(t, "Custom", logs[0].Type)
	assert.Equal(t, "descaled", logs[0].Description)
}

func TestQuickComplete(t *testing.T) {
	ctx := context.Background()
	a := open(t, openStore(t))

	e, err := a.QuickComplete(ctx, "Emptying (4) Waste cans")
	require.NoError(t, err)
	assert.Equal(t, catalog.DailyAllYear, e.Type)
	assert.Equal(t, "2024-03-13T10:00", e.Date)
	assert.True(t, e.Completed)

	_, err = a.QuickComplete(ctx, "Clean windows and mirrors")
	assert.ErrorIs(t, err, app.ErrNotQuickCompletable)
	_, err = a.QuickComplete(ctx, "Walk the dog")
	assert.ErrorIs(t, err, app.ErrNotQuickCompletable)
	assert.Len(t, a.State().Logs, 1)
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	a := open(t, s)

	e, err := a.SaveEntry(ctx, model.EntryForm{Title: "Snow removal", Date: "2024-03-05T08:30"})
	require.NoError(t, err)

	require.NoError(t, a.DeleteEntry(ctx, e.ID))
	assert.Empty(t, a.State().Logs)
	assert.Empty(t, a.Filtered())
	assert.Empty(t, open(t, s).State().Logs)

	assert.ErrorIs(t, a.DeleteEntry(ctx, e.ID), app.ErrEntryNotFound)
}

func TestComments(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	a := open(t, s)

	assert.Equal(t, model.Comment{Date: "2024-03-05"}, a.Comment("2024-03-05"))

	_, err := a.SaveComment(ctx, "2024-03-05", "Heavy snow", "")
	require.NoError(t, err)
	_, err = a.SaveComment(ctx, "2024-03-05", "Heavy snow", "Elevator out")
	require.NoError(t, err)

	want := model.Comment{ID: "2024-03-05", Date: "2024-03-05", DayContent: "Heavy snow", WeekContent: "Elevator out"}
	assert.Equal(t, want, a.Comment("2024-03-05"))
	assert.Equal(t, []model.Comment{want}, open(t, s).State().Comments)

	_, err = a.SaveComment(ctx, "March 5", "x", "")
	assert.ErrorIs(t, err, app.ErrInvalidDay)
}

func TestSetFilter(t *testing.T) {
	ctx := context.Background()
	a := open(t, openStore(t))
	for _, f := range []model.EntryForm{
		{Title: "Snow removal", Date: "2024-03-12T07:00"},
		{Title: "Application of salt", Date: "2024-03-12T07:30"},
		{Title: "Snow removal", Date: "2024-02-01T07:00"},
	} {
		_, err := a.SaveEntry(ctx, f)
		require.NoError(t, err)
	}

	assert.Len(t, a.Filtered(), 3)
	assert.Equal(t, "2024-03-12T07:30", a.Filtered()[0].Date)

	got := a.SetFilter(filter.Spec{Search: "SNOW", Range: filter.CurrentWeek})
	require.Len(t, got, 1)
	assert.Equal(t, "2024-03-12T07:00", got[0].Date)

	// New entries are filtered with the active spec.
	_, err := a.SaveEntry(ctx, model.EntryForm{Title: "Snow removal", Date: "2024-03-13T06:00"})
	require.NoError(t, err)
	assert.Len(t, a.Filtered(), 2)

	assert.Len(t, a.SetFilter(filter.Spec{}), 4)
}

func writeSnapshot(t *testing.T, dir, name string, logs []model.LogEntry) {
	t.Helper()
	data, err := json.Marshal(logs)
	require.NoError(t, err)
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func TestSyncMergesAndPersists(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	local := []model.LogEntry{
		{ID: "a", Title: "Snow removal", Date: "2024-03-01T07:00", Completed: true},
		{ID: "b", Title: "Application of salt", Date: "2024-03-01T07:10", Completed: true},
	}
	for _, e := range local {
		require.NoError(t, store.Save(ctx, s, store.Logs, e.ID, e))
	}

	dir := t.TempDir()
	writeSnapshot(t, dir, "reports/caretaker-logs-export.json", []model.LogEntry{
		{ID: "b", Title: "Application of salt", Date: "2024-03-01T08:00", Completed: true},
		{ID: "c", Title: "Clean Ice Machine", Date: "2024-03-02T09:00", Completed: true},
	})

	a, err := app.Open(ctx, app.Options{
		Store:    s,
		Location: time.UTC,
		Sources:  snapshot.FileSources(dir),
		Now:      func() time.Time { return fixedNow },
		NoSync:   true,
	})
	require.NoError(t, err)
	assert.Len(t, a.State().Logs, 2)

	res, err := a.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reports", "caretaker-logs-export.json"), res.Source)
	assert.Equal(t, 2, res.Loaded)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Attempts, 1)
	assert.ErrorIs(t, res.Attempts[0].Err, snapshot.ErrUnreachable)

	want := []model.LogEntry{
		local[0],
		{ID: "b", Title: "Application of salt", Date: "2024-03-01T08:00", Completed: true, Source: model.SourceReport},
		{ID: "c", Title: "Clean Ice Machine", Date: "2024-03-02T09:00", Completed: true, Source: model.SourceReport},
	}
	if diff := cmp.Diff(want, a.State().Logs); diff != "" {
		t.Errorf("merged logs (-want +got):\n%s", diff)
	}
	stored, err := store.Load[model.LogEntry](ctx, s, store.Logs)
	require.NoError(t, err)
	if diff := cmp.Diff(want, stored); diff != "" {
		t.Errorf("persisted logs (-want +got):\n%s", diff)
	}
}

type countingStore struct {
	store.Store
	puts    int
	batches int
}

func (c *countingStore) Put(ctx context.Context, coll, id string, v json.RawMessage) error {
	c.puts++
	return c.Store.Put(ctx, coll, id, v)
}

func (c *countingStore) PutAll(ctx context.Context, coll string, records []store.Record) error {
	c.batches++
	return c.Store.PutAll(ctx, coll, records)
}

func TestSyncWritesOnlyChangesInOneBatch(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	var snap []model.LogEntry
	for i := 0; i < 200; i++ {
		snap = append(snap, model.LogEntry{
			ID:        fmt.Sprintf("r%03d", i),
			Title:     "Snow removal",
			Date:      "2024-03-01T07:00",
			Completed: true,
		})
	}
	writeSnapshot(t, dir, "logs.json", snap)

	counter := &countingStore{Store: openStore(t)}
	a := open(t, counter, snapshot.FileSources(dir)...)
	assert.Equal(t, 0, counter.puts)
	assert.Equal(t, 1, counter.batches)
	assert.Len(t, a.State().Logs, 200)

	// The store now matches the snapshot; further syncs write nothing.
	counter.batches = 0
	b := open(t, counter, snapshot.FileSources(dir)...)
	_, err := b.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counter.puts)
	assert.Equal(t, 0, counter.batches)

	snap[7].Description = "second pass"
	writeSnapshot(t, dir, "logs.json", snap)
	_, err = b.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counter.batches)
	stored, err := store.Load[model.LogEntry](ctx, counter, store.Logs)
	require.NoError(t, err)
	assert.Equal(t, "second pass", stored[7].Description)
}

func TestSyncWithoutSnapshotKeepsLocal(t *testing.T) {
	ctx := context.Background()
	a := open(t, openStore(t), snapshot.FileSources(t.TempDir())...)
	_, err := a.SaveEntry(ctx, model.EntryForm{Title: "Snow removal", Date: "2024-03-05T08:30"})
	require.NoError(t, err)
	before := a.State().Logs

	res, err := a.Sync(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Source)
	assert.Len(t, res.Attempts, 3)
	assert.Equal(t, before, a.State().Logs)
}

func TestExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := open(t, openStore(t))
	for _, f := range []model.EntryForm{
		{Title: "Snow removal", Date: "2024-03-12T07:00", Description: "<north> & south"},
		{Title: "Clean Ice Machine", Date: "2024-03-02T09:00"},
	} {
		_, err := a.SaveEntry(ctx, f)
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, a.Export(&buf))
	assert.Contains(t, buf.String(), "\n  {\n    \"id\": ")
	assert.Contains(t, buf.String(), "<north> & south")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "caretaker-logs-export.json"), buf.Bytes(), 0o600))
	b := open(t, openStore(t), snapshot.FileSources(dir)...)

	want := a.Filtered()
	for i := range want {
		want[i].Source = model.SourceReport
	}
	if diff := cmp.Diff(want, b.State().Logs); diff != "" {
		t.Errorf("reimported logs (-want +got):\n%s", diff)
	}
}

func TestExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, open(t, openStore(t)).Export(&buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestReport(t *testing.T) {
	ctx := context.Background()
	a := open(t, openStore(t))
	_, err := a.SaveEntry(ctx, model.EntryForm{Title: "Snow removal", Date: "2024-03-02T07:15"})
	require.NoError(t, err)

	r, err := a.Report("")
	require.NoError(t, err)
	assert.Equal(t, "Caretaker Log Report - March 2024", r.Title)
	assert.Equal(t, "07:15", r.Daily[0].Rows[0].Cells[1])

	_, err = a.Report("2024-13")
	assert.Error(t, err)
}

type failingStore struct {
	store.Store
}

var errDisk = errors.New("disk full")

func (failingStore) Put(context.Context, string, string, json.RawMessage) error { return errDisk }

func TestStorageFailure(t *testing.T) {
	a := open(t, failingStore{Store: openStore(t)})

	_, err := a.SaveEntry(context.Background(), model.EntryForm{Title: "Snow removal", Date: "2024-03-05T08:30"})
	assert.ErrorIs(t, err, app.ErrStorage)
	assert.ErrorIs(t, err, errDisk)
	assert.Empty(t, a.State().Logs)
}
