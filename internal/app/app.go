// Package app is the caretaker controller. It owns the in-memory State, keeps
// it consistent with the store and exposes the operations the CLI calls.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Tiliavir/caretaker-log/internal/apperror"
	"github.com/Tiliavir/caretaker-log/internal/catalog"
	"github.com/Tiliavir/caretaker-log/internal/comment"
	"github.com/Tiliavir/caretaker-log/internal/filter"
	"github.com/Tiliavir/caretaker-log/internal/merge"
	"github.com/Tiliavir/caretaker-log/internal/model"
	"github.com/Tiliavir/caretaker-log/internal/report"
	"github.com/Tiliavir/caretaker-log/internal/snapshot"
	"github.com/Tiliavir/caretaker-log/internal/store"
	"github.com/Tiliavir/caretaker-log/internal/timecalc"
)

var (
	// ErrStorage wraps every failure reported by the store.
	ErrStorage = errors.New("storage error")
	// ErrEntryNotFound is returned when deleting an unknown id.
	ErrEntryNotFound = errors.New("log entry not found")
	// ErrNotQuickCompletable is returned by QuickComplete for tasks outside
	// the daily categories.
	ErrNotQuickCompletable = errors.New("task cannot be quick-completed")
	// ErrInvalidDay is returned for a comment date that is not YYYY-MM-DD.
	ErrInvalidDay = errors.New("invalid day")
)

// State is everything the presentation layer reads.
type State struct {
	Logs     []model.LogEntry
	Filtered []model.LogEntry
	Comments []model.Comment
	Filter   filter.Spec
}

// Options configures Open.
type Options struct {
	Store    store.Store
	Catalog  *catalog.Catalog
	Location *time.Location
	// Sources are probed in order by Sync.
	Sources []snapshot.Source
	Logger  *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// NoSync skips the snapshot sync normally done by Open.
	NoSync bool
}

// SyncResult summarises one Sync.
type SyncResult struct {
	Source   string // empty when no snapshot was found
	Loaded   int    // records taken from the snapshot
	Total    int    // records after merging
	Attempts []snapshot.Attempt
}

// App is the controller. It is not safe for concurrent use.
type App struct {
	store    store.Store
	catalog  *catalog.Catalog
	loc      *time.Location
	sources  []snapshot.Source
	log      *zap.Logger
	now      func() time.Time
	validate *validator.Validate

	state State
}

// Open loads logs and comments from the store and, unless disabled, syncs
// with the snapshot. The filter starts as "all".
func Open(ctx context.Context, opts Options) (*App, error) {
	if opts.Store == nil {
		return nil, errors.New("app: store is required")
	}
	a := &App{
		store:    opts.Store,
		catalog:  opts.Catalog,
		loc:      opts.Location,
		sources:  opts.Sources,
		log:      opts.Logger,
		now:      opts.Now,
		state:    State{Filter: filter.Spec{Range: filter.All}},
	}
	if a.catalog == nil {
		a.catalog = catalog.Default()
	}
	if a.loc == nil {
		a.loc = time.Local
	}
	a.validate = apperror.NewValidator(a.loc)
	if a.log == nil {
		a.log = zap.NewNop()
	}
	if a.now == nil {
		a.now = time.Now
	}

	logs, err := store.Load[model.LogEntry](ctx, a.store, store.Logs)
	if err != nil {
		return nil, storageErr(err)
	}
	comments, err := store.Load[model.Comment](ctx, a.store, store.Comments)
	if err != nil {
		return nil, storageErr(err)
	}
	a.state.Logs = logs
	a.state.Comments = comments

	if !opts.NoSync {
		if _, err := a.Sync(ctx); err != nil {
			return nil, err
		}
	}
	a.refilter()
	return a, nil
}

func storageErr(err error) error {
	if err == nil || errors.Is(err, ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

func (a *App) clock() time.Time {
	return a.now().In(a.loc)
}

func (a *App) refilter() {
	a.state.Filtered = filter.Apply(a.state.Logs, a.state.Filter, a.clock())
}

// Sync probes the snapshot sources, merges the winner over the local logs
// and writes new or changed records back to the store in one batch. Probe
// failures are reported in the result; only store failures are returned.
func (a *App) Sync(ctx context.Context) (SyncResult, error) {
	probe := snapshot.Probe(ctx, a.sources, a.log)
	res := SyncResult{Source: probe.Source, Loaded: len(probe.Entries), Attempts: probe.Attempts}

	merged := merge.Merge(a.state.Logs, probe.Entries)
	if changed := changedLogs(a.state.Logs, merged); len(changed) > 0 {
		if err := store.SaveAll(ctx, a.store, store.Logs, changed, logID); err != nil {
			return res, storageErr(err)
		}
	}
	a.state.Logs = merged
	a.refilter()
	res.Total = len(merged)

	a.log.Info("sync finished",
		zap.String("source", res.Source),
		zap.Int("loaded", res.Loaded),
		zap.Int("total", res.Total))
	return res, nil
}

func logID(e model.LogEntry) string { return e.ID }

// changedLogs returns the merged entries that are new or differ from local.
func changedLogs(local, merged []model.LogEntry) []model.LogEntry {
	byID := make(map[string]model.LogEntry, len(local))
	for _, e := range local {
		byID[e.ID] = e
	}
	var out []model.LogEntry
	for _, e := range merged {
		if old, ok := byID[e.ID]; !ok || old != e {
			out = append(out, e)
		}
	}
	return out
}

// State returns a copy of the current state.
func (a *App) State() State {
	return State{
		Logs:     append([]model.LogEntry(nil), a.state.Logs...),
		Filtered: append([]model.LogEntry(nil), a.state.Filtered...),
		Comments: append([]model.Comment(nil), a.state.Comments...),
		Filter:   a.state.Filter,
	}
}

// Catalog returns the task catalog in use.
func (a *App) Catalog() *catalog.Catalog { return a.catalog }

// Location returns the zone entry dates are interpreted in.
func (a *App) Location() *time.Location { return a.loc }

// SaveEntry validates form and upserts the resulting entry. An empty id
// creates a new entry, an existing id overwrites it in place. Nothing is
// written when validation fails.
func (a *App) SaveEntry(ctx context.Context, form model.EntryForm) (model.LogEntry, error) {
	form.Title = strings.TrimSpace(form.Title)
	form.Date = strings.TrimSpace(form.Date)
	if err := apperror.FromValidator(a.validate.Struct(form)); err != nil {
		return model.LogEntry{}, err
	}
	at, err := model.ParseLocal(form.Date, a.loc)
	if err != nil {
		return model.LogEntry{}, err
	}

	entry := model.LogEntry{
		ID:          strings.TrimSpace(form.ID),
		Title:       form.Title,
		Type:        strings.TrimSpace(form.Type),
		Date:        model.FormatInput(at),
		Completed:   true,
		Description: strings.TrimSpace(form.Description),
	}
	if entry.ID == "" {
		entry.ID = timecalc.GenerateID(a.clock())
	}
	if entry.Type == "" {
		entry.Type, _ = a.catalog.CategoryOf(entry.Title)
	}
	if err := a.putLog(ctx, entry); err != nil {
		return model.LogEntry{}, err
	}
	return entry, nil
}

// QuickComplete records a daily task as completed now.
func (a *App) QuickComplete(ctx context.Context, task string) (model.LogEntry, error) {
	category, ok := a.catalog.CategoryOf(task)
	if !ok || !catalog.IsDaily(category) {
		return model.LogEntry{}, fmt.Errorf("%w: %q", ErrNotQuickCompletable, task)
	}
	now := a.clock()
	entry := model.LogEntry{
		ID:        timecalc.GenerateID(now),
		Title:     task,
		Type:      category,
		Date:      model.FormatInput(now),
		Completed: true,
	}
	if err := a.putLog(ctx, entry); err != nil {
		return model.LogEntry{}, err
	}
	return entry, nil
}

func (a *App) putLog(ctx context.Context, e model.LogEntry) error {
	if err := store.Save(ctx, a.store, store.Logs, e.ID, e); err != nil {
		return storageErr(err)
	}
	a.state.Logs = upsert(a.state.Logs, e, logID)
	a.refilter()
	return nil
}

// DeleteEntry removes the entry with id from state and store.
func (a *App) DeleteEntry(ctx context.Context, id string) error {
	idx := -1
	for i, e := range a.state.Logs {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrEntryNotFound, id)
	}
	if err := a.store.Delete(ctx, store.Logs, id); err != nil {
		return storageErr(err)
	}
	a.state.Logs = append(a.state.Logs[:idx:idx], a.state.Logs[idx+1:]...)
	a.refilter()
	return nil
}

// SaveComment overwrites the notes for day (YYYY-MM-DD).
func (a *App) SaveComment(ctx context.Context, day, dayContent, weekContent string) (model.Comment, error) {
	if _, err := time.ParseInLocation(model.DayLayout, day, a.loc); err != nil {
		return model.Comment{}, fmt.Errorf("%w %q (want YYYY-MM-DD)", ErrInvalidDay, day)
	}
	c := model.Comment{ID: day, Date: day, DayContent: dayContent, WeekContent: weekContent}
	if err := store.Save(ctx, a.store, store.Comments, c.ID, c); err != nil {
		return model.Comment{}, storageErr(err)
	}
	a.state.Comments = upsert(a.state.Comments, c, func(x model.Comment) string { return x.ID })
	return c, nil
}

// Comment returns the notes for day, or an empty comment dated day.
func (a *App) Comment(day string) model.Comment {
	return comment.NewBook(a.state.Comments).Lookup(day)
}

// SetFilter replaces the filter and returns the new filtered view.
func (a *App) SetFilter(spec filter.Spec) []model.LogEntry {
	if spec.Range == "" {
		spec.Range = filter.All
	}
	a.state.Filter = spec
	a.refilter()
	return a.Filtered()
}

// Filtered returns the current filtered view, newest first.
func (a *App) Filtered() []model.LogEntry {
	return append([]model.LogEntry(nil), a.state.Filtered...)
}

// Export writes the filtered view as JSON indented by two spaces.
func (a *App) Export(w io.Writer) error {
	logs := a.state.Filtered
	if logs == nil {
		logs = []model.LogEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(logs); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Report builds the report for month ("YYYY-MM", empty for the current month).
func (a *App) Report(month string) (report.Report, error) {
	year, m, err := report.ParseMonth(month, a.clock())
	if err != nil {
		return report.Report{}, err
	}
	return report.Build(report.Input{
		Year:     year,
		Month:    m,
		Logs:     a.state.Logs,
		Comments: a.state.Comments,
		Catalog:  a.catalog,
		Location: a.loc,
	}), nil
}

func upsert[T any](list []T, v T, id func(T) string) []T {
	out := append([]T(nil), list...)
	for i := range out {
		if id(out[i]) == id(v) {
			out[i] = v
			return out
		}
	}
	return append(out, v)
}
