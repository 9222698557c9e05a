// Package store is a small key-value store with named collections. Records are
// JSON documents addressed by id; GetAll returns them in first-insertion order.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Collection names.
const (
	Logs     = "logs"
	Comments = "comments"
)

// ErrUnknownDriver is returned by New for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Store is the capability set required from a backend. Each call is its own
// transaction; there is no cross-call locking.
type Store interface {
	GetAll(ctx context.Context, collection string) ([]json.RawMessage, error)
	Put(ctx context.Context, collection, id string, record json.RawMessage) error
	// PutAll upserts records in one write, in order.
	PutAll(ctx context.Context, collection string, records []Record) error
	Delete(ctx context.Context, collection, id string) error
	Close() error
}

// Record is one document addressed by id.
type Record struct {
	ID    string
	Value json.RawMessage
}

// Options selects and configures a backend.
type Options struct {
	Driver string // "file" (default) or "sqlite"
	Path   string // directory for file, database file for sqlite
}

// New opens the backend named by opts.Driver.
func New(opts Options) (Store, error) {
	switch strings.ToLower(opts.Driver) {
	case "", "file":
		return OpenFile(opts.Path)
	case "sqlite":
		return OpenSQLite(opts.Path)
	default:
		return nil, fmt.Errorf("%w %q (supported: file, sqlite)", ErrUnknownDriver, opts.Driver)
	}
}

// BaseDir returns the root data directory. CARETAKER_HOME overrides ~/.caretaker.
func BaseDir() (string, error) {
	if dir := os.Getenv("CARETAKER_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".caretaker"), nil
}

// Load decodes every record of collection into T.
func Load[T any](ctx context.Context, s Store, collection string) ([]T, error) {
	raw, err := s.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, fmt.Errorf("decoding %s record: %w", collection, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Save encodes v and upserts it under id.
func Save(ctx context.Context, s Store, collection, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshalling %s record %q: %w", collection, id, err)
	}
	return s.Put(ctx, collection, id, data)
}

// SaveAll encodes every value and upserts them with a single PutAll.
func SaveAll[T any](ctx context.Context, s Store, collection string, values []T, id func(T) string) error {
	if len(values) == 0 {
		return nil
	}
	records := make([]Record, 0, len(values))
	for _, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshalling %s record %q: %w", collection, id(v), err)
		}
		records = append(records, Record{ID: id(v), Value: data})
	}
	return s.PutAll(ctx, collection, records)
}
