package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// record is one stored document inside a collection file.
type record struct {
	ID    string          `json:"id"`
	Value json.RawMessage `json:"value"`
}

// collectionFile is the top-level structure of <dir>/<collection>.json.
type collectionFile struct {
	Collection string   `json:"collection"`
	Records    []record `json:"records"`
}

// FileStore keeps each collection in a human-readable JSON file.
type FileStore struct {
	dir string
}

// OpenFile returns a FileStore rooted at dir, creating the directory.
func OpenFile(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := BaseDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "data")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating directories: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// load reads a collection file. A missing file is an empty collection.
func (s *FileStore) load(collection string) (collectionFile, error) {
	path := s.path(collection)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return collectionFile{Collection: collection, Records: []record{}}, nil
	}
	if err != nil {
		return collectionFile{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var cf collectionFile
	if err := json.Unmarshal(data, &cf); err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return collectionFile{}, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return cf, nil
}

// save atomically replaces a collection file.
func (s *FileStore) save(cf collectionFile) error {
	data, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling JSON: %w", err)
	}
	path := s.path(cf.Collection)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// GetAll returns every record of the collection in insertion order.
func (s *FileStore) GetAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cf, err := s.load(collection)
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, len(cf.Records))
	for i, r := range cf.Records {
		out[i] = r.Value
	}
	return out, nil
}

// Put replaces the record with the same id or appends a new one.
func (s *FileStore) Put(ctx context.Context, collection, id string, value json.RawMessage) error {
	return s.PutAll(ctx, collection, []Record{{ID: id, Value: value}})
}

// PutAll reads the collection file once, upserts every record and rewrites
// the file once. The file is left untouched when no record changes.
func (s *FileStore) PutAll(ctx context.Context, collection string, records []Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cf, err := s.load(collection)
	if err != nil {
		return err
	}
	index := make(map[string]int, len(cf.Records))
	for i, r := range cf.Records {
		index[r.ID] = i
	}
	changed := false
	for _, r := range records {
		if i, ok := index[r.ID]; ok {
			if sameJSON(cf.Records[i].Value, r.Value) {
				continue
			}
			cf.Records[i].Value = r.Value
		} else {
			index[r.ID] = len(cf.Records)
			cf.Records = append(cf.Records, record{ID: r.ID, Value: r.Value})
		}
		changed = true
	}
	if !changed {
		return nil
	}
	return s.save(cf)
}

// sameJSON compares two documents ignoring insignificant whitespace; stored
// values come back indented.
func sameJSON(a, b json.RawMessage) bool {
	var ca, cb bytes.Buffer
	if json.Compact(&ca, a) != nil || json.Compact(&cb, b) != nil {
		return false
	}
	return bytes.Equal(ca.Bytes(), cb.Bytes())
}

// Delete removes the record with id. Deleting a missing id is not an error.
func (s *FileStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cf, err := s.load(collection)
	if err != nil {
		return err
	}
	kept := cf.Records[:0]
	for _, r := range cf.Records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(cf.Records) {
		return nil
	}
	cf.Records = kept
	return s.save(cf)
}

// Close is a no-op; every call opens and closes its own file.
func (s *FileStore) Close() error { return nil }
