// Package snapshot locates the authoritative log snapshot among an ordered
// list of candidate sources.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Tiliavir/caretaker-log/internal/model"
)

// Failure kinds recorded for a rejected candidate.
var (
	ErrUnreachable = errors.New("snapshot unreachable")
	ErrStatus      = errors.New("snapshot request not OK")
	ErrEmpty       = errors.New("snapshot empty")
	ErrMalformed   = errors.New("snapshot malformed")
)

// Attempt records why a candidate was skipped.
type Attempt struct {
	Source string
	Err    error
}

// Result is the outcome of Probe. Source is empty when no candidate yielded data.
type Result struct {
	Source   string
	Entries  []model.LogEntry
	Attempts []Attempt
}

// Found reports whether a candidate was selected.
func (r Result) Found() bool { return r.Source != "" }

// Probe tries sources in order and returns the first that yields a parseable,
// non-empty JSON array of log entries. Failures are logged and skipped; Probe
// itself never fails.
func Probe(ctx context.Context, sources []Source, logger *zap.Logger) Result {
	if logger == nil {
		logger = zap.NewNop()
	}
	var res Result
	for _, src := range sources {
		if ctx.Err() != nil {
			res.Attempts = append(res.Attempts, Attempt{Source: src.Name(), Err: fmt.Errorf("%w: %v", ErrUnreachable, ctx.Err())})
			continue
		}
		entries, err := load(ctx, src)
		if err != nil {
			res.Attempts = append(res.Attempts, Attempt{Source: src.Name(), Err: err})
			if errors.Is(err, ErrMalformed) {
				logger.Warn("snapshot found but invalid", zap.String("source", src.Name()), zap.Error(err))
			} else {
				logger.Debug("snapshot candidate skipped", zap.String("source", src.Name()), zap.Error(err))
			}
			continue
		}
		logger.Info("loaded snapshot", zap.String("source", src.Name()), zap.Int("entries", len(entries)))
		res.Source = src.Name()
		res.Entries = entries
		return res
	}
	return res
}

func load(ctx context.Context, src Source) ([]model.LogEntry, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if data[0] != '[' {
		return nil, fmt.Errorf("%w: not a JSON array", ErrMalformed)
	}
	var entries []model.LogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	return entries, nil
}
