// Package merge reconciles locally stored log entries with the external snapshot.
package merge

import "github.com/Tiliavir/caretaker-log/internal/model"

// Merge returns local overlaid with external, keyed by id. External records
// always win and are tagged with model.SourceReport; local-only records are
// kept unchanged. The result lists local ids in their original order followed
// by external-only ids in snapshot order.
func Merge(local, external []model.LogEntry) []model.LogEntry {
	index := make(map[string]int, len(local)+len(external))
	out := make([]model.LogEntry, 0, len(local)+len(external))

	for _, e := range local {
		if i, ok := index[e.ID]; ok {
			out[i] = e
			continue
		}
		index[e.ID] = len(out)
		out = append(out, e)
	}
	for _, e := range external {
		e.Source = model.SourceReport
		if i, ok := index[e.ID]; ok {
			out[i] = e
			continue
		}
		index[e.ID] = len(out)
		out = append(out, e)
	}
	return out
}
