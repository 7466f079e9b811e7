package companion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/rcliao/companion/internal/store"
)

// ImportReport lists what an import did with each key.
type ImportReport struct {
	Restored []string          `json:"restored"`
	Unknown  []string          `json:"unknown,omitempty"`
	Skipped  []string          `json:"skipped,omitempty"`
	Failed   map[string]string `json:"failed,omitempty"`
}

// Export returns every stored collection as one pretty-printed JSON object
// keyed by storage key. Collections never written are left out.
func (a *App) Export(ctx context.Context) ([]byte, error) {
	snap, err := store.Snapshot(ctx, a.kv, a.Keys())
	if err != nil {
		a.log.Error("export failed", "error", err)
		return nil, fmt.Errorf("export: %w", err)
	}
	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return out, nil
}

// Import restores collections from an export. Keys from older backups are
// mapped to their current names. Each value replaces its whole collection.
// Unknown keys and null values are skipped and reported.
func (a *App) Import(ctx context.Context, data []byte) (ImportReport, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return ImportReport{}, fmt.Errorf("%w: import document must be a JSON object: %v", ErrInvalid, err)
	}

	names := make([]string, 0, len(doc))
	for k := range doc {
		names = append(names, k)
	}
	sort.Strings(names)

	report := ImportReport{Restored: []string{}}
	var errs []error
	for _, name := range names {
		key, ok := a.canonicalKey(name)
		if !ok {
			report.Unknown = append(report.Unknown, name)
			continue
		}
		if bytes.Equal(bytes.TrimSpace(doc[name]), []byte("null")) {
			report.Skipped = append(report.Skipped, name)
			continue
		}
		s, _ := a.store(key)
		if err := s.Restore(ctx, doc[name]); err != nil {
			if report.Failed == nil {
				report.Failed = map[string]string{}
			}
			report.Failed[name] = err.Error()
			errs = append(errs, err)
			continue
		}
		report.Restored = append(report.Restored, key)
	}
	if len(report.Unknown) > 0 {
		a.log.Warn("import skipped unknown keys", "keys", report.Unknown)
	}
	if len(report.Skipped) > 0 {
		a.log.Warn("import skipped null values", "keys", report.Skipped)
	}
	return report, errors.Join(errs...)
}

// ClearAll deletes every stored key and empties the session. Seeds return
// on the next Load.
func (a *App) ClearAll(ctx context.Context) error {
	if err := a.kv.Clear(ctx); err != nil {
		a.log.Error("clear failed", "error", err)
		return fmt.Errorf("clear all: %w", err)
	}
	for _, s := range a.stores() {
		s.Reset()
	}
	return nil
}
