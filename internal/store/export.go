package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Snapshot reads the given keys and returns their parsed JSON values.
// Keys that were never written are skipped. A nil keys slice snapshots
// every stored key.
func Snapshot(ctx context.Context, s Store, keys []string) (map[string]json.RawMessage, error) {
	if keys == nil {
		all, err := s.Keys(ctx)
		if err != nil {
			return nil, err
		}
		keys = all
	}

	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		b, err := s.Get(ctx, k)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !json.Valid(b) {
			return nil, fmt.Errorf("snapshot %s: stored value is not valid JSON", k)
		}
		out[k] = json.RawMessage(b)
	}
	return out, nil
}
