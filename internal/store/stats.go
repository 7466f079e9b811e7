package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string     `json:"db_path"`
	DBSizeBytes int64      `json:"db_size_bytes"`
	TotalKeys   int        `json:"total_keys"`
	TotalBytes  int64      `json:"total_bytes"`
	Keys        []KeyStats `json:"keys"`
}

// KeyStats describes one stored blob.
type KeyStats struct {
	Key       string `json:"key"`
	Bytes     int64  `json:"bytes"`
	UpdatedAt string `json:"updated_at"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: s.path}

	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, LENGTH(value), updated_at
		FROM kv ORDER BY LENGTH(value) DESC, key`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ks KeyStats
		if err := rows.Scan(&ks.Key, &ks.Bytes, &ks.UpdatedAt); err != nil {
			return st, err
		}
		st.TotalKeys++
		st.TotalBytes += ks.Bytes
		st.Keys = append(st.Keys, ks)
	}
	return st, rows.Err()
}
