// Package model defines the record types persisted by the companion.
//
// Records are plain values with JSON tags matching the on-disk blob format.
// Types that need defaults filled in after decoding implement Normalize.
package model

import "time"

// Millis is a Unix timestamp in milliseconds. It serializes as a JSON number.
type Millis int64

// MillisOf converts t to Millis.
func MillisOf(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

// Time converts m back to a time.Time in UTC.
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m)).UTC()
}

// Ptr returns a pointer to a copy of m, for optional fields.
func (m Millis) Ptr() *Millis {
	return &m
}
