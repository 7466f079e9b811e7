package record

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Clock returns the current time. Tests inject a fixed or stepping clock.
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// IDs mints record identifiers derived from the creation timestamp.
type IDs struct {
	mu      sync.Mutex
	clock   Clock
	entropy *ulid.MonotonicEntropy
}

// NewIDs returns an id source on clock. A nil clock uses SystemClock.
func NewIDs(clock Clock) *IDs {
	if clock == nil {
		clock = SystemClock
	}
	return &IDs{
		clock:   clock,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

// New returns a fresh ULID string. Ids minted within the same millisecond
// are still strictly increasing.
func (g *IDs) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.clock()), g.entropy).String()
}
