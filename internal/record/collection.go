// Package record implements the Record Store: a named collection loaded whole
// from a key-value store, held in memory, and written back whole on every change.
package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rcliao/companion/internal/store"
)

var (
	// ErrUnsaved is returned when a mutation could not be written. The
	// in-memory collection keeps its last durable state.
	ErrUnsaved = errors.New("changes not saved")

	// ErrCorrupt is returned when a stored blob cannot be decoded.
	ErrCorrupt = errors.New("stored data is malformed")
)

// normalizer is implemented by record types that fill defaults after decoding.
type normalizer interface {
	Normalize()
}

// Collection is an ordered list of records of one type stored under one key.
// All methods are safe for concurrent use; mutations are serialized.
type Collection[T any] struct {
	mu      sync.Mutex
	kv      store.Store
	key     string
	log     *slog.Logger
	seed    func() []T
	items   []T
	unsaved bool
}

// NewCollection returns an empty collection bound to key. Call Load before use.
func NewCollection[T any](kv store.Store, key string, log *slog.Logger) *Collection[T] {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Collection[T]{
		kv:    kv,
		key:   key,
		log:   log.With("key", key),
		items: []T{},
	}
}

// WithSeed installs records used when the key has never been written.
func (c *Collection[T]) WithSeed(seed func() []T) *Collection[T] {
	c.seed = seed
	return c
}

// Key returns the storage key.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load reads the collection from storage. A missing key yields the seed (written
// back once) or an empty collection. A read or decode failure is logged and
// leaves the in-memory collection unchanged.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := c.kv.Get(ctx, c.key)
	if errors.Is(err, store.ErrNotFound) {
		c.items = []T{}
		if c.seed != nil {
			seeded := c.seed()
			if err := c.write(ctx, seeded); err != nil {
				c.log.Warn("seed not saved", "error", err)
				c.unsaved = true
			}
			c.items = seeded
		}
		return nil
	}
	if err != nil {
		c.log.Error("load failed", "error", err)
		return fmt.Errorf("load %s: %w", c.key, err)
	}

	items, err := decodeList[T](raw)
	if err != nil {
		c.log.Error("load failed", "error", err)
		return fmt.Errorf("load %s: %w: %v", c.key, ErrCorrupt, err)
	}
	c.items = items
	c.unsaved = false
	return nil
}

// All returns a deep copy of the records in stored order.
func (c *Collection[T]) All() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneList(c.items)
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Find returns a copy of the first record matching pred.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	for _, it := range c.All() {
		if pred(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Unsaved reports whether the last write attempt failed.
func (c *Collection[T]) Unsaved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unsaved
}

// Mutate stages a new collection from fn, writes it, and commits it in memory
// only once the write succeeds. An error returned by fn aborts without writing.
func (c *Collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	staged, err := fn(cloneList(c.items))
	if err != nil {
		return err
	}
	if staged == nil {
		staged = []T{}
	}
	return c.commit(ctx, staged)
}

// Replace overwrites the whole collection.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	return c.Mutate(ctx, func([]T) ([]T, error) {
		return cloneList(items), nil
	})
}

// Restore decodes raw, normalizes it, and replaces the collection with it.
func (c *Collection[T]) Restore(ctx context.Context, raw []byte) error {
	items, err := decodeList[T](raw)
	if err != nil {
		return fmt.Errorf("restore %s: %w: %v", c.key, ErrCorrupt, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commit(ctx, items)
}

// Reset empties the in-memory collection without touching storage.
func (c *Collection[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = []T{}
	c.unsaved = false
}

func (c *Collection[T]) commit(ctx context.Context, staged []T) error {
	if err := c.write(ctx, staged); err != nil {
		c.unsaved = true
		c.log.Error("save failed", "error", err)
		return fmt.Errorf("save %s: %w: %w", c.key, ErrUnsaved, err)
	}
	// Mutation callbacks may still hold records that share slices with staged.
	c.items = cloneList(staged)
	c.unsaved = false
	return nil
}

func (c *Collection[T]) write(ctx context.Context, items []T) error {
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return c.kv.Set(ctx, c.key, b)
}

func decodeList[T any](raw []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	for i := range items {
		if n, ok := any(&items[i]).(normalizer); ok {
			n.Normalize()
		}
	}
	return items, nil
}

// cloneList deep-copies through JSON so nested slices are never shared.
func cloneList[T any](items []T) []T {
	b, err := json.Marshal(items)
	if err != nil {
		panic(fmt.Sprintf("record: clone: %v", err))
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		panic(fmt.Sprintf("record: clone: %v", err))
	}
	if out == nil {
		out = []T{}
	}
	return out
}
