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

// Singleton is a single settings-like record stored under one key. Stored
// values are decoded over the defaults so fields added later keep their
// default value.
type Singleton[T any] struct {
	mu       sync.Mutex
	kv       store.Store
	key      string
	log      *slog.Logger
	defaults func() T
	value    T
	unsaved  bool
}

// NewSingleton returns a singleton holding defaults(). Call Load before use.
func NewSingleton[T any](kv store.Store, key string, log *slog.Logger, defaults func() T) *Singleton[T] {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if defaults == nil {
		defaults = func() T {
			var zero T
			return zero
		}
	}
	return &Singleton[T]{
		kv:       kv,
		key:      key,
		log:      log.With("key", key),
		defaults: defaults,
		value:    defaults(),
	}
}

// Key returns the storage key.
func (s *Singleton[T]) Key() string {
	return s.key
}

// Load reads the value from storage. A missing key yields the defaults
// without writing them.
func (s *Singleton[T]) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, store.ErrNotFound) {
		s.value = s.defaults()
		return nil
	}
	if err != nil {
		s.log.Error("load failed", "error", err)
		return fmt.Errorf("load %s: %w", s.key, err)
	}

	v, err := s.decode(raw)
	if err != nil {
		s.log.Error("load failed", "error", err)
		return fmt.Errorf("load %s: %w: %v", s.key, ErrCorrupt, err)
	}
	s.value = v
	s.unsaved = false
	return nil
}

// Get returns the current value.
func (s *Singleton[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Unsaved reports whether the last write attempt failed.
func (s *Singleton[T]) Unsaved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsaved
}

// Update applies fn to a copy of the value, writes it, and commits it once
// the write succeeds.
func (s *Singleton[T]) Update(ctx context.Context, fn func(*T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.value
	if err := fn(&staged); err != nil {
		return err
	}
	return s.commit(ctx, staged)
}

// Replace overwrites the value.
func (s *Singleton[T]) Replace(ctx context.Context, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, v)
}

// Restore decodes raw over the defaults and replaces the value with it.
func (s *Singleton[T]) Restore(ctx context.Context, raw []byte) error {
	v, err := s.decode(raw)
	if err != nil {
		return fmt.Errorf("restore %s: %w: %v", s.key, ErrCorrupt, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, v)
}

// Reset returns the in-memory value to its defaults without touching storage.
func (s *Singleton[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = s.defaults()
	s.unsaved = false
}

func (s *Singleton[T]) decode(raw []byte) (T, error) {
	v := s.defaults()
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func (s *Singleton[T]) commit(ctx context.Context, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.kv.Set(ctx, s.key, b); err != nil {
		s.unsaved = true
		s.log.Error("save failed", "error", err)
		return fmt.Errorf("save %s: %w: %w", s.key, ErrUnsaved, err)
	}
	s.value = v
	s.unsaved = false
	return nil
}
