package cache

import (
	"context"
	"sync"
	"time"

	"github.com/bizops/ledger/internal/domain/shared"
)

const defaultSweepInterval = 5 * time.Minute

type entry struct {
	expiresAt time.Time
}

// InMemoryIdempotencyStore implements IdempotencyStore using an in-memory map.
// Keys are not shared between processes, so it only fits single-instance
// deployments and tests.
//
// Expired keys are swept lazily during MarkProcessed at most once per sweep
// interval; the store never starts goroutines.
type InMemoryIdempotencyStore struct {
	mu            sync.Mutex
	entries       map[string]entry
	sweepInterval time.Duration
	lastSweep     time.Time
	now           func() time.Time
	closed        bool
}

// NewInMemoryIdempotencyStore creates a new in-memory idempotency store
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{
		entries:       make(map[string]entry),
		sweepInterval: defaultSweepInterval,
		lastSweep:     time.Now(),
		now:           time.Now,
	}
}

// MarkProcessed claims key for ttl.
// Returns true if the key was newly claimed, false if it is still held.
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrStoreClosed
	}

	now := s.now()
	if now.Sub(s.lastSweep) >= s.sweepInterval {
		s.sweep(now)
	}

	if e, exists := s.entries[key]; exists && now.Before(e.expiresAt) {
		return false, nil
	}
	s.entries[key] = entry{expiresAt: now.Add(ttl)}
	return true, nil
}

// IsProcessed checks if key is currently held
func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[key]
	if !exists {
		return false, nil
	}
	return s.now().Before(e.expiresAt), nil
}

// Release drops key. Releasing an unknown key is not an error.
func (s *InMemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Close drops all keys. Safe to call multiple times.
func (s *InMemoryIdempotencyStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.entries = make(map[string]entry)
	return nil
}

// Size returns the number of stored keys, expired ones included
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// caller holds s.mu
func (s *InMemoryIdempotencyStore) sweep(now time.Time) {
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
		}
	}
	s.lastSweep = now
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
