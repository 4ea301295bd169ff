package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore() (*InMemoryIdempotencyStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := NewInMemoryIdempotencyStore()
	store.now = clock.Now
	store.lastSweep = clock.Now()
	return store, clock
}

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	ctx := context.Background()

	t.Run("claims a new key", func(t *testing.T) {
		store, _ := newTestStore()
		defer store.Close()

		isNew, err := store.MarkProcessed(ctx, "req-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)
	})

	t.Run("rejects a held key", func(t *testing.T) {
		store, _ := newTestStore()
		defer store.Close()

		isNew, err := store.MarkProcessed(ctx, "req-2", time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)

		isNew, err = store.MarkProcessed(ctx, "req-2", time.Hour)
		require.NoError(t, err)
		assert.False(t, isNew)
	})

	t.Run("reclaims after expiry", func(t *testing.T) {
		store, clock := newTestStore()
		defer store.Close()

		_, err := store.MarkProcessed(ctx, "req-3", time.Minute)
		require.NoError(t, err)

		clock.Advance(time.Minute)

		isNew, err := store.MarkProcessed(ctx, "req-3", time.Minute)
		require.NoError(t, err)
		assert.True(t, isNew)
	})

	t.Run("fails after close", func(t *testing.T) {
		store, _ := newTestStore()
		require.NoError(t, store.Close())

		_, err := store.MarkProcessed(ctx, "req-4", time.Minute)
		assert.ErrorIs(t, err, ErrStoreClosed)
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	store, clock := newTestStore()
	defer store.Close()
	ctx := context.Background()

	held, err := store.IsProcessed(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, held)

	_, err = store.MarkProcessed(ctx, "req-1", time.Minute)
	require.NoError(t, err)

	held, err = store.IsProcessed(ctx, "req-1")
	require.NoError(t, err)
	assert.True(t, held)

	clock.Advance(2 * time.Minute)
	held, err = store.IsProcessed(ctx, "req-1")
	require.NoError(t, err)
	assert.False(t, held)
}

func TestInMemoryIdempotencyStore_Release(t *testing.T) {
	store, _ := newTestStore()
	defer store.Close()
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "req-1", time.Hour)
	require.NoError(t, err)

	require.NoError(t, store.Release(ctx, "req-1"))

	held, err := store.IsProcessed(ctx, "req-1")
	require.NoError(t, err)
	assert.False(t, held)

	isNew, err := store.MarkProcessed(ctx, "req-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, isNew, "a released key can be claimed again")

	assert.NoError(t, store.Release(ctx, "never-claimed"))
}

func TestInMemoryIdempotencyStore_Size(t *testing.T) {
	store, _ := newTestStore()
	defer store.Close()
	ctx := context.Background()

	assert.Equal(t, 0, store.Size())

	_, _ = store.MarkProcessed(ctx, "req-1", time.Hour)
	assert.Equal(t, 1, store.Size())

	_, _ = store.MarkProcessed(ctx, "req-2", time.Hour)
	assert.Equal(t, 2, store.Size())

	_, _ = store.MarkProcessed(ctx, "req-1", time.Hour)
	assert.Equal(t, 2, store.Size())
}

func TestInMemoryIdempotencyStore_Sweep(t *testing.T) {
	store, clock := newTestStore()
	defer store.Close()
	ctx := context.Background()

	_, _ = store.MarkProcessed(ctx, "short-1", time.Minute)
	_, _ = store.MarkProcessed(ctx, "short-2", time.Minute)
	_, _ = store.MarkProcessed(ctx, "long", time.Hour)
	assert.Equal(t, 3, store.Size())

	clock.Advance(2 * time.Minute)
	_, _ = store.MarkProcessed(ctx, "trigger", time.Hour)
	assert.Equal(t, 4, store.Size(), "no sweep before the interval elapses")

	clock.Advance(defaultSweepInterval)
	_, _ = store.MarkProcessed(ctx, "trigger-2", time.Hour)
	assert.Equal(t, 3, store.Size())

	held, err := store.IsProcessed(ctx, "long")
	require.NoError(t, err)
	assert.True(t, held)
}

func TestInMemoryIdempotencyStore_ConcurrentAccess(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()
	const workers = 100

	results := make(chan bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			isNew, err := store.MarkProcessed(ctx, "same-request", time.Hour)
			results <- err == nil && isNew
		}()
	}
	wg.Wait()
	close(results)

	claimed := 0
	for ok := range results {
		if ok {
			claimed++
		}
	}
	assert.Equal(t, 1, claimed, "exactly one caller claims the key")
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
	assert.Equal(t, 0, store.Size())
}
