package cache_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modkit/pkg/cache"
)

func TestMemoryGetSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		require.NoError(t, c.Set(ctx, "greeting", "hello", time.Minute))

		v, err := c.Get(ctx, "greeting")
		require.NoError(t, err)
		require.Equal(t, "hello", v)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		_, err := c.Get(ctx, "absent")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("expired entry", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "n", 42, 10*time.Millisecond))
		time.Sleep(30 * time.Millisecond)

		_, err := c.Get(ctx, "n")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithDefaultTTL(time.Millisecond), cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "forever", 1, -1))
		time.Sleep(20 * time.Millisecond)

		v, err := c.Get(ctx, "forever")
		require.NoError(t, err)
		require.Equal(t, 1, v)
	})

	t.Run("closed cache rejects writes", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())

		require.ErrorIs(t, c.Set(ctx, "k", "v", 0), cache.ErrClosed)
	})
}

func TestMemoryLRUEviction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemory[int](cache.WithMaxEntries(2), cache.WithCleanupInterval(0))
	defer c.Close()

	var evicted []string
	c.SetEvictCallback(func(key string, _ int) {
		evicted = append(evicted, key)
	})

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))

	// Touch "a" so "b" becomes the eviction candidate.
	_, err := c.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "c", 3, time.Minute))

	require.Equal(t, []string{"b"}, evicted)

	_, err = c.Get(ctx, "b")
	require.ErrorIs(t, err, cache.ErrNotFound)

	for _, key := range []string{"a", "c"} {
		ok, err := c.Has(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestMemoryDeletePattern(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemory[int](cache.WithCleanupInterval(0))
	defer c.Close()

	for _, key := range []string{"session:1", "session:2", "user:1"} {
		require.NoError(t, c.Set(ctx, key, 1, time.Minute))
	}

	require.NoError(t, c.DeletePattern(ctx, "session:*"))

	for _, key := range []string{"session:1", "session:2"} {
		ok, err := c.Has(ctx, key)
		require.NoError(t, err)
		require.False(t, ok)
	}

	ok, err := c.Has(ctx, "user:1")
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("bad pattern", func(t *testing.T) {
		t.Parallel()

		require.Error(t, c.DeletePattern(ctx, "[unclosed"))
	})
}

func TestMemoryClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemory[int](cache.WithCleanupInterval(0))
	defer c.Close()

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, c.Clear(ctx))

	for _, key := range []string{"a", "b"} {
		_, err := c.Get(ctx, key)
		require.ErrorIs(t, err, cache.ErrNotFound)
	}
}

func TestMemoryLocker(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("single winner", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.TryLock(ctx, "migrate", time.Minute))
		require.ErrorIs(t, c.TryLock(ctx, "migrate", time.Minute), cache.ErrLockHeld)

		require.NoError(t, c.Unlock(ctx, "migrate"))
		require.NoError(t, c.TryLock(ctx, "migrate", time.Minute))
	})

	t.Run("expired lock can be retaken", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.TryLock(ctx, "job", 10*time.Millisecond))
		time.Sleep(30 * time.Millisecond)
		require.NoError(t, c.TryLock(ctx, "job", time.Minute))
	})
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("miss loads and caches", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		defer c.Close()

		var calls atomic.Int32
		load := func(ctx context.Context) (string, time.Duration, error) {
			calls.Add(1)
			return "loaded", time.Minute, nil
		}

		v, err := cache.GetOrSet(ctx, c, "profile", load)
		require.NoError(t, err)
		require.Equal(t, "loaded", v)

		// Second call is served from cache.
		v, err = cache.GetOrSet(ctx, c, "profile", load)
		require.NoError(t, err)
		require.Equal(t, "loaded", v)
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("concurrent misses collapse to one load", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		defer c.Close()

		var calls atomic.Int32
		load := func(ctx context.Context) (string, time.Duration, error) {
			calls.Add(1)
			time.Sleep(20 * time.Millisecond)
			return "expensive", time.Minute, nil
		}

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := cache.GetOrSet(ctx, c, "stampede", load)
				require.NoError(t, err)
				require.Equal(t, "expensive", v)
			}()
		}
		wg.Wait()

		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("load error is not cached", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		defer c.Close()

		_, err := cache.GetOrSet(ctx, c, "flaky", func(ctx context.Context) (string, time.Duration, error) {
			return "", 0, context.DeadlineExceeded
		})
		require.ErrorIs(t, err, context.DeadlineExceeded)

		ok, err := c.Has(ctx, "flaky")
		require.NoError(t, err)
		require.False(t, ok)
	})
}
