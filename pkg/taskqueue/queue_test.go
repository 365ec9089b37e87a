package taskqueue_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modkit/pkg/taskqueue"
)

func waitIdle(t *testing.T, q *taskqueue.Queue) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, q.Wait(ctx))
}

func TestQueue_Enqueue(t *testing.T) {
	t.Parallel()

	t.Run("runs tasks in FIFO order without overlap", func(t *testing.T) {
		t.Parallel()

		q := taskqueue.New()
		var (
			mu      sync.Mutex
			order   []int
			running bool
		)

		for i := range 10 {
			q.Enqueue(func(_ context.Context) error {
				mu.Lock()
				require.False(t, running, "tasks must not overlap")
				running = true
				order = append(order, i)
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				running = false
				mu.Unlock()
				return nil
			})
		}

		waitIdle(t, q)

		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
	})

	t.Run("reentrant enqueue is picked up by the same drain loop", func(t *testing.T) {
		t.Parallel()

		q := taskqueue.New()
		var (
			mu    sync.Mutex
			order []string
		)
		record := func(name string) {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}

		q.Enqueue(func(_ context.Context) error {
			record("outer")
			q.Enqueue(func(_ context.Context) error {
				record("inner")
				return nil
			})
			return nil
		})
		q.Enqueue(func(_ context.Context) error {
			record("second")
			return nil
		})

		waitIdle(t, q)

		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, []string{"outer", "second", "inner"}, order)
	})

	t.Run("failing task does not stop later tasks", func(t *testing.T) {
		t.Parallel()

		q := taskqueue.New()
		var ran bool

		q.Enqueue(func(_ context.Context) error {
			return errors.New("task failed")
		})
		q.Enqueue(func(_ context.Context) error {
			panic("task panicked")
		})
		q.Enqueue(func(_ context.Context) error {
			ran = true
			return nil
		})

		waitIdle(t, q)
		require.True(t, ran)
	})

	t.Run("nil task is ignored", func(t *testing.T) {
		t.Parallel()

		q := taskqueue.New()
		q.Enqueue(nil)
		require.Zero(t, q.Len())
		waitIdle(t, q)
	})

	t.Run("queue is reusable after going idle", func(t *testing.T) {
		t.Parallel()

		q := taskqueue.New()
		var count int

		q.Enqueue(func(_ context.Context) error { count++; return nil })
		waitIdle(t, q)

		q.Enqueue(func(_ context.Context) error { count++; return nil })
		waitIdle(t, q)

		require.Equal(t, 2, count)
	})
}

func TestQueue_Wait(t *testing.T) {
	t.Parallel()

	t.Run("returns immediately when idle", func(t *testing.T) {
		t.Parallel()

		q := taskqueue.New()
		require.NoError(t, q.Wait(context.Background()))
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		t.Parallel()

		q := taskqueue.New()
		release := make(chan struct{})
		q.Enqueue(func(_ context.Context) error {
			<-release
			return nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		require.ErrorIs(t, q.Wait(ctx), context.DeadlineExceeded)

		close(release)
		waitIdle(t, q)
	})
}
