package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modkit/pkg/redis"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Open(ctx, "")
		require.ErrorIs(t, err, redis.ErrEmptyURL)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Open(ctx, "http://localhost:6379")
		require.ErrorIs(t, err, redis.ErrParseURL)
	})

	t.Run("malformed url", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Open(ctx, "redis://loc alhost:6379/abc")
		require.ErrorIs(t, err, redis.ErrParseURL)
	})

	t.Run("unreachable server exhausts retries", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		_, err := redis.Open(ctx, "redis://127.0.0.1:1/0",
			redis.WithRetry(2, 10*time.Millisecond),
			redis.WithDialTimeout(50*time.Millisecond),
		)
		require.ErrorIs(t, err, redis.ErrConnect)
	})

	t.Run("no backoff after the final attempt", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		// Two attempts with one 200ms backoff between them. A sleep
		// after the final attempt would add 400ms more.
		start := time.Now()
		_, err := redis.Open(ctx, "redis://127.0.0.1:1/0",
			redis.WithRetry(2, 200*time.Millisecond),
			redis.WithDialTimeout(50*time.Millisecond),
		)
		elapsed := time.Since(start)

		require.ErrorIs(t, err, redis.ErrConnect)
		require.Less(t, elapsed, 500*time.Millisecond)
	})
}

func TestHealthcheckNilClient(t *testing.T) {
	t.Parallel()

	err := redis.Healthcheck(nil)(context.Background())
	require.ErrorIs(t, err, redis.ErrHealthcheck)
}
