package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Option tunes the connection pool and retry behavior.
type Option func(*options)

type options struct {
	poolSize      int
	minIdleConns  int
	connIdleTime  time.Duration
	connLifetime  time.Duration
	retryAttempts int
	retryInterval time.Duration
	readTimeout   time.Duration
	writeTimeout  time.Duration
	dialTimeout   time.Duration
}

func defaultOptions() *options {
	return &options{
		poolSize:      10,
		minIdleConns:  5,
		connIdleTime:  10 * time.Minute,
		connLifetime:  30 * time.Minute,
		retryAttempts: 3,
		retryInterval: 5 * time.Second,
		readTimeout:   3 * time.Second,
		writeTimeout:  3 * time.Second,
		dialTimeout:   5 * time.Second,
	}
}

// WithPoolSize caps the connection pool. Default: 10.
func WithPoolSize(n int) Option {
	return func(o *options) {
		o.poolSize = n
	}
}

// WithMinIdleConns sets how many idle connections stay open. Default: 5.
func WithMinIdleConns(n int) Option {
	return func(o *options) {
		o.minIdleConns = n
	}
}

// WithConnIdleTime sets how long an idle connection may live before
// the pool closes it. Default: 10 minutes.
func WithConnIdleTime(d time.Duration) Option {
	return func(o *options) {
		o.connIdleTime = d
	}
}

// WithConnLifetime caps the total lifetime of a pooled connection.
// Default: 30 minutes.
func WithConnLifetime(d time.Duration) Option {
	return func(o *options) {
		o.connLifetime = d
	}
}

// WithRetry sets the startup retry attempts and the base interval,
// which grows linearly per attempt. Default: 3 attempts, 5 seconds.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// WithReadTimeout sets the per-command read timeout. Default: 3 seconds.
func WithReadTimeout(d time.Duration) Option {
	return func(o *options) {
		o.readTimeout = d
	}
}

// WithWriteTimeout sets the per-command write timeout. Default: 3 seconds.
func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) {
		o.writeTimeout = d
	}
}

// WithDialTimeout sets the timeout for establishing a connection.
// Default: 5 seconds.
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) {
		o.dialTimeout = d
	}
}

// Open connects to the Redis server at url, verifying the connection
// with PING and retrying on failure before giving up.
//
// Example:
//
//	client, err := redis.Open(ctx, "redis://localhost:6379/0",
//	    redis.WithPoolSize(20),
//	)
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrParseURL
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	clientOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrParseURL, err)
	}

	clientOpts.PoolSize = o.poolSize
	clientOpts.MinIdleConns = o.minIdleConns
	clientOpts.ConnMaxIdleTime = o.connIdleTime
	clientOpts.ConnMaxLifetime = o.connLifetime
	clientOpts.ReadTimeout = o.readTimeout
	clientOpts.WriteTimeout = o.writeTimeout
	clientOpts.DialTimeout = o.dialTimeout

	return connect(ctx, clientOpts, o.retryAttempts, o.retryInterval)
}

// connect pings a fresh client per attempt, backing off between
// attempts.
func connect(ctx context.Context, opts *redis.Options, attempts int, interval time.Duration) (redis.UniversalClient, error) {
	attempts = max(attempts, 1)

	for i := range attempts {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		// No backoff after the final attempt.
		if i == attempts-1 {
			break
		}
		if err := sleep(ctx, time.Duration(i+1)*interval); err != nil {
			return nil, errors.Join(ErrConnect, err)
		}
	}

	return nil, ErrConnect
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
