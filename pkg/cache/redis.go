package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a cache backed by a Redis server. Values pass through the
// configured Marshaler (JSON unless overridden).
type Redis[V any] struct {
	client    redis.UniversalClient
	opts      *redisOptions
	marshaler Marshaler[V]
}

// NewRedis creates a Redis-backed cache on an existing client,
// typically from pkg/redis.Open. Pass a nil Marshaler for JSON.
//
// Example:
//
//	c := cache.NewRedis[Session](client, nil,
//	    cache.WithPrefix("sessions"),
//	    cache.WithRedisDefaultTTL(30 * time.Minute),
//	)
func NewRedis[V any](client redis.UniversalClient, m Marshaler[V], opts ...RedisOption) *Redis[V] {
	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}
	if m == nil {
		m = jsonMarshaler[V]{}
	}

	return &Redis[V]{client: client, opts: o, marshaler: m}
}

// Get returns the value for key, or ErrNotFound when absent.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.Get(ctx, r.fullKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, err
	}

	return r.marshaler.Unmarshal(data)
}

// Set stores value under key. A negative TTL maps to no expiry, which
// Redis expresses as TTL zero.
func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return err
	}

	if ttl == 0 {
		ttl = r.opts.defaultTTL
	}

	return r.client.Set(ctx, r.fullKey(key), data, max(ttl, 0)).Err()
}

// Has reports whether key exists.
func (r *Redis[V]) Has(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.fullKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes key.
func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.fullKey(key)).Err()
}

// DeletePattern removes every key matching the glob pattern using
// cursor-based SCAN, which does not block the server.
func (r *Redis[V]) DeletePattern(ctx context.Context, pattern string) error {
	return r.scanDelete(ctx, r.fullKey(pattern))
}

// Clear removes every entry. With a prefix configured only prefixed
// keys are scanned out; without one the whole database is flushed.
func (r *Redis[V]) Clear(ctx context.Context) error {
	if r.opts.prefix == "" {
		return r.client.FlushDB(ctx).Err()
	}
	return r.scanDelete(ctx, r.opts.prefix+":*")
}

// TryLock acquires a named lock via SET NX. ErrLockHeld means someone
// else holds it.
func (r *Redis[V]) TryLock(ctx context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.opts.defaultTTL
	}

	ok, err := r.client.SetNX(ctx, r.lockKey(key), 1, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrLockHeld
	}
	return nil
}

// Unlock releases a named lock.
func (r *Redis[V]) Unlock(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.lockKey(key)).Err()
}

// Close is a no-op; the client lifecycle belongs to the caller.
func (r *Redis[V]) Close() error {
	return nil
}

func (r *Redis[V]) fullKey(key string) string {
	if r.opts.prefix == "" {
		return key
	}
	return r.opts.prefix + ":" + key
}

func (r *Redis[V]) lockKey(key string) string {
	return r.fullKey("lock:" + key)
}

func (r *Redis[V]) scanDelete(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

var (
	_ Cache[any] = (*Redis[any])(nil)
	_ Locker     = (*Redis[any])(nil)
)
