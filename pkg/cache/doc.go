// Package cache provides a generic key-value cache with TTL support,
// backed either by process memory or by Redis.
//
// Both backends implement the same Cache interface, so modules can be
// handed a cache without knowing where it lives. The in-memory backend
// keeps an LRU list and a background reaper for expired entries; the
// Redis backend serializes values through a pluggable Marshaler
// (JSON by default) and deletes key patterns with non-blocking SCAN.
//
// Both backends also implement Locker, a minimal distributed-lock
// surface for "only one worker does this" coordination.
//
// # Usage
//
//	c := cache.NewMemory[Profile](
//	    cache.WithDefaultTTL(10 * time.Minute),
//	    cache.WithMaxEntries(5000),
//	)
//	defer c.Close()
//
//	profile, err := cache.GetOrSet(ctx, c, "profile:"+id,
//	    func(ctx context.Context) (Profile, time.Duration, error) {
//	        p, err := repo.Load(ctx, id)
//	        return p, 10 * time.Minute, err
//	    })
//
// GetOrSet deduplicates concurrent misses for the same key, so a cold
// key under load triggers exactly one load.
package cache
