// Package redis opens and manages go-redis clients for the
// application: URL-based connection setup with pool tuning and
// startup retry, a readiness probe for the health endpoints, and a
// shutdown hook for graceful teardown.
//
// # Usage
//
//	client, err := redis.Open(ctx, cfg.Get("redis.url"),
//	    redis.WithPoolSize(20),
//	)
//	if err != nil {
//	    return err
//	}
//
//	app.Run(addr,
//	    modkit.ShutdownHook(redis.Shutdown(client)),
//	)
//
// Both redis:// and rediss:// (TLS) URLs are accepted.
package redis
