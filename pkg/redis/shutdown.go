package redis

import (
	"context"
	"io"
)

// Shutdown returns a hook that closes the client during graceful
// shutdown.
//
// Example:
//
//	app.Run(addr, modkit.ShutdownHook(redis.Shutdown(client)))
func Shutdown(client io.Closer) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Close()
	}
}
