// Package modkit is a modular application kernel for Go web services.
//
// Feature modules extend a host application through four primitives,
// without the host knowing about the modules at compile time:
//
//   - an event bus for fire-and-forget notifications between modules
//   - a hook chain for sequential, value-transforming lifecycle and
//     request stages
//   - a serial task queue for deferred work that must run in order
//   - a deferred registration ledger that collects routes, hooks,
//     listeners, and middleware before the server exists and applies
//     them exactly once at bootstrap
//
// The server fires a fixed sequence of boot stages through the hook
// chain (server.beforeStart, server.nextPrepared,
// server.fastifyInstanced, server.onReady, server.onListen) and two
// per-request stages (app.onRequest, app.onResponse), giving modules
// precise interception points.
//
// # Quick start
//
//	package main
//
//	import (
//	    "log"
//	    "net/http"
//
//	    "github.com/dmitrymomot/modkit"
//	    "github.com/dmitrymomot/modkit/middlewares"
//	)
//
//	type hello struct{}
//
//	func (hello) Routes(r modkit.Router) {
//	    r.GET("/hello/{name}", func(c modkit.Context) error {
//	        return c.String(http.StatusOK, "hello "+c.Param("name"))
//	    })
//	}
//
//	func main() {
//	    app, err := modkit.New(
//	        modkit.WithMiddleware(
//	            middlewares.RequestID(),
//	            middlewares.Recover(),
//	            middlewares.Logging(),
//	        ),
//	        modkit.WithHandlers(hello{}),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := app.Run(":8080"); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// Reusable infrastructure lives under pkg/ (config, cache, db, redis,
// job, health, i18n, logger, and the kernel primitives); framework
// middleware lives in middlewares/.
package modkit
