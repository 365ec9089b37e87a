// Package health provides liveness and readiness HTTP handlers for
// the application's health endpoints.
//
// Liveness reports whether the process is running at all and never
// depends on external systems. Readiness runs the registered checks
// (database, cache, job queue) in parallel and reports 503 when any
// of them fails, so load balancers stop routing traffic before the
// dependency outage turns into request errors.
//
// # Usage
//
//	checks := health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	    "redis":    redis.Healthcheck(client),
//	}
//
//	mux.Get("/health/live", health.LivenessHandler())
//	mux.Get("/health/ready", health.ReadinessHandler(checks))
package health
