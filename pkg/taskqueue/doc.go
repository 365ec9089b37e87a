// Package taskqueue provides an unbounded FIFO queue of deferred tasks
// with a single active drain loop.
//
// Enqueue appends a task and returns immediately; if no drain loop is
// running one is started, otherwise the running loop picks the task up.
// Tasks execute one at a time in strict enqueue order, so a queue doubles
// as a serialization point for work that must not overlap:
//
//	q := taskqueue.New(taskqueue.WithLogger(log))
//	q.Enqueue(func(ctx context.Context) error {
//	    return index.Rebuild(ctx)
//	})
//
// A failing or panicking task is logged and the loop moves on; one bad
// task never wedges the queue. The enqueuer receives no failure signal;
// a task that needs to report back must close over its own channel or
// promise-like result.
//
// Strict serialization is a deliberate ordering trade-off, not a
// throughput feature: one slow task delays everything behind it.
package taskqueue
