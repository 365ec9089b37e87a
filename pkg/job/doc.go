// Package job enqueues durable background jobs into River, the
// Postgres-backed job queue. The client here is insert-only: jobs are
// dispatched from the web process and executed by separate worker
// processes.
//
// Every job is stored under a single River kind carrying the task
// name and a JSON payload, so workers route on the task name rather
// than on per-task argument types.
//
// # Usage
//
//	enq, err := job.NewEnqueuer(pool)
//	if err != nil {
//	    return err
//	}
//
//	err = enq.Enqueue(ctx, "send_welcome_email", WelcomeEmail{UserID: id},
//	    job.InQueue("email"),
//	    job.MaxAttempts(3),
//	)
//
// EnqueueTx inserts inside an open transaction, so the job becomes
// visible only when the surrounding database changes commit.
package job
