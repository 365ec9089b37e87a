// Package hookchain provides named-stage sequential transform pipelines.
//
// A stage is an ordered list of handlers. Running a stage threads the
// argument list through every handler: the first handler receives the
// original args, each later handler receives what the previous one
// returned, and Run returns the final result.
//
//	chain := hookchain.New()
//	chain.Register("server.beforeStart", func(ctx context.Context, args []any) ([]any, error) {
//	    cfg := args[0].(*Config)
//	    cfg.Ready = true
//	    return []any{cfg}, nil
//	})
//	out, err := chain.Run(ctx, "server.beforeStart", cfg)
//
// Unlike package eventbus, handler failures are not swallowed: an error
// aborts the stage at that handler and propagates to the caller, which is
// the right behavior for lifecycle stages where continuing after a failed
// hook would serve a half-initialized application.
//
// Running a stage nobody registered for returns the input unchanged.
package hookchain
