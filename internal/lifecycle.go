package internal

// Lifecycle stage names fired through the hook chain at fixed points of
// the server bootstrap and request cycle. The string values are the
// integration contract with feature modules and must not change.
const (
	// StageBeforeStart runs before the router is built. A handler error
	// here aborts startup entirely.
	StageBeforeStart = "server.beforeStart"

	// StageRouterPrepared runs after the router exists and every ledger
	// route has been applied to it.
	StageRouterPrepared = "server.nextPrepared"

	// StageServerInstanced runs after the http.Server is constructed but
	// before the listener is bound.
	StageServerInstanced = "server.fastifyInstanced"

	// StageOnReady runs after startup hooks complete, immediately before
	// the server begins accepting connections.
	StageOnReady = "server.onReady"

	// StageOnListen runs once the listener is bound, with the resolved
	// address as the first argument.
	StageOnListen = "server.onListen"

	// StageOnRequest runs at the start of every dispatched request.
	// A handler error aborts dispatch and surfaces via the error handler.
	StageOnRequest = "app.onRequest"

	// StageOnResponse runs after the handler returns, whether or not the
	// response has been written. Errors here are logged, not surfaced.
	StageOnResponse = "app.onResponse"
)

// bootStages are the startup stages in firing order, kept together so
// tests can assert the sequence.
var bootStages = []string{
	StageBeforeStart,
	StageRouterPrepared,
	StageServerInstanced,
	StageOnReady,
	StageOnListen,
}
