package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
)

// runServer starts the HTTP server for the app and blocks until
// shutdown, firing the bootstrap lifecycle stages in their fixed order:
//
//	server.beforeStart → server.nextPrepared → server.fastifyInstanced
//	→ server.onReady → server.onListen
//
// A failed beforeStart hook (or any startup hook) aborts startup: the
// listener is never bound and the error returns to the caller.
func runServer(a *App, addr string, cfg *runConfig) error {
	if addr == "" {
		addr = ":8080"
	}

	logger := cfg.logger
	if logger == nil {
		logger = a.logger
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	baseCtx := cfg.baseCtx
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(baseCtx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Stage 1: before the router exists.
	if _, err := a.hooks.Run(ctx, StageBeforeStart, a.config); err != nil {
		return fmt.Errorf("modkit: %s: %w", StageBeforeStart, err)
	}

	// Build the router, applying the ledger's routes.
	handler, err := a.Handler()
	if err != nil {
		return err
	}

	// Stage 2: router prepared.
	if _, err := a.hooks.Run(ctx, StageRouterPrepared, &routerAdapter{router: a.router, app: a}); err != nil {
		return fmt.Errorf("modkit: %s: %w", StageRouterPrepared, err)
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}

	// Stage 3: server instance exists, listener not yet bound.
	if _, err := a.hooks.Run(ctx, StageServerInstanced, server); err != nil {
		return fmt.Errorf("modkit: %s: %w", StageServerInstanced, err)
	}

	for _, hook := range cfg.startupHooks {
		if err := hook(ctx); err != nil {
			return fmt.Errorf("modkit: startup hook: %w", err)
		}
	}

	// Stage 4: everything prepared, about to accept connections.
	if _, err := a.hooks.Run(ctx, StageOnReady, server); err != nil {
		return fmt.Errorf("modkit: %s: %w", StageOnReady, err)
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return err
	}

	// Stage 5: listener bound. Failures no longer abort; log only.
	if _, err := a.hooks.Run(ctx, StageOnListen, ln.Addr().String()); err != nil {
		logger.Error("onListen hook failed", slog.Any("error", err))
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer shutdownCancel()

	var errs []error

	// 1. Stop accepting requests.
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}

	// 2. Let deferred tasks finish.
	if err := a.tasks.Wait(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("task queue drain: %w", err))
		logger.Error("task queue did not drain before timeout", slog.Any("error", err))
	}

	// 3. Run shutdown hooks (close DB, flush caches, etc.).
	for _, hook := range cfg.shutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			errs = append(errs, err)
			logger.Error("shutdown hook failed", slog.Any("error", err))
		}
	}

	if len(errs) > 0 {
		logger.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}

	logger.Info("shutdown completed")
	return nil
}
