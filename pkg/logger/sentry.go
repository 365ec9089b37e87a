package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration settings.
type SentryConfig struct {
	// DSN is the Sentry project DSN. Empty disables the integration.
	DSN string

	// Environment tags every event, e.g. "production" or "staging".
	Environment string

	// MinLevel is the lowest level shipped as a Sentry log entry.
	// Errors always become Sentry issues regardless of this setting.
	MinLevel slog.Level
}

// NewWithSentry builds a logger writing JSON to stdout and shipping
// warnings and errors to Sentry. An empty DSN or a failed Sentry init
// degrades to stdout-only logging instead of failing startup.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	if cfg.DSN == "" {
		return slog.New(NewContextHandler(stdout, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdout).Error("sentry init failed", slog.Any("error", err))
		return slog.New(NewContextHandler(stdout, extractors...))
	}

	logLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel >= slog.LevelError {
		logLevels = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background())

	combined := NewMultiHandler(stdout, sentryHandler)
	return slog.New(NewContextHandler(combined, extractors...))
}
