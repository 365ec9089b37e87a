// Package logger builds slog loggers for the application: a plain
// text or JSON logger for local development, a discard logger for
// tests, and a Sentry-backed logger for production.
//
// Handlers can be decorated with context extractors that pull values
// such as the request ID out of the context and attach them to every
// record, so call sites never have to repeat common attributes.
//
// # Usage
//
//	log := logger.New(logger.Config{
//	    Format: logger.FormatJSON,
//	    Level:  slog.LevelInfo,
//	}, requestIDExtractor)
//
//	log.InfoContext(ctx, "user created", slog.String("user_id", id))
package logger
