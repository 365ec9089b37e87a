package logger

import (
	"io"
	"log/slog"
	"os"
)

// Output formats supported by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config controls how New builds a logger.
type Config struct {
	// Format selects the handler encoding, FormatText or FormatJSON.
	// Defaults to FormatText.
	Format string

	// Level is the minimum level the logger emits.
	Level slog.Level

	// Output is the destination writer. Defaults to os.Stdout.
	Output io.Writer

	// AddSource attaches the file and line of the call site to each
	// record.
	AddSource bool
}

// New builds a logger from cfg, decorated with the given context
// extractors.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}

	if len(extractors) > 0 {
		handler = NewContextHandler(handler, extractors...)
	}

	return slog.New(handler)
}

// NewNope returns a logger that discards everything. It is the
// default for components that were not given a logger, so they can
// log unconditionally without nil checks.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
