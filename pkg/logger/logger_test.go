package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modkit/pkg/logger"
)

type ctxKey string

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{Format: logger.FormatJSON, Output: &buf})
		log.Info("hello", slog.String("key", "value"))

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		require.Equal(t, "hello", record["msg"])
		require.Equal(t, "value", record["key"])
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{Output: &buf, Level: slog.LevelWarn})
		log.Info("dropped")
		require.Zero(t, buf.Len())

		log.Warn("kept")
		require.Contains(t, buf.String(), "kept")
	})

	t.Run("context extractor attaches attributes", func(t *testing.T) {
		t.Parallel()

		extractor := func(ctx context.Context) []slog.Attr {
			id, ok := ctx.Value(ctxKey("request_id")).(string)
			if !ok {
				return nil
			}
			return []slog.Attr{slog.String("request_id", id)}
		}

		var buf bytes.Buffer
		log := logger.New(logger.Config{Format: logger.FormatJSON, Output: &buf}, extractor)

		ctx := context.WithValue(context.Background(), ctxKey("request_id"), "req-123")
		log.InfoContext(ctx, "handled")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		require.Equal(t, "req-123", record["request_id"])
	})

	t.Run("extractor tolerates missing value", func(t *testing.T) {
		t.Parallel()

		extractor := func(ctx context.Context) []slog.Attr { return nil }

		var buf bytes.Buffer
		log := logger.New(logger.Config{Output: &buf}, extractor)
		log.InfoContext(context.Background(), "still works")

		require.Contains(t, buf.String(), "still works")
	})
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	log.Error("discarded")
}

func TestMultiHandler(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	handler := logger.NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(handler)

	log.Info("info only")
	log.Error("everywhere")

	require.Contains(t, a.String(), "info only")
	require.Contains(t, a.String(), "everywhere")
	require.NotContains(t, b.String(), "info only")
	require.Contains(t, b.String(), "everywhere")
}
