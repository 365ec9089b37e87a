package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modkit/pkg/health"
)

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp health.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, health.StatusOK, resp.Status)
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	t.Run("no checks behaves like liveness", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		health.ReadinessHandler(nil)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("all checks pass", func(t *testing.T) {
		t.Parallel()

		checks := health.Checks{
			"db":    func(ctx context.Context) error { return nil },
			"cache": func(ctx context.Context) error { return nil },
		}

		rec := httptest.NewRecorder()
		health.ReadinessHandler(checks)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp health.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, health.StatusOK, resp.Status)
		require.Len(t, resp.Checks, 2)
	})

	t.Run("one failing check degrades the response", func(t *testing.T) {
		t.Parallel()

		checks := health.Checks{
			"db":    func(ctx context.Context) error { return nil },
			"cache": func(ctx context.Context) error { return errors.New("connection refused") },
		}

		rec := httptest.NewRecorder()
		health.ReadinessHandler(checks)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp health.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, health.StatusFail, resp.Status)

		for _, check := range resp.Checks {
			if check.Name == "cache" {
				require.Equal(t, health.StatusFail, check.Status)
				require.Contains(t, check.Error, "connection refused")
			}
		}
	})

	t.Run("panicking check is contained", func(t *testing.T) {
		t.Parallel()

		checks := health.Checks{
			"broken": func(ctx context.Context) error { panic("boom") },
		}

		rec := httptest.NewRecorder()
		health.ReadinessHandler(checks)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
