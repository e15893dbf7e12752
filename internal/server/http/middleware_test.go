package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarnet/research-network-service/internal/observability"
)

func TestCorrelationIDMiddleware(t *testing.T) {
	s := testServer(t)

	t.Run("echoes provided correlation ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("X-Correlation-ID", "corr-123")
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)

		assert.Equal(t, "corr-123", rec.Header().Get("X-Correlation-ID"))
	})

	t.Run("generates one when absent", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/healthz")

		assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
	})
}

func TestCORSHeaders(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timeline", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestJSONContentType(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/api/v1/timeline")

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestRequestMetricsRecorded(t *testing.T) {
	metrics := observability.NewMetrics("httpserver_middleware_test")
	s := NewServer(Config{Address: ":0"}, testSnapshot(t), metrics, zerolog.Nop())

	doRequest(t, s, http.MethodGet, "/api/v1/timeline")
	doRequest(t, s, http.MethodGet, "/api/v1/histogram/2020")
	doRequest(t, s, http.MethodGet, "/api/v1/histogram/1999")

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("/api/v1/timeline", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("/api/v1/histogram/{year}", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("/api/v1/histogram/{year}", "404")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HistogramLookups.WithLabelValues("found")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HistogramLookups.WithLabelValues("not_found")))
}
