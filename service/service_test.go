package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthzHandler(t *testing.T) {
	h := NewHealthzServer("127.0.0.1:0")
	rec := httptest.NewRecorder()
	h.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestHealthzHandlerAllowsAnyOrigin(t *testing.T) {
	h := NewHealthzServer("127.0.0.1:0")
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	h.server.Handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetricsServer("127.0.0.1:0")
	rec := httptest.NewRecorder()
	m.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "promhttp_metric_handler_requests_total")
}

func TestServiceDisabled(t *testing.T) {
	s := New(Config{Log: log.NewLogger(log.DiscardHandler())})
	assert.False(t, s.Enabled())
	s.Start()
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestServiceStartShutdown(t *testing.T) {
	s := New(Config{
		HealthzAddr: "127.0.0.1:0",
		MetricsAddr: "127.0.0.1:0",
		Log:         log.NewLogger(log.DiscardHandler()),
	})
	require.True(t, s.Enabled())
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, s.Shutdown(ctx))
}
