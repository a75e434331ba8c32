package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest("AddItem", "OK", 10*time.Millisecond)
	c.RecordRequest("AddItem", "OK", 20*time.Millisecond)
	c.RecordRequest("AddItem", "InvalidArgument", time.Millisecond)
	c.RecordRateLimited("ListItems")

	_, body := get(t, NewRouter(reg, nil), "/metrics")
	assert.Contains(t, body, `crossclip_grpc_requests_total{code="OK",method="AddItem"} 2`)
	assert.Contains(t, body, `crossclip_grpc_requests_total{code="InvalidArgument",method="AddItem"} 1`)
	assert.Contains(t, body, `crossclip_grpc_rate_limited_total{method="ListItems"} 1`)
	assert.Contains(t, body, `crossclip_grpc_request_duration_seconds_count{method="AddItem"} 3`)
}

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	return w.Result().StatusCode, string(body)
}

func TestRouter_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordRequest("Ping", "OK", time.Millisecond)

	code, body := get(t, NewRouter(reg, nil), "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "crossclip_grpc_requests_total")
}

func TestRouter_Healthz(t *testing.T) {
	reg := prometheus.NewRegistry()

	code, body := get(t, NewRouter(reg, nil), "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)

	failing := func(context.Context) error { return errors.New("db down") }
	code, body = get(t, NewRouter(reg, failing), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body, "db down")
}

func TestRouter_UnknownPath(t *testing.T) {
	code, _ := get(t, NewRouter(prometheus.NewRegistry(), nil), "/nope")
	assert.Equal(t, http.StatusNotFound, code)
}
