package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taktziv/internal/services"
	"taktziv/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	repo, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	srv := NewServer("127.0.0.1:0",
		repo,
		services.NewLedgerService(repo),
		services.NewSnapshotService(repo, nil),
		services.NewSettingsService(repo),
	)
	t.Cleanup(func() {
		srv.limiter.Stop()
		srv.cacheManager.Stop()
	})
	return srv
}

// do runs a request through the full middleware chain.
func do(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestHealthAndReadiness(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecurityHeadersApplied(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestNotFoundIsJSON(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodDelete, "/funds/9999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "not found", body["error"])
}

func TestInvalidIDRejected(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodDelete, "/funds/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	do(t, srv, http.MethodGet, "/healthz", nil)
	rec := do(t, srv, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	metrics := decodeBody[map[string]any](t, rec)
	assert.GreaterOrEqual(t, metrics["total_requests"].(float64), float64(1))
	assert.Contains(t, metrics, "rate_limit_hits")
	assert.Contains(t, metrics, "overview_cache")
}

func TestWriteRateLimit(t *testing.T) {
	srv := newTestServer(t)

	var lastCode int
	for i := 0; i <= 60; i++ {
		rec := do(t, srv, http.MethodPost, "/tasks", taskPayload{Title: "t" + strconv.Itoa(i)})
		lastCode = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode, "61st write in a minute must be limited")

	// Reads are never limited.
	rec := do(t, srv, http.MethodGet, "/tasks", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
