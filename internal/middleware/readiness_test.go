package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbe-dev-920/tce-serv/internal/middleware"
)

// TestReadinessGate_blocksUntilReady verifies the one-way state machine:
// requests are rejected with 503 while NotReady and pass once MarkReady has
// been called.
func TestReadinessGate_blocksUntilReady(t *testing.T) {
	gate := middleware.NewReadinessGate()
	h := gate.Handler(trivialHandler)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"not_ready","message":"server is starting up"}}`, rec.Body.String())
	assert.False(t, gate.Ready())

	gate.MarkReady()
	assert.True(t, gate.Ready())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// MarkReady is idempotent; the gate never goes back.
	gate.MarkReady()
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
