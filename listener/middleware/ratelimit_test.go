package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serve(handler http.Handler) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lookup/x", nil))

	return rec
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	t.Parallel()

	handler := RateLimit(1, 3)(okHandler())

	for range 3 {
		assert.Equal(t, http.StatusOK, serve(handler).Code)
	}

	rec := serve(handler)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"too many requests"}`, rec.Body.String())

	seconds, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, seconds, 1)
}

func TestRateLimit_Replenishes(t *testing.T) {
	t.Parallel()

	handler := RateLimit(50, 1)(okHandler())

	assert.Equal(t, http.StatusOK, serve(handler).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(handler).Code)

	assert.Eventually(t, func() bool {
		return serve(handler).Code == http.StatusOK
	}, time.Second, 10*time.Millisecond)
}

func TestRateLimit_DefaultsOnInvalidArguments(t *testing.T) {
	t.Parallel()

	handler := RateLimit(0, -1)(okHandler())

	assert.Equal(t, http.StatusOK, serve(handler).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(handler).Code)
}
