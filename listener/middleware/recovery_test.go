package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	slogcontext "github.com/veqryn/slog-context"
)

func TestRecovery_PanicReturnsJSON500(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger()
	handler := Recovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("resolver exploded")
	}))

	req := httptest.NewRequest(http.MethodGet, "/lookup/x", nil)
	ctx := slogcontext.Append(slogcontext.NewCtx(req.Context(), logger), "request_id", "req-9")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())

	records := decodeRecords(t, buf)
	require.Len(t, records, 1)
	assert.Equal(t, "panic recovered", records[0]["msg"])
	assert.Equal(t, "resolver exploded", records[0]["panic"])
	assert.Equal(t, "req-9", records[0]["request_id"])
	assert.Contains(t, records[0]["stack"], "goroutine")
}

func TestRecovery_PanicAfterPartialWrite(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger()
	handler := Recovery()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("partial"))

		panic("late panic")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req.WithContext(slogcontext.NewCtx(context.Background(), logger)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())

	records := decodeRecords(t, buf)
	require.Len(t, records, 1)
	assert.Equal(t, true, records[0]["response_already_written"])
}

func TestRecovery_ErrAbortHandlerRePanics(t *testing.T) {
	t.Parallel()

	handler := Recovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestRecovery_NoPanicPassesThrough(t *testing.T) {
	t.Parallel()

	handler := Recovery()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
