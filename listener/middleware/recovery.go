package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	slogcontext "github.com/veqryn/slog-context"
)

// recoveryWriter wraps http.ResponseWriter to track whether headers have been sent.
type recoveryWriter struct {
	http.ResponseWriter

	written bool
}

func (w *recoveryWriter) WriteHeader(code int) {
	if code >= http.StatusOK {
		w.written = true
	}

	w.ResponseWriter.WriteHeader(code)
}

func (w *recoveryWriter) Write(b []byte) (int, error) {
	w.written = true

	return w.ResponseWriter.Write(b) //nolint:wrapcheck
}

// Unwrap returns the underlying ResponseWriter.
func (w *recoveryWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Recovery returns a middleware that recovers from panics in downstream handlers.
// It logs the panic value and stack trace with the request context's logger and
// responds with a JSON 500 error, unless the response was already partially written.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recWriter := &recoveryWriter{ResponseWriter: w} //nolint:exhaustruct // nothing written yet

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				if err, ok := rec.(error); ok && err == http.ErrAbortHandler { //nolint:errorlint,err113
					panic(rec)
				}

				ctx := r.Context()
				logger := slogcontext.FromCtx(ctx)
				attrs := []slog.Attr{
					slog.String("panic", fmt.Sprintf("%v", rec)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				}

				if recWriter.written {
					attrs = append(attrs, slog.Bool("response_already_written", true))
					logger.LogAttrs(ctx, slog.LevelError, "panic recovered after response was already written", attrs...)

					return
				}

				logger.LogAttrs(ctx, slog.LevelError, "panic recovered", attrs...)

				recWriter.Header().Set("Content-Type", "application/json")
				recWriter.WriteHeader(http.StatusInternalServerError)
				_, _ = recWriter.Write([]byte(`{"error":"internal server error"}` + "\n"))
			}()

			next.ServeHTTP(recWriter, r)
		})
	}
}
