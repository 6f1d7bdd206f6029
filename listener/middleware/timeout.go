package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const defaultTimeoutDuration = 30 * time.Second

// Timeout bounds each request with a context deadline. Handlers observe the
// deadline through r.Context() and decide themselves how to report it; lookups
// against remote backends fail with a timeout instead of hanging.
// If duration is not positive, it defaults to 30s with a warning log.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	if duration <= 0 {
		slog.Warn("middleware: duration must be positive, using default",
			"provided", duration, "default", defaultTimeoutDuration)

		duration = defaultTimeoutDuration
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
