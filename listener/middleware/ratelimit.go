package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	slogcontext "github.com/veqryn/slog-context"
	"golang.org/x/time/rate"
)

// RateLimit returns a middleware that enforces a global request rate, so that
// lookups served over HTTP cannot flood a remote configuration backend. When
// the limit is exceeded it responds with a JSON 429 Too Many Requests and a
// Retry-After header.
// If requestsPerSecond is not positive, it defaults to 1.0 with a warning log.
// If burst is not positive, it defaults to 1 with a warning log.
func RateLimit(requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	if requestsPerSecond <= 0 {
		slog.Warn("middleware: requestsPerSecond must be positive, using default",
			"provided", requestsPerSecond, "default", 1.0)

		requestsPerSecond = 1.0
	}

	if burst <= 0 {
		slog.Warn("middleware: burst must be positive, using default", "provided", burst, "default", 1)
		burst = 1
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reservation := limiter.Reserve()

			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()

				seconds := max(int(math.Ceil(delay.Seconds())), 1)

				slogcontext.FromCtx(r.Context()).DebugContext(r.Context(), "request rate limited",
					"path", r.URL.Path, "retry_after_seconds", seconds)

				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"too many requests"}` + "\n"))

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
