// Package middleware provides the HTTP middleware of the namespace listener.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	slogcontext "github.com/veqryn/slog-context"
)

// RequestIDHeader is the HTTP header used for request IDs.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength is the maximum allowed length for an externally-provided request ID.
const maxRequestIDLength = 128

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{} //nolint:gochecknoglobals

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	val, ok := ctx.Value(requestIDKey).(string)
	if !ok {
		return ""
	}

	return val
}

// newRequestID returns a time-ordered UUID, falling back to a random one.
func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

func isPrintableASCII(s string) bool {
	for i := range len(s) {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}

	return true
}

// RequestID assigns a request ID to each request. A well-formed X-Request-ID
// header from the client is kept; otherwise a UUIDv7 is generated. The ID is
// echoed in the response header, stored in the context, and attached to every
// record logged with that context.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" || len(id) > maxRequestIDLength || !isPrintableASCII(id) {
				id = newRequestID()
			}

			r.Header.Set(RequestIDHeader, id)
			w.Header().Set(RequestIDHeader, id)

			ctx := context.WithValue(r.Context(), requestIDKey, id)
			ctx = slogcontext.Append(ctx, "request_id", id)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
