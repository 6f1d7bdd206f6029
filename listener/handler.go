package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/0xalexb/hjarta-ns/namespace"
)

// Value types reported in lookup responses.
const (
	TypeString    = "string"
	TypeList      = "list"
	TypeComposite = "composite"
	TypeNamespace = "namespace"
)

// LookupResponse is the body of a successful GET /lookup/{key}.
type LookupResponse struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// CompositeValue is the rendering of a *namespace.Composite.
type CompositeValue struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Prefix     string         `json:"prefix"`
	Source     string         `json:"source"`
	Attributes map[string]any `json:"attributes"`
}

// NamespaceValue is the rendering of a scoped *namespace.Resolver.
type NamespaceValue struct {
	Prefix  string            `json:"prefix"`
	Entries []namespace.Entry `json:"entries"`
}

// ListResponse is the body of a successful GET /list/{prefix}.
type ListResponse struct {
	Prefix  string            `json:"prefix"`
	Entries []namespace.Entry `json:"entries"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewHandler returns the HTTP API of resolver. When gatherer is non-nil its
// metrics are exposed on /metrics.
func NewHandler(resolver *namespace.Resolver, gatherer prometheus.Gatherer) (http.Handler, error) {
	if resolver == nil {
		return nil, ErrNilHandler
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /lookup/{key...}", func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("key")

		val, err := resolver.Lookup(r.Context(), key)
		if err != nil {
			writeError(r.Context(), w, err)

			return
		}

		resp, err := Render(r.Context(), key, val)
		if err != nil {
			writeError(r.Context(), w, err)

			return
		}

		writeJSON(w, http.StatusOK, resp)
	})

	list := func(w http.ResponseWriter, r *http.Request) {
		prefix := r.PathValue("prefix")

		var (
			entries []namespace.Entry
			err     error
		)

		if pattern := r.URL.Query().Get("match"); pattern != "" {
			entries, err = resolver.ListMatching(r.Context(), prefix, pattern)
		} else {
			entries, err = resolver.List(r.Context(), prefix)
		}

		if err != nil {
			writeError(r.Context(), w, err)

			return
		}

		writeJSON(w, http.StatusOK, ListResponse{Prefix: prefix, Entries: nonNil(entries)})
	}

	mux.HandleFunc("GET /list", list)
	mux.HandleFunc("GET /list/{prefix...}", list)

	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})) //nolint:exhaustruct // defaults
	}

	return mux, nil
}

// Render converts a lookup result into its JSON form. Namespaces are rendered
// with their entries, which requires listing them.
func Render(ctx context.Context, key string, val any) (LookupResponse, error) {
	resp := LookupResponse{Key: key, Type: fmt.Sprintf("%T", val), Value: val}

	switch v := val.(type) {
	case string:
		resp.Type = TypeString
	case []string:
		resp.Type = TypeList
	case *namespace.Composite:
		resp.Type = TypeComposite
		resp.Value = renderComposite(v)
	case *namespace.Resolver:
		entries, err := v.List(ctx, "")
		if err != nil {
			return LookupResponse{}, err
		}

		resp.Type = TypeNamespace
		resp.Value = NamespaceValue{Prefix: v.Prefix(), Entries: nonNil(entries)}
	case fmt.Stringer:
		resp.Value = v.String()
	}

	return resp, nil
}

func renderComposite(comp *namespace.Composite) CompositeValue {
	attrs := make(map[string]any, len(comp.Attributes()))

	for _, name := range comp.Attributes() {
		values := comp.Values(name)
		if len(values) == 1 {
			attrs[name] = values[0]

			continue
		}

		attrs[name] = values
	}

	return CompositeValue{
		ID:         comp.ID(),
		Name:       comp.Name(),
		Prefix:     comp.Prefix(),
		Source:     comp.Source().String(),
		Attributes: attrs,
	}
}

// StatusFor maps resolver errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, namespace.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, namespace.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, namespace.ErrNotListable):
		return http.StatusConflict
	case errors.Is(err, namespace.ErrUnsupportedType), errors.Is(err, namespace.ErrInvalidValue):
		return http.StatusUnprocessableEntity
	case errors.Is(err, namespace.ErrParseFailure):
		return http.StatusBadGateway
	case errors.Is(err, namespace.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		slogcontext.FromCtx(ctx).ErrorContext(ctx, "lookup failed", "error", err)
	}

	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func nonNil(entries []namespace.Entry) []namespace.Entry {
	if entries == nil {
		return []namespace.Entry{}
	}

	return entries
}
