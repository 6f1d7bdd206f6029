package namespace

import (
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/0xalexb/hjarta-ns/namespace/convert"
	"github.com/0xalexb/hjarta-ns/namespace/format"
)

// Options holds configuration settings for a Resolver.
type Options struct {
	Root            string
	Delimiter       string
	Bundle          fs.FS
	Timeout         time.Duration
	Retries         int
	HTTPClient      *http.Client
	Registry        *format.Registry
	Converter       *convert.Converter
	CacheSize       int
	CompositeMarker string
	Registerer      prometheus.Registerer
	Logger          *slog.Logger
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithRoot sets the namespace root: a path or a protocol-qualified location
// such as "file:///etc/app", "classpath://conf" or "http://host/conf".
func WithRoot(root string) Option {
	return func(opts *Options) {
		opts.Root = root
	}
}

// WithDelimiter sets the key delimiter. Defaults to ".".
func WithDelimiter(delimiter string) Option {
	return func(opts *Options) {
		opts.Delimiter = delimiter
	}
}

// WithBundle sets the file system behind the bundled protocol.
func WithBundle(fsys fs.FS) Option {
	return func(opts *Options) {
		opts.Bundle = fsys
	}
}

// WithTimeout bounds every remote fetch.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithRetries sets how often a failed remote fetch is retried.
func WithRetries(retries int) Option {
	return func(opts *Options) {
		opts.Retries = retries
	}
}

// WithHTTPClient sets the HTTP client used by the remote protocol.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *Options) {
		opts.HTTPClient = client
	}
}

// WithLogger sets the logger used for remote request retries.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithRegistry replaces the format parser registry.
func WithRegistry(registry *format.Registry) Option {
	return func(opts *Options) {
		opts.Registry = registry
	}
}

// WithConverter replaces the type converter.
func WithConverter(converter *convert.Converter) Option {
	return func(opts *Options) {
		opts.Converter = converter
	}
}

// WithCacheSize bounds the number of parsed documents kept in memory.
func WithCacheSize(size int) Option {
	return func(opts *Options) {
		opts.CacheSize = size
	}
}

// WithCompositeMarker sets the "<key>.type" value that marks a composite resource.
func WithCompositeMarker(marker string) Option {
	return func(opts *Options) {
		opts.CompositeMarker = marker
	}
}

// WithRegisterer registers the resolver metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(opts *Options) {
		opts.Registerer = reg
	}
}
