package ns

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/0xalexb/hjarta-ns/config"
	"github.com/0xalexb/hjarta-ns/listener"
	"github.com/0xalexb/hjarta-ns/namespace"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
	LogOutput io.Writer
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithResolver adds the namespace module, which provides a *namespace.Resolver
// built from opts.
func WithResolver(opts ...namespace.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, namespace.NewModule(opts...))
	}
}

// WithSettings configures logging and the resolver from loaded settings.
func WithSettings(settings *config.Settings) Option {
	return func(o *Options) {
		o.LogLevel = settings.Log.Level
		o.LogFormat = settings.Log.Format

		WithResolver(settings.ResolverOptions()...)(o)
	}
}

// WithHTTPListener adds the HTTP listener that serves the resolver.
// When options are provided (e.g., WithAddress), Config is supplied to DI automatically.
func WithHTTPListener(opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, listener.NewModule(opts...))
	}
}

// WithMetrics supplies reg to the container as both prometheus.Registerer and
// prometheus.Gatherer, so resolver metrics are registered on it and the
// listener exposes them.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, fx.Supply(
			fx.Annotate(reg, fx.As(new(prometheus.Registerer), new(prometheus.Gatherer))),
		))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" (the default) or "text" log output.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogOutput sends logs to w instead of standard error.
func WithLogOutput(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogOutput = w
	}
}
