package namespace

import (
	"log/slog"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// moduleParams are the optional dependencies of the namespace module.
type moduleParams struct {
	fx.In

	Registerer prometheus.Registerer `optional:"true"`
	Logger     *slog.Logger          `optional:"true"`
}

// NewModule creates an Fx module that provides a *Resolver built from opts.
// When a prometheus.Registerer is available in the container, the resolver
// metrics are registered with it, and an available *slog.Logger receives remote
// request retries.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(opts ...Option) fx.Option {
	return fx.Module("namespace", fx.Provide(func(params moduleParams) (*Resolver, error) {
		options := slices.Clone(opts)
		if params.Registerer != nil {
			options = append(options, WithRegisterer(params.Registerer))
		}

		if params.Logger != nil {
			options = append(options, WithLogger(params.Logger))
		}

		return New(options...)
	}))
}
