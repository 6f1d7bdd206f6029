package listener

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/0xalexb/hjarta-ns/namespace"
)

// serverParams are the dependencies of the listener module.
type serverParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Resolver   *namespace.Resolver
	Config     Config
	Logger     *slog.Logger        `optional:"true"`
	Gatherer   prometheus.Gatherer `optional:"true"`
}

// NewModule creates an Fx module that serves the *namespace.Resolver from the
// container over HTTP. The server is started and stopped with the application
// and is provided as *Server.
// If any options are passed, the module supplies Config to DI from those options.
// Otherwise, Config must be provided externally (e.g., via config.Provider).
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(opts ...Option) fx.Option {
	var cfg Config

	for _, apply := range opts {
		apply(&cfg)
	}

	var moduleOpts []fx.Option

	if len(opts) > 0 {
		moduleOpts = append(moduleOpts, fx.Supply(cfg))
	}

	moduleOpts = append(moduleOpts,
		fx.Provide(newModuleServer),
		fx.Invoke(func(*Server) {}),
	)

	return fx.Module("listener", moduleOpts...)
}

func newModuleServer(params serverParams) (*Server, error) {
	handler, err := NewHandler(params.Resolver, params.Gatherer)
	if err != nil {
		return nil, err
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	srv, err := NewServer(handler, params.Config, logger, func() {
		shutdownErr := params.Shutdowner.Shutdown()
		if shutdownErr != nil {
			logger.Error("failed to trigger shutdown", "error", shutdownErr)
		}
	})
	if err != nil {
		return nil, err
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: srv.Start,
		OnStop:  srv.Stop,
	})

	return srv, nil
}
