package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	ns "github.com/0xalexb/hjarta-ns"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve lookups over HTTP",
		Long: `Serve the namespace over HTTP until interrupted.

  GET /lookup/{key}       resolve a key
  GET /list/{prefix}      list names, optionally filtered with ?match=GLOB
  GET /metrics            Prometheus metrics
  GET /healthz            liveness`,
		Args:              cobra.NoArgs,
		RunE:              runServe,
		DisableAutoGenTag: true,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	app, err := newServeApp(cmd)
	if err != nil {
		return err
	}

	app.Run()

	return nil
}

func newServeApp(cmd *cobra.Command) (*ns.App, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), //nolint:exhaustruct // defaults
	)

	app := ns.NewApp(
		ns.WithSettings(settings),
		ns.WithLogOutput(cmd.ErrOrStderr()),
		ns.WithMetrics(registry),
		ns.WithHTTPListener(settings.ListenerOptions()...),
	)

	return app, app.Err()
}
