// Package ns wires the namespace resolver, its settings, logging and the HTTP
// listener into an Fx application.
package ns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/0xalexb/hjarta-ns/logging"
)

// ErrAppNotInitialized is returned by the methods of a nil or zero App.
var ErrAppNotInitialized = errors.New("app not initialized")

// App runs a resolver, and optionally its HTTP listener, inside Fx.
type App struct {
	fx     *fx.App
	logger *slog.Logger
}

// NewApp builds the application from opts. Wiring errors are reported by Err
// and again by Start.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	output := options.LogOutput
	if output == nil {
		output = os.Stderr
	}

	loggerConfig := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}
	logger := logging.NewLogger(loggerConfig, output)
	slog.SetDefault(logger)

	return &App{
		fx: fx.New(
			fx.WithLogger(func() fxevent.Logger {
				return &fxevent.SlogLogger{Logger: logger}
			}),
			fx.Supply(loggerConfig, logger),
			fx.Options(options.Modules...),
		),
		logger: logger,
	}
}

func (app *App) ready() bool {
	return app != nil && app.fx != nil
}

// Logger returns the application logger.
func (app *App) Logger() *slog.Logger {
	if !app.ready() {
		return slog.Default()
	}

	return app.logger
}

// Err returns the error, if any, encountered while wiring the application.
func (app *App) Err() error {
	if !app.ready() {
		return ErrAppNotInitialized
	}

	return app.fx.Err() //nolint:wrapcheck // fx errors already name the failing constructor
}

// Start runs the OnStart hooks, such as binding the HTTP listener, within ctx.
func (app *App) Start(ctx context.Context) error {
	if !app.ready() {
		return ErrAppNotInitialized
	}

	if err := app.fx.Start(ctx); err != nil {
		return fmt.Errorf("starting app: %w", err)
	}

	return nil
}

// Stop runs the OnStop hooks within ctx.
func (app *App) Stop(ctx context.Context) error {
	if !app.ready() {
		return ErrAppNotInitialized
	}

	if err := app.fx.Stop(ctx); err != nil {
		return fmt.Errorf("stopping app: %w", err)
	}

	return nil
}

// Run starts the application and blocks until an OS signal is received or a
// module requests shutdown, then stops it.
func (app *App) Run() {
	if !app.ready() {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.fx.Run()
}
