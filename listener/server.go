package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/0xalexb/hjarta-ns/listener/middleware"
)

// ReadHeaderTimeout is the default timeout for reading request headers.
const ReadHeaderTimeout = 10 * time.Second

// Server manages an HTTP server lifecycle.
type Server struct {
	config     Config
	logger     *slog.Logger
	server     *http.Server
	listener   net.Listener
	onServeErr func()
}

// NewServer creates a new Server for handler. It sets config defaults, validates
// the config, wraps handler in the middleware chain and creates the underlying
// http.Server. The onServeErr callback, if non-nil, is called when the
// background Serve goroutine encounters a fatal error.
func NewServer(handler http.Handler, cfg Config, logger *slog.Logger, onServeErr func()) (*Server, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}

	if logger == nil {
		logger = slog.Default()
	}

	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &Server{
		config: cfg,
		logger: logger,
		server: &http.Server{ //nolint:exhaustruct // only relevant fields needed
			Addr:              cfg.Address,
			Handler:           Chain(handler, cfg, logger),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		listener:   nil,
		onServeErr: onServeErr,
	}, nil
}

// Chain wraps handler in the listener middleware: request IDs, access logging,
// panic recovery, the optional rate limit and the request deadline, outermost first.
func Chain(handler http.Handler, cfg Config, logger *slog.Logger) http.Handler {
	handler = middleware.Timeout(cfg.RequestTimeout)(handler)

	if cfg.RateLimit > 0 {
		handler = middleware.RateLimit(cfg.RateLimit, cfg.RateBurst)(handler)
	}

	handler = middleware.Recovery()(handler)
	handler = middleware.Logging(logger)(handler)

	return middleware.RequestID()(handler)
}

// Addr returns the address the server listens on. Once started it is the
// bound address, which differs from the configured one for port 0.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.server.Addr
}

// Start begins listening on TCP and serves HTTP requests in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	listenCfg := net.ListenConfig{} //nolint:exhaustruct // zero-value defaults are fine

	listener, err := listenCfg.Listen(ctx, "tcp", s.server.Addr)
	if err != nil {
		s.logger.Error("failed to listen", "address", s.server.Addr, "error", err)

		return fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	s.listener = listener

	s.logger.Info("starting HTTP listener", "address", listener.Addr().String())

	go func() {
		serveErr := s.server.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			s.logger.Error("HTTP listener error", "error", serveErr)

			if s.onServeErr != nil {
				s.onServeErr()
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP listener", "address", s.Addr())

	err := s.server.Shutdown(ctx)
	if err != nil {
		s.logger.Error("shutdown failed", "error", err)

		return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
	}

	return nil
}
