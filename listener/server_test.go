package listener

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xalexb/hjarta-ns/listener/middleware"
)

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req) //nolint:gosec // G704: test code, URL from test server
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}

func TestNewServer_SetsDefaults(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})
	srv, err := NewServer(handler, Config{}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultAddress, srv.config.Address)
	assert.Equal(t, DefaultRequestTimeout, srv.config.RequestTimeout)
	assert.Equal(t, DefaultAddress, srv.Addr())
}

func TestNewServer_InvalidConfig(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})

	srv, err := NewServer(handler, Config{RateLimit: -1}, nil, nil)
	require.ErrorIs(t, err, ErrInvalidRateLimit)
	assert.Nil(t, srv)
}

func TestNewServer_NilHandler(t *testing.T) {
	t.Parallel()

	srv, err := NewServer(nil, Config{}, nil, nil)
	require.ErrorIs(t, err, ErrNilHandler)
	assert.Nil(t, srv)
}

func TestServer_StartStop(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline := r.Context().Deadline()

		w.WriteHeader(http.StatusOK)

		_, _ = fmt.Fprintf(w, "%t %t", middleware.GetRequestID(r.Context()) != "", hasDeadline)
	})

	srv, err := NewServer(handler, Config{Address: "127.0.0.1:0"}, slog.New(slog.DiscardHandler), nil)
	require.NoError(t, err)

	require.NoError(t, srv.Start(context.Background()))

	addr := srv.Addr()
	assert.NotEqual(t, "127.0.0.1:0", addr)

	resp, body := get(t, "http://"+addr)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true true", string(body))
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	require.NoError(t, srv.Stop(context.Background()))

	dialer := net.Dialer{Timeout: 100 * time.Millisecond}

	conn, dialErr := dialer.DialContext(context.Background(), "tcp", addr)
	if dialErr == nil {
		_ = conn.Close()
	}

	assert.Error(t, dialErr, "should not be able to connect after stop")
}

func TestServer_RateLimited(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv, err := NewServer(handler, Config{Address: "127.0.0.1:0", RateLimit: 0.01, RateBurst: 1},
		slog.New(slog.DiscardHandler), nil)
	require.NoError(t, err)

	require.NoError(t, srv.Start(context.Background()))
	t.Cleanup(func() { _ = srv.Stop(context.Background()) })

	first, _ := get(t, "http://"+srv.Addr())
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second, _ := get(t, "http://"+srv.Addr())
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.NotEmpty(t, second.Header.Get("Retry-After"))
}

func TestServer_StartFailure(t *testing.T) {
	t.Parallel()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	handler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})

	srv, srvErr := NewServer(handler, Config{Address: ln.Addr().String()}, slog.New(slog.DiscardHandler), nil)
	require.NoError(t, srvErr)

	err = srv.Start(context.Background())
	require.Error(t, err, "should fail when port is already in use")
	assert.ErrorIs(t, err, ErrListenFailed, "error should wrap ErrListenFailed")
}

func TestServer_ServeErrorCallsOnServeErr(t *testing.T) {
	t.Parallel()

	var called atomic.Bool

	handler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})
	srv, srvErr := NewServer(handler, Config{Address: "127.0.0.1:0"}, slog.New(slog.DiscardHandler), func() {
		called.Store(true)
	})
	require.NoError(t, srvErr)

	require.NoError(t, srv.Start(context.Background()))

	// Close the underlying listener directly (not via http.Server) to force a non-ErrServerClosed error
	_ = srv.listener.Close()

	assert.Eventually(
		t, called.Load, time.Second, 10*time.Millisecond,
		"onServeErr callback should be called on serve error",
	)
}

func TestServer_StopWithCancelledContext(t *testing.T) {
	t.Parallel()

	received := make(chan struct{})
	release := make(chan struct{})

	handler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		close(received)
		<-release
	})

	srv, err := NewServer(handler, Config{Address: "127.0.0.1:0"}, slog.New(slog.DiscardHandler), nil)
	require.NoError(t, err)

	require.NoError(t, srv.Start(context.Background()))
	t.Cleanup(func() { close(release) })

	reqCtx, reqCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer reqCancel()

	go func() {
		req, reqErr := http.NewRequestWithContext(reqCtx, http.MethodGet, "http://"+srv.Addr(), nil)
		if reqErr != nil {
			return
		}

		resp, doErr := http.DefaultClient.Do(req) //nolint:gosec // G704: test code, URL from test server
		if doErr == nil {
			_ = resp.Body.Close()
		}
	}()

	<-received

	// Cancel context before calling Stop - Shutdown cannot complete gracefully.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = srv.Stop(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShutdownFailed, "error should wrap ErrShutdownFailed")
}
