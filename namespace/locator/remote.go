package locator

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	retryWaitMin = 50 * time.Millisecond
	retryWaitMax = 500 * time.Millisecond
)

// RemoteLocator resolves locations below an HTTP(S) base URL.
// Stat uses HEAD, or GET when HEAD is refused, and reports Unknown for any successful answer; Open uses GET.
type RemoteLocator struct {
	base    string
	timeout time.Duration
	client  *retryablehttp.Client
}

// NewRemoteLocator creates a RemoteLocator for base using opts.
func NewRemoteLocator(base string, opts Options) *RemoteLocator {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := retryablehttp.NewClient()
	client.RetryMax = max(opts.Retries, 0)
	client.RetryWaitMin = retryWaitMin
	client.RetryWaitMax = retryWaitMax
	client.Logger = retryLogger{logger: cmp.Or(opts.Logger, slog.Default())}

	if opts.HTTPClient != nil {
		client.HTTPClient = opts.HTTPClient
	}

	return &RemoteLocator{
		base:    strings.TrimRight(base, "/"),
		timeout: timeout,
		client:  client,
	}
}

// Protocol returns Remote.
func (l *RemoteLocator) Protocol() Protocol { return Remote }

// Root returns the base URL.
func (l *RemoteLocator) Root() string { return l.base }

// Join appends the path-escaped elem to base.
func (l *RemoteLocator) Join(base, elem string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(elem)
}

// Stat issues a HEAD request for location. Servers that refuse HEAD are asked
// again with a GET whose body is discarded.
func (l *RemoteLocator) Stat(ctx context.Context, location string) (Kind, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	method := http.MethodHead

	resp, err := l.do(ctx, method, location)
	if err != nil {
		return Absent, err
	}

	if refusesHead(resp.StatusCode) {
		_ = resp.Body.Close()

		method = http.MethodGet

		resp, err = l.do(ctx, method, location)
		if err != nil {
			return Absent, err
		}

		_, _ = io.Copy(io.Discard, resp.Body)
	}

	defer func() { _ = resp.Body.Close() }()

	switch {
	case isSuccess(resp.StatusCode):
		return Unknown, nil
	case isMissing(resp.StatusCode):
		return Absent, nil
	default:
		return Absent, fmt.Errorf("%w: %s %s: %s", ErrUnexpectedStatus, method, location, resp.Status)
	}
}

// Open issues a GET request for location. The returned body stays bound to the
// request time limit until it is closed.
func (l *RemoteLocator) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)

	resp, err := l.do(ctx, http.MethodGet, location)
	if err != nil {
		cancel()

		return nil, err
	}

	if !isSuccess(resp.StatusCode) {
		_ = resp.Body.Close()

		cancel()

		if isMissing(resp.StatusCode) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, location)
		}

		return nil, fmt.Errorf("%w: GET %s: %s", ErrUnexpectedStatus, location, resp.Status)
	}

	return &timedBody{body: resp.Body, ctx: ctx, cancel: cancel, location: location}, nil
}

func (l *RemoteLocator) do(ctx context.Context, method, location string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, method, location, nil)
	if err != nil {
		return nil, fmt.Errorf("building %s request for %q: %w", method, location, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}

		return nil, classify(ctx, location, err)
	}

	return resp, nil
}

// timedBody maps deadline failures while reading to ErrTimeout and releases
// the request context on Close.
type timedBody struct {
	body     io.ReadCloser
	ctx      context.Context //nolint:containedctx // the body outlives Open and must observe its deadline
	cancel   context.CancelFunc
	location string
}

func (b *timedBody) Read(p []byte) (int, error) {
	n, err := b.body.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, classify(b.ctx, b.location, err)
	}

	return n, err //nolint:wrapcheck // io.EOF must be returned unwrapped
}

func (b *timedBody) Close() error {
	defer b.cancel()

	return b.body.Close() //nolint:wrapcheck
}

func classify(ctx context.Context, location string, err error) error {
	var netErr net.Error

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s: %w", ErrTimeout, location, err)
	}

	return fmt.Errorf("requesting %s: %w", location, err)
}

// retryLogger reports retryablehttp activity at debug level. A failed attempt
// is an ordinary outcome of probing for resources that do not exist.
type retryLogger struct {
	logger *slog.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...any) { l.logger.Debug(msg, keysAndValues...) }
func (l retryLogger) Info(msg string, keysAndValues ...any) { l.logger.Debug(msg, keysAndValues...) }
func (l retryLogger) Debug(msg string, keysAndValues ...any) { l.logger.Debug(msg, keysAndValues...) }
func (l retryLogger) Warn(msg string, keysAndValues ...any) { l.logger.Debug(msg, keysAndValues...) }

func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

func refusesHead(code int) bool {
	return code == http.StatusMethodNotAllowed || code == http.StatusNotImplemented
}

func isMissing(code int) bool {
	return code == http.StatusNotFound || code == http.StatusGone
}
