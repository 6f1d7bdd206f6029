package locator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
	"time"
)

// DefaultTimeout bounds remote requests when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// ErrUnsupportedProtocol is returned for a root whose scheme has no locator.
var ErrUnsupportedProtocol = errors.New("unsupported protocol")

// ErrTimeout is returned when a remote request exceeds its time bound.
var ErrTimeout = errors.New("timed out")

// ErrNotExist is returned when opening a location that does not exist.
var ErrNotExist = errors.New("resource does not exist")

// ErrUnexpectedStatus is returned when a remote endpoint answers with a status
// that is neither success nor "not found".
var ErrUnexpectedStatus = errors.New("unexpected status")

// Protocol identifies the kind of backing store.
type Protocol int

// Supported protocols.
const (
	LocalPath Protocol = iota
	Bundled
	Remote
)

// String returns the scheme used for the protocol in roots and handles.
func (p Protocol) String() string {
	switch p {
	case LocalPath:
		return "file"
	case Bundled:
		return "classpath"
	case Remote:
		return "http"
	default:
		return fmt.Sprintf("protocol(%d)", int(p))
	}
}

// Kind is what a locator found at a location.
type Kind int

// Location kinds. Unknown means the resource exists but the protocol cannot tell
// a container from a leaf.
const (
	Absent Kind = iota
	Container
	Leaf
	Unknown
)

// String returns a lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Container:
		return "container"
	case Leaf:
		return "leaf"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Handle identifies a located resource.
type Handle struct {
	Protocol Protocol
	Location string
}

// String renders the handle as a protocol-qualified location.
func (h Handle) String() string {
	if h.Protocol == Remote {
		return h.Location
	}

	return h.Protocol.String() + "://" + h.Location
}

// Child is one entry of a container listing.
type Child struct {
	Name string
	Kind Kind
}

// Locator checks and opens locations for one protocol below one root.
type Locator interface {
	Protocol() Protocol
	Root() string
	Join(base, elem string) string
	Stat(ctx context.Context, location string) (Kind, error)
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// Lister is implemented by locators that can enumerate a container.
type Lister interface {
	List(ctx context.Context, location string) ([]Child, error)
}

// Options configure locator construction.
type Options struct {
	Bundle     fs.FS
	Timeout    time.Duration
	Retries    int
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Option defines a function type for configuring locators.
type Option func(*Options)

// WithBundle sets the file system backing the Bundled protocol, typically an embed.FS.
func WithBundle(fsys fs.FS) Option {
	return func(opts *Options) {
		opts.Bundle = fsys
	}
}

// WithTimeout bounds each remote request.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithRetries sets how many times a failed remote request is retried.
func WithRetries(retries int) Option {
	return func(opts *Options) {
		opts.Retries = retries
	}
}

// WithHTTPClient sets the HTTP client used by the Remote protocol.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *Options) {
		opts.HTTPClient = client
	}
}

// WithLogger sets the logger receiving the Remote protocol's request retries.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// ParseRoot splits a root into its protocol and protocol-specific base location.
func ParseRoot(root string) (Protocol, string, error) {
	if root == "" {
		return Bundled, "", nil
	}

	scheme, rest, found := strings.Cut(root, "://")
	if !found {
		return LocalPath, root, nil
	}

	switch strings.ToLower(scheme) {
	case "file":
		return LocalPath, rest, nil
	case "classpath", "bundle":
		return Bundled, rest, nil
	case "http", "https":
		return Remote, root, nil
	default:
		return 0, "", fmt.Errorf("%w: %q", ErrUnsupportedProtocol, scheme)
	}
}

// New builds the locator selected by root.
//
//nolint:ireturn // callers dispatch on the Locator interface
func New(root string, opts ...Option) (Locator, error) {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	proto, base, err := ParseRoot(root)
	if err != nil {
		return nil, err
	}

	switch proto {
	case LocalPath:
		return NewFileLocator(base), nil
	case Bundled:
		fsys := options.Bundle
		if fsys == nil {
			fsys = os.DirFS(".")
		}

		return NewBundleLocator(fsys, base), nil
	case Remote:
		return NewRemoteLocator(base, options), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProtocol, proto)
	}
}

// cleanBundlePath turns a bundle location into a valid io/fs path.
func cleanBundlePath(loc string) string {
	loc = strings.Trim(path.Clean("/"+loc), "/")
	if loc == "" {
		return "."
	}

	return loc
}
