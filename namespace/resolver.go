package namespace

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/0xalexb/hjarta-ns/namespace/convert"
	"github.com/0xalexb/hjarta-ns/namespace/document"
	"github.com/0xalexb/hjarta-ns/namespace/format"
	"github.com/0xalexb/hjarta-ns/namespace/locator"
)

// DefaultDelimiter separates key segments when no delimiter is configured.
const DefaultDelimiter = "."

// backing is the state shared by reference between a resolver and every view
// derived from it.
type backing struct {
	locatorOpts []locator.Option
	registry    *format.Registry
	cache       *document.Cache
	converter   *convert.Converter
	marker      string
	metrics     *Metrics
	probes      sync.Map
}

// Resolver maps hierarchical keys to values. Direct entries bound on the
// resolver shadow anything found in the backing store; everything else is
// resolved on demand from documents located below the root.
//
// A Resolver is safe for concurrent use. Lookups share a read lock, binds
// take the write lock, and backing I/O happens outside of both.
type Resolver struct {
	shared *backing

	// inherited configuration of this view
	prefix    []string
	root      string
	delimiter string
	loc       locator.Locator

	mu       sync.RWMutex
	entries  map[string]any
	reserved map[string]string
	override locator.Locator
}

// New creates a Resolver from the given options.
func New(opts ...Option) (*Resolver, error) {
	options := Options{ //nolint:exhaustruct // remaining fields default below
		Delimiter:       DefaultDelimiter,
		Timeout:         locator.DefaultTimeout,
		CompositeMarker: DefaultCompositeMarker,
	}

	for _, apply := range opts {
		apply(&options)
	}

	if options.Delimiter == "" {
		return nil, fmt.Errorf("%w: delimiter must not be empty", ErrInvalidName)
	}

	if options.Registry == nil {
		options.Registry = format.Default()
	}

	if options.Converter == nil {
		options.Converter = convert.New()
	}

	locatorOpts := []locator.Option{
		locator.WithBundle(options.Bundle),
		locator.WithTimeout(options.Timeout),
		locator.WithRetries(options.Retries),
		locator.WithHTTPClient(options.HTTPClient),
		locator.WithLogger(options.Logger),
	}

	loc, err := locator.New(options.Root, locatorOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating locator for root %q: %w", options.Root, err)
	}

	cache, err := document.NewCache(options.CacheSize)
	if err != nil {
		return nil, err
	}

	metrics, err := NewMetrics(options.Registerer)
	if err != nil {
		return nil, err
	}

	shared := &backing{ //nolint:exhaustruct // probes is ready to use
		locatorOpts: locatorOpts,
		registry:    options.Registry,
		cache:       cache,
		converter:   options.Converter,
		marker:      options.CompositeMarker,
		metrics:     metrics,
	}

	return newView(shared, nil, options.Root, options.Delimiter, loc), nil
}

func newView(shared *backing, prefix []string, root, delimiter string, loc locator.Locator) *Resolver {
	return &Resolver{ //nolint:exhaustruct // mu and override start zero
		shared:    shared,
		prefix:    prefix,
		root:      root,
		delimiter: delimiter,
		loc:       loc,
		entries:   make(map[string]any),
		reserved:  make(map[string]string),
	}
}

// view derives a scoped resolver rooted at prefix. It inherits the effective
// root and delimiter and starts with no direct entries of its own.
func (r *Resolver) view(prefix []string) *Resolver {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return newView(r.shared, slices.Clone(prefix), r.rootLocked(), r.delimiterLocked(), r.locatorLocked())
}

// Prefix returns the key segments this view is scoped to, joined by its delimiter.
func (r *Resolver) Prefix() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return strings.Join(r.prefix, r.delimiterLocked())
}

// Metrics returns the counters shared by this resolver and its views.
func (r *Resolver) Metrics() *Metrics {
	return r.shared.metrics
}

// Lookup resolves key. The result is one of: a value bound with Bind, a string
// or []string from a document, a converted value when the document carries a
// "<key>.type" marker, a *Composite, or a *Resolver scoped to key.
func (r *Resolver) Lookup(ctx context.Context, key string) (any, error) {
	val, err := r.lookup(ctx, key)
	r.shared.metrics.observeLookup(err)

	return val, err
}

func (r *Resolver) lookup(ctx context.Context, key string) (any, error) {
	if key == "" {
		return r.view(r.prefix), nil
	}

	r.mu.RLock()

	if val, ok := r.entries[key]; ok {
		r.mu.RUnlock()

		return val, nil
	}

	if isReserved(key) {
		val := r.reservedLocked(key)
		r.mu.RUnlock()

		return val, nil
	}

	delimiter := r.delimiterLocked()
	loc := r.locatorLocked()
	r.mu.RUnlock()

	res, err := r.resolve(ctx, loc, key, delimiter)
	if err != nil {
		return nil, err
	}

	return r.materialize(res, key, delimiter)
}

// Document returns the backing document key resolves to, together with the
// remainder of the key inside that document.
func (r *Resolver) Document(ctx context.Context, key string) (*document.Document, string, error) {
	r.mu.RLock()
	delimiter := r.delimiterLocked()
	loc := r.locatorLocked()
	r.mu.RUnlock()

	res, err := r.resolve(ctx, loc, key, delimiter)
	if err != nil {
		return nil, "", err
	}

	return res.doc, res.remainder, nil
}

func (r *Resolver) materialize(res resolution, key, delimiter string) (any, error) {
	if comp := r.composite(res, delimiter); comp != nil {
		return comp, nil
	}

	if res.remainder == "" {
		return r.view(res.segments), nil
	}

	val, ok := res.doc.Lookup(res.remainder)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	typeName, typed := res.doc.Value(res.remainder + delimiter + TypeSuffix)
	if !typed {
		return val, nil
	}

	converted, err := r.shared.converter.Convert(val, typeName)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", key, err)
	}

	return converted, nil
}

// Bind adds a direct entry. It fails with ErrAlreadyBound if key already has one.
func (r *Resolver) Bind(key string, value any) error {
	if key == "" {
		return fmt.Errorf("%w: cannot bind to an empty name", ErrInvalidName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.boundLocked(key) {
		return fmt.Errorf("%w: %s", ErrAlreadyBound, key)
	}

	return r.putLocked(key, value)
}

// Rebind sets a direct entry, replacing any existing one.
func (r *Resolver) Rebind(key string, value any) error {
	if key == "" {
		return fmt.Errorf("%w: cannot bind to an empty name", ErrInvalidName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.putLocked(key, value)
}

// Unbind removes a direct entry. Unbinding a reserved key restores the inherited
// setting. Removing a name that is not bound is not an error.
func (r *Resolver) Unbind(key string) error {
	if key == "" {
		return fmt.Errorf("%w: cannot unbind an empty name", ErrInvalidName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if isReserved(key) {
		r.resetReservedLocked(key)

		return nil
	}

	delete(r.entries, key)

	return nil
}

// Rename moves the direct entry at oldKey to newKey.
func (r *Resolver) Rename(oldKey, newKey string) error {
	if oldKey == "" || newKey == "" {
		return fmt.Errorf("%w: cannot rename to or from an empty name", ErrInvalidName)
	}

	if isReserved(oldKey) || isReserved(newKey) {
		return fmt.Errorf("%w: reserved names cannot be renamed", ErrInvalidName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[newKey]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyBound, newKey)
	}

	val, ok := r.entries[oldKey]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, oldKey)
	}

	delete(r.entries, oldKey)
	r.entries[newKey] = val

	return nil
}

// Bindings returns a snapshot of the direct entries.
func (r *Resolver) Bindings() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Clone(r.entries)
}

// Environment returns the effective reserved settings of this view.
func (r *Resolver) Environment() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return map[string]string{
		RootKey:      r.rootLocked(),
		DelimiterKey: r.delimiterLocked(),
	}
}

func (r *Resolver) boundLocked(key string) bool {
	if isReserved(key) {
		_, ok := r.reserved[key]

		return ok
	}

	_, ok := r.entries[key]

	return ok
}

func (r *Resolver) putLocked(key string, value any) error {
	if isReserved(key) {
		return r.setReservedLocked(key, value)
	}

	r.entries[key] = value

	return nil
}
