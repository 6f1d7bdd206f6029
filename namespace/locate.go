package namespace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/0xalexb/hjarta-ns/namespace/document"
	"github.com/0xalexb/hjarta-ns/namespace/locator"
)

// maxProbeBytes caps how much of an unclassified resource is read to decide
// whether it is a document.
const maxProbeBytes = 1 << 20

// resolution is a key resolved to a document.
type resolution struct {
	segments  []string
	handle    locator.Handle
	doc       *document.Document
	remainder string
}

// walkResult is the outcome of descending through containers.
type walkResult struct {
	base      string
	handle    locator.Handle
	found     bool
	remainder []string
	// containers is true when every segment named a container.
	containers bool
}

func (r *Resolver) resolve(ctx context.Context, loc locator.Locator, key, delimiter string) (resolution, error) {
	segments, err := r.segments(key, delimiter)
	if err != nil {
		return resolution{}, err
	}

	w, err := r.walk(ctx, loc, segments)
	if err != nil {
		return resolution{}, err
	}

	if !w.found {
		return resolution{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	doc, err := r.load(ctx, loc, w.handle, delimiter)
	if err != nil {
		return resolution{}, err
	}

	remainder := strings.Join(w.remainder, delimiter)

	slogcontext.FromCtx(ctx).Debug("resolved key to document",
		slog.String("key", key),
		slog.String("document", w.handle.String()),
		slog.String("remainder", remainder))

	return resolution{segments: segments, handle: w.handle, doc: doc, remainder: remainder}, nil
}

// segments splits key, prefixed by the view prefix, into path segments.
func (r *Resolver) segments(key, delimiter string) ([]string, error) {
	parts := splitKey(normalizeScheme(key, delimiter), delimiter)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: %q has no segments", ErrInvalidName, key)
	}

	for _, part := range parts {
		if part == "." || part == ".." || strings.ContainsAny(part, `\`) {
			return nil, fmt.Errorf("%w: segment %q in %q", ErrInvalidName, part, key)
		}
	}

	segments := make([]string, 0, len(r.prefix)+len(parts))
	segments = append(segments, r.prefix...)

	return append(segments, parts...), nil
}

// walk descends from the root through containers. The first segment naming a
// document ends the walk; the first segment naming nothing ends it too, and the
// default document of the last container reached answers for the rest.
func (r *Resolver) walk(ctx context.Context, loc locator.Locator, segments []string) (walkResult, error) {
	base := loc.Root()

	for i, seg := range segments {
		kind, handle, err := r.locate(ctx, loc, base, seg)
		if err != nil {
			return walkResult{}, err
		}

		switch kind {
		case locator.Container:
			base = loc.Join(base, seg)
		case locator.Leaf:
			return walkResult{base: base, handle: handle, found: true, remainder: segments[i+1:], containers: false}, nil
		default:
			return r.fallback(ctx, loc, base, segments[i:], false)
		}
	}

	return r.fallback(ctx, loc, base, nil, true)
}

func (r *Resolver) fallback(ctx context.Context, loc locator.Locator, base string, rest []string, containers bool) (walkResult, error) {
	w := walkResult{base: base, remainder: rest, containers: containers} //nolint:exhaustruct // set below when found

	handle, ok, err := r.locateDocument(ctx, loc, loc.Join(base, DefaultDocument))
	if err != nil || !ok {
		return w, err
	}

	w.handle = handle
	w.found = true

	return w, nil
}

// locate classifies seg below base. A container wins over a document of the
// same name; documents are tried in registry priority order.
func (r *Resolver) locate(ctx context.Context, loc locator.Locator, base, seg string) (locator.Kind, locator.Handle, error) {
	bare := loc.Join(base, seg)

	kind, err := r.stat(ctx, loc, bare)
	if err != nil {
		return locator.Absent, locator.Handle{}, err
	}

	if kind == locator.Container {
		return locator.Container, locator.Handle{Protocol: loc.Protocol(), Location: bare}, nil
	}

	handle, ok, err := r.locateDocument(ctx, loc, bare)
	if err != nil || !ok {
		return locator.Absent, locator.Handle{}, err
	}

	return locator.Leaf, handle, nil
}

// locateDocument finds the first "<stem><ext>" document in registry order.
func (r *Resolver) locateDocument(ctx context.Context, loc locator.Locator, stem string) (locator.Handle, bool, error) {
	for _, ext := range r.shared.registry.Extensions() {
		candidate := stem + ext

		kind, err := loc.Stat(ctx, candidate)
		if err != nil {
			return locator.Handle{}, false, err
		}

		if kind != locator.Absent && kind != locator.Container {
			return locator.Handle{Protocol: loc.Protocol(), Location: candidate}, true, nil
		}
	}

	return locator.Handle{}, false, nil
}

// stat resolves Unknown kinds with the containment heuristic.
func (r *Resolver) stat(ctx context.Context, loc locator.Locator, location string) (locator.Kind, error) {
	kind, err := loc.Stat(ctx, location)
	if err != nil || kind != locator.Unknown {
		return kind, err
	}

	return r.probe(ctx, loc, location)
}

// probe decides whether a resource of unknown kind is a container. The outcome
// is remembered per resource.
func (r *Resolver) probe(ctx context.Context, loc locator.Locator, location string) (locator.Kind, error) {
	handle := locator.Handle{Protocol: loc.Protocol(), Location: location}

	if kind, ok := r.shared.probes.Load(handle.String()); ok {
		return kind.(locator.Kind), nil //nolint:forcetypeassert // only Kind values are stored
	}

	kind, err := r.classify(ctx, loc, location)
	if err != nil {
		return locator.Absent, err
	}

	r.shared.probes.Store(handle.String(), kind)
	r.shared.metrics.observeProbe(kind)

	return kind, nil
}

// classify fetches and parses the resource. Anything that does not read as a
// non-empty mapping of ordinary keys is treated as a container. Timeouts are
// reported, never classified.
func (r *Resolver) classify(ctx context.Context, loc locator.Locator, location string) (locator.Kind, error) {
	logger := slogcontext.FromCtx(ctx).With(slog.String("location", location))

	data, err := readProbe(ctx, loc, location)
	if errors.Is(err, ErrTimeout) {
		return locator.Absent, err
	}

	if err != nil {
		logger.Debug("treating unreadable resource as container", slog.Any("error", err))

		return locator.Container, nil
	}

	if mimetype.Detect(data).Is("text/html") {
		logger.Debug("treating html resource as container")

		return locator.Container, nil
	}

	doc, err := r.shared.registry.ForName(location).Parse(bytes.NewReader(data), DefaultDelimiter)
	if err != nil || doc.Len() == 0 {
		logger.Debug("treating unparsable resource as container", slog.Any("error", err))

		return locator.Container, nil
	}

	for _, key := range doc.Keys() {
		if !strings.HasPrefix(key, "<") {
			return locator.Leaf, nil
		}
	}

	logger.Debug("treating markup resource as container")

	return locator.Container, nil
}

func readProbe(ctx context.Context, loc locator.Locator, location string) ([]byte, error) {
	body, err := loc.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxProbeBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", location, err)
	}

	return data, nil
}

// load returns the parsed document behind handle, parsing it at most once per
// delimiter.
func (r *Resolver) load(ctx context.Context, loc locator.Locator, handle locator.Handle, delimiter string) (*document.Document, error) {
	key := handle.String() + "|" + delimiter

	doc, cached, err := r.shared.cache.Load(ctx, key, func(ctx context.Context) (*document.Document, error) {
		return r.parse(ctx, loc, handle, delimiter)
	})
	if err != nil {
		return nil, err
	}

	if cached {
		r.shared.metrics.CacheHits.Inc()
	}

	return doc, nil
}

func (r *Resolver) parse(ctx context.Context, loc locator.Locator, handle locator.Handle, delimiter string) (*document.Document, error) {
	body, err := loc.Open(ctx, handle.Location)
	if errors.Is(err, locator.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, handle)
	}

	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", handle, err)
	}

	name := r.shared.registry.Name(handle.Location)
	r.shared.metrics.Parses.WithLabelValues(name).Inc()

	doc, err := r.shared.registry.ForName(handle.Location).Parse(bytes.NewReader(data), delimiter)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailure, handle, err)
	}

	slogcontext.FromCtx(ctx).Debug("parsed document",
		slog.String("document", handle.String()),
		slog.String("format", name),
		slog.Int("keys", doc.Len()))

	return doc, nil
}
