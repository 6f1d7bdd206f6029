package namespace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/0xalexb/hjarta-ns/namespace/locator"
)

// Kinds of backing entries reported by List.
const (
	KindNamespace = "namespace"
	KindDocument  = "document"
	KindValue     = "value"
)

// Entry is one name reported by List. Direct entries carry the Go type of
// their value as Kind; backing entries carry KindNamespace, KindDocument or
// KindValue.
type Entry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// List enumerates the names below prefix. With an empty prefix it reports the
// direct entries of this view followed by whatever the backing store holds at
// the view's position. Backing entries are best-effort: only a timeout fails
// the listing, other backing errors leave just the direct entries. A non-empty
// prefix is looked up first and must resolve to a namespace.
func (r *Resolver) List(ctx context.Context, prefix string) ([]Entry, error) {
	if prefix != "" {
		val, err := r.Lookup(ctx, prefix)
		if err != nil {
			return nil, err
		}

		sub, ok := val.(*Resolver)
		if !ok {
			return nil, fmt.Errorf("%w: %s is a %T", ErrNotListable, prefix, val)
		}

		return sub.List(ctx, "")
	}

	r.mu.RLock()
	delimiter := r.delimiterLocked()
	loc := r.locatorLocked()
	entries := make([]Entry, 0, len(r.entries))

	for name, val := range r.entries {
		entries = append(entries, Entry{Name: name, Kind: fmt.Sprintf("%T", val)})
	}
	r.mu.RUnlock()

	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })

	backed, err := r.backingEntries(ctx, loc, delimiter)
	if errors.Is(err, ErrTimeout) {
		return nil, err
	}

	if err != nil {
		// direct entries are still listable when the backing store is unreachable
		slogcontext.FromCtx(ctx).DebugContext(ctx, "skipping backing entries",
			slog.String("prefix", strings.Join(r.prefix, delimiter)),
			slog.Any("error", err))
	}

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		seen[entry.Name] = struct{}{}
	}

	for _, entry := range backed {
		if _, dup := seen[entry.Name]; dup {
			continue
		}

		seen[entry.Name] = struct{}{}
		entries = append(entries, entry)
	}

	return entries, nil
}

// ListMatching is List filtered by a glob pattern on entry names.
func (r *Resolver) ListMatching(ctx context.Context, prefix, pattern string) ([]Entry, error) {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalidName, pattern, err)
	}

	entries, err := r.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(entries, func(entry Entry) bool {
		return !matcher.Match(entry.Name)
	}), nil
}

// backingEntries reports the containers, documents and document keys found at
// the view prefix.
func (r *Resolver) backingEntries(ctx context.Context, loc locator.Locator, delimiter string) ([]Entry, error) {
	w, err := r.walk(ctx, loc, r.prefix)
	if err != nil {
		return nil, err
	}

	var entries []Entry

	if w.containers {
		entries, err = r.containerEntries(ctx, loc, w.base)
		if err != nil {
			return nil, err
		}
	}

	if !w.found {
		return entries, nil
	}

	doc, err := r.load(ctx, loc, w.handle, delimiter)
	if err != nil {
		return nil, err
	}

	remainder := strings.Join(w.remainder, delimiter)

	for _, child := range doc.Children(remainder, delimiter) {
		key := child
		if remainder != "" {
			key = remainder + delimiter + child
		}

		kind := KindNamespace
		if doc.Has(key) {
			kind = KindValue
		}

		entries = append(entries, Entry{Name: child, Kind: kind})
	}

	return entries, nil
}

func (r *Resolver) containerEntries(ctx context.Context, loc locator.Locator, base string) ([]Entry, error) {
	lister, ok := loc.(locator.Lister)
	if !ok {
		return nil, nil
	}

	children, err := lister.List(ctx, base)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(children))

	for _, child := range children {
		if child.Kind == locator.Container {
			entries = append(entries, Entry{Name: child.Name, Kind: KindNamespace})

			continue
		}

		ext := path.Ext(child.Name)
		if _, registered := r.shared.registry.Lookup(ext); !registered {
			continue
		}

		stem := strings.TrimSuffix(child.Name, ext)
		if stem == DefaultDocument {
			continue
		}

		entries = append(entries, Entry{Name: stem, Kind: KindDocument})
	}

	return entries, nil
}
