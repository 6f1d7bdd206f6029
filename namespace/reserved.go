package namespace

import (
	"fmt"
	"strings"

	"github.com/0xalexb/hjarta-ns/namespace/locator"
)

// Reserved keys configure a view instead of naming an entry.
const (
	RootKey      = "hjarta.ns.root"
	DelimiterKey = "hjarta.ns.delimiter"
)

// Document conventions.
const (
	// DefaultDocument is the base name of the document consulted when a
	// walk ends inside a container.
	DefaultDocument = "default"
	// TypeSuffix is the final segment of a key naming the type of its sibling value.
	TypeSuffix = "type"
	// CompositeFlag marks a whole document as one composite resource when "true".
	CompositeFlag = "is-composite"
	// DefaultCompositeMarker is the "<key>.type" value that marks a composite.
	DefaultCompositeMarker = "datasource"
)

func isReserved(key string) bool {
	return key == RootKey || key == DelimiterKey
}

func (r *Resolver) rootLocked() string {
	if root, ok := r.reserved[RootKey]; ok {
		return root
	}

	return r.root
}

func (r *Resolver) delimiterLocked() string {
	if delim, ok := r.reserved[DelimiterKey]; ok {
		return delim
	}

	return r.delimiter
}

//nolint:ireturn // the locator depends on the configured protocol
func (r *Resolver) locatorLocked() locator.Locator {
	if r.override != nil {
		return r.override
	}

	return r.loc
}

func (r *Resolver) reservedLocked(key string) string {
	if key == RootKey {
		return r.rootLocked()
	}

	return r.delimiterLocked()
}

func (r *Resolver) setReservedLocked(key string, value any) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %s takes a string, got %T", ErrInvalidName, key, value)
	}

	switch key {
	case DelimiterKey:
		if str == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidName, key)
		}
	case RootKey:
		loc, err := locator.New(str, r.shared.locatorOpts...)
		if err != nil {
			return fmt.Errorf("overriding root %q: %w", str, err)
		}

		r.override = loc
	}

	r.reserved[key] = str

	return nil
}

func (r *Resolver) resetReservedLocked(key string) {
	delete(r.reserved, key)

	if key == RootKey {
		r.override = nil
	}
}

// normalizeScheme rewrites a leading "scheme:" into an ordinary first segment
// when the colon ends the key or is followed by "/" or the delimiter, so
// "java:", "java:/comp" and "java:.comp" read as "java" and "java<delim>comp".
// Any other colon, as in "host:8080", is part of the segment.
func normalizeScheme(key, delimiter string) string {
	idx := strings.Index(key, ":")
	if idx <= 0 || strings.Contains(key[:idx], delimiter) || !isSchemeName(key[:idx]) {
		return key
	}

	scheme, after := key[:idx], key[idx+1:]

	switch {
	case after == "":
		return scheme
	case strings.HasPrefix(after, "/"):
		rest := strings.TrimPrefix(after, "/")
		if rest == "" {
			return scheme
		}

		if strings.HasPrefix(rest, delimiter) {
			return scheme + rest
		}

		return scheme + delimiter + rest
	case strings.HasPrefix(after, delimiter):
		return scheme + after
	default:
		return key
	}
}

func isSchemeName(name string) bool {
	for i, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == '_' || c == '+'):
		default:
			return false
		}
	}

	return true
}

// splitKey splits key on delimiter, dropping empty segments.
func splitKey(key, delimiter string) []string {
	parts := strings.Split(key, delimiter)
	segments := parts[:0]

	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}

	return segments
}
