package convert

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

// ErrUnsupportedType is returned when no converter is registered for a type name.
var ErrUnsupportedType = errors.New("unsupported type")

// ErrInvalidValue is returned when a value cannot be converted to the requested type.
var ErrInvalidValue = errors.New("invalid value")

// ErrInvalidInput is returned when the raw value is neither a string nor a list of strings.
var ErrInvalidInput = errors.New("raw value must be a string or a list of strings")

// Func converts one raw string.
type Func func(raw string) (any, error)

// Converter holds the named conversion functions.
type Converter struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// New returns a Converter with the built-in types registered.
func New() *Converter {
	conv := &Converter{funcs: make(map[string]Func)}

	conv.Register(parseString, "string")
	conv.Register(intOf(0), "int", "integer")
	conv.Register(intOf(8), "int8", "byte")
	conv.Register(intOf(16), "int16", "short")
	conv.Register(intOf(32), "int32")
	conv.Register(intOf(64), "int64", "long")
	conv.Register(parseUint, "uint")
	conv.Register(floatOf(32), "float32", "float")
	conv.Register(floatOf(64), "float64", "double")
	conv.Register(parseBool, "bool", "boolean")
	conv.Register(parseDuration, "duration")
	conv.Register(parseTime, "time", "date")
	conv.Register(parseURL, "url")
	conv.Register(parseSemver, "semver", "version")
	conv.Register(parseUUID, "uuid")

	return conv
}

// Register binds fn to every given type name, replacing previous bindings.
func (c *Converter) Register(fn Func, names ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range names {
		c.funcs[strings.ToLower(name)] = fn
	}
}

// Supports reports whether typeName has a converter.
func (c *Converter) Supports(typeName string) bool {
	_, ok := c.lookup(typeName)

	return ok
}

// Convert coerces raw, a string or a []string, into typeName.
// A list converts to a []any of the same length and order.
func (c *Converter) Convert(raw any, typeName string) (any, error) {
	fn, ok := c.lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, typeName)
	}

	switch val := raw.(type) {
	case string:
		return apply(fn, val, typeName)
	case []string:
		out := make([]any, len(val))

		for i, elem := range val {
			converted, err := apply(fn, elem, typeName)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}

			out[i] = converted
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidInput, raw)
	}
}

func (c *Converter) lookup(typeName string) (Func, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fn, ok := c.funcs[strings.ToLower(strings.TrimSpace(typeName))]

	return fn, ok
}

func apply(fn Func, raw, typeName string) (any, error) {
	val, err := fn(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %q as %s: %w", ErrInvalidValue, raw, typeName, err)
	}

	return val, nil
}

func parseString(raw string) (any, error) {
	return raw, nil
}

func intOf(bits int) Func {
	return func(raw string) (any, error) {
		n, err := strconv.ParseInt(raw, 10, bits)
		if err != nil {
			return nil, err //nolint:wrapcheck // wrapped by apply
		}

		switch bits {
		case 8:
			return int8(n), nil
		case 16:
			return int16(n), nil
		case 32:
			return int32(n), nil
		case 64:
			return n, nil
		default:
			return int(n), nil
		}
	}
}

func parseUint(raw string) (any, error) {
	n, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by apply
	}

	return uint(n), nil
}

func floatOf(bits int) Func {
	return func(raw string) (any, error) {
		f, err := strconv.ParseFloat(raw, bits)
		if err != nil {
			return nil, err //nolint:wrapcheck // wrapped by apply
		}

		if bits == 32 {
			return float32(f), nil
		}

		return f, nil
	}
}

func parseBool(raw string) (any, error) {
	switch strings.ToLower(raw) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by apply
	}

	return b, nil
}

func parseDuration(raw string) (any, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by apply
	}

	return d, nil
}

func parseTime(raw string) (any, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}

	ts, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by apply
	}

	return ts, nil
}

func parseURL(raw string) (any, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by apply
	}

	return u, nil
}

func parseSemver(raw string) (any, error) {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by apply
	}

	return v, nil
}

func parseUUID(raw string) (any, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by apply
	}

	return id, nil
}
