package namespace

import (
	"errors"

	"github.com/0xalexb/hjarta-ns/namespace/convert"
	"github.com/0xalexb/hjarta-ns/namespace/locator"
)

// ErrNotFound is returned when a key has no bound entry, no resolvable document,
// or no value inside the resolved document.
var ErrNotFound = errors.New("name not found")

// ErrAlreadyBound is returned by Bind and Rename when the target key is taken.
var ErrAlreadyBound = errors.New("name already bound")

// ErrNotListable is returned by List when the prefix resolves to something
// other than a namespace.
var ErrNotListable = errors.New("name cannot be listed")

// ErrParseFailure is returned when a backing document is malformed.
var ErrParseFailure = errors.New("malformed document")

// ErrInvalidName is returned for empty or unusable keys on write operations,
// and for keys that do not split into any usable segment.
var ErrInvalidName = errors.New("invalid name")

// ErrUnsupportedProtocol is returned when a root names an unknown scheme.
var ErrUnsupportedProtocol = locator.ErrUnsupportedProtocol

// ErrTimeout is returned when a remote fetch exceeds its time bound.
// The lookup left no state behind and may be retried.
var ErrTimeout = locator.ErrTimeout

// ErrUnsupportedType is returned when a "<key>.type" marker names no converter.
var ErrUnsupportedType = convert.ErrUnsupportedType

// ErrInvalidValue is returned when a typed value does not parse as its type.
var ErrInvalidValue = convert.ErrInvalidValue
