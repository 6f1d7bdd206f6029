package namespace

import (
	"strings"

	"github.com/google/uuid"

	"github.com/0xalexb/hjarta-ns/namespace/document"
	"github.com/0xalexb/hjarta-ns/namespace/locator"
)

// Composite is a structured resource assembled from the keys of a document
// sharing one prefix, such as a data source described by url, user and password.
type Composite struct {
	id     string
	name   string
	prefix string
	source locator.Handle
	attrs  *document.Document
}

// ID returns an identity that is stable for the same document and prefix.
func (c *Composite) ID() string { return c.id }

// Name returns the last segment of the prefix, or the empty string for a
// composite spanning a whole document.
func (c *Composite) Name() string { return c.name }

// Prefix returns the key prefix inside the source document.
func (c *Composite) Prefix() string { return c.prefix }

// Source returns the document the composite was read from.
func (c *Composite) Source() locator.Handle { return c.source }

// Get returns the first value of attr.
func (c *Composite) Get(attr string) (string, bool) {
	return c.attrs.Value(attr)
}

// Values returns every value of attr.
func (c *Composite) Values(attr string) []string {
	return c.attrs.Values(attr)
}

// Attributes returns the attribute names in document order.
func (c *Composite) Attributes() []string {
	return c.attrs.Keys()
}

// String implements fmt.Stringer.
func (c *Composite) String() string {
	if c.prefix == "" {
		return c.source.String()
	}

	return c.source.String() + "#" + c.prefix
}

// composite builds a Composite when the resolved remainder marks one.
func (r *Resolver) composite(res resolution, delimiter string) *Composite {
	if !r.isComposite(res.doc, res.remainder, delimiter) {
		return nil
	}

	attrs := res.doc.Subset(res.remainder, delimiter)
	if res.remainder == "" {
		attrs = without(attrs, CompositeFlag)
	}

	name := res.remainder
	if idx := strings.LastIndex(name, delimiter); idx >= 0 {
		name = name[idx+len(delimiter):]
	}

	return &Composite{
		id:     uuid.NewSHA1(uuid.NameSpaceURL, []byte(res.handle.String()+"#"+res.remainder)).String(),
		name:   name,
		prefix: res.remainder,
		source: res.handle,
		attrs:  attrs,
	}
}

// isComposite reports whether remainder names a composite: either its type
// marker equals the configured marker, or the document carries the composite
// flag and remainder is a prefix rather than a value.
func (r *Resolver) isComposite(doc *document.Document, remainder, delimiter string) bool {
	typeKey := TypeSuffix
	if remainder != "" {
		typeKey = remainder + delimiter + TypeSuffix
	}

	if marker, ok := doc.Value(typeKey); ok && strings.EqualFold(marker, r.shared.marker) {
		return true
	}

	if flag, ok := doc.Value(CompositeFlag); !ok || !strings.EqualFold(flag, "true") {
		return false
	}

	if remainder == "" {
		return true
	}

	return !doc.Has(remainder) && doc.Subset(remainder, delimiter).Len() > 0
}

func without(doc *document.Document, key string) *document.Document {
	if !doc.Has(key) {
		return doc
	}

	builder := document.NewBuilder()

	for _, k := range doc.Keys() {
		if k == key {
			continue
		}

		for _, val := range doc.Values(k) {
			builder.Add(k, val)
		}
	}

	return builder.Build()
}
