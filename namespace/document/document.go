package document

import (
	"strings"
)

// Document is an immutable, ordered key to value mapping parsed from a single resource.
type Document struct {
	keys   []string
	values map[string][]string
}

// Builder accumulates key/value pairs into a Document.
// A Builder must not be used after Build.
type Builder struct {
	doc *Document
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		doc: &Document{
			keys:   nil,
			values: make(map[string][]string),
		},
	}
}

// Add appends value to key. Repeated keys keep every value in order.
func (b *Builder) Add(key, value string) {
	if _, exists := b.doc.values[key]; !exists {
		b.doc.keys = append(b.doc.keys, key)
	}

	b.doc.values[key] = append(b.doc.values[key], value)
}

// Len returns the number of distinct keys added so far.
func (b *Builder) Len() int {
	return len(b.doc.keys)
}

// Build returns the finished Document.
func (b *Builder) Build() *Document {
	doc := b.doc
	b.doc = nil

	return doc
}

// Len returns the number of distinct keys.
func (d *Document) Len() int {
	return len(d.keys)
}

// Keys returns the distinct keys in first-seen order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)

	return keys
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]

	return ok
}

// Lookup returns the value stored at key: a string for a single value,
// a []string for a repeated key.
func (d *Document) Lookup(key string) (any, bool) {
	vals, ok := d.values[key]
	if !ok {
		return nil, false
	}

	if len(vals) == 1 {
		return vals[0], true
	}

	list := make([]string, len(vals))
	copy(list, vals)

	return list, true
}

// Value returns the first value stored at key.
func (d *Document) Value(key string) (string, bool) {
	vals, ok := d.values[key]
	if !ok || len(vals) == 0 {
		return "", false
	}

	return vals[0], true
}

// Values returns a copy of every value stored at key.
func (d *Document) Values(key string) []string {
	vals := d.values[key]
	out := make([]string, len(vals))
	copy(out, vals)

	return out
}

// Subset returns the keys nested under prefix with the prefix and delimiter stripped.
// An empty prefix returns the document itself.
func (d *Document) Subset(prefix, delimiter string) *Document {
	if prefix == "" {
		return d
	}

	builder := NewBuilder()
	lead := prefix + delimiter

	for _, key := range d.keys {
		rest, ok := strings.CutPrefix(key, lead)
		if !ok || rest == "" {
			continue
		}

		for _, val := range d.values[key] {
			builder.Add(rest, val)
		}
	}

	return builder.Build()
}

// Children returns the distinct first segments of the keys nested under prefix,
// in first-seen order.
func (d *Document) Children(prefix, delimiter string) []string {
	seen := make(map[string]struct{})

	var names []string

	for _, key := range d.Subset(prefix, delimiter).keys {
		name, _, _ := strings.Cut(key, delimiter)
		if _, dup := seen[name]; dup {
			continue
		}

		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}
