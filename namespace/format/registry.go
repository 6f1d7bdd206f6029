package format

import (
	"io"
	"path"
	"strings"
	"sync"

	"github.com/0xalexb/hjarta-ns/namespace/document"
	"github.com/0xalexb/hjarta-ns/namespace/format/ini"
	"github.com/0xalexb/hjarta-ns/namespace/format/properties"
	"github.com/0xalexb/hjarta-ns/namespace/format/xml"
	"github.com/0xalexb/hjarta-ns/namespace/format/yaml"
)

// Parser turns a byte stream into a document. Nested names are joined with delimiter.
type Parser interface {
	Parse(r io.Reader, delimiter string) (*document.Document, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(r io.Reader, delimiter string) (*document.Document, error)

// Parse calls f.
func (f ParserFunc) Parse(r io.Reader, delimiter string) (*document.Document, error) {
	return f(r, delimiter)
}

// Registry maps extensions to parsers. Extensions keep their registration order,
// which is the order the resolver probes them in.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	parsers  map[string]Parser
	fallback Parser
}

// NewRegistry creates an empty registry that reads unknown extensions with fallback.
func NewRegistry(fallback Parser) *Registry {
	return &Registry{
		order:    nil,
		parsers:  make(map[string]Parser),
		fallback: fallback,
	}
}

// Default returns a registry with the built-in formats in priority order.
func Default() *Registry {
	flat := properties.NewParser()

	reg := NewRegistry(flat)
	reg.Register(".xml", xml.NewParser())
	reg.Register(".yaml", yaml.NewParser())
	reg.Register(".ini", ini.NewParser())
	reg.Register(".properties", flat)

	return reg
}

// Register binds ext (with or without the leading dot) to p. Registering an
// extension again replaces its parser and keeps its position.
func (r *Registry) Register(ext string, p Parser) {
	ext = normalizeExt(ext)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parsers[ext]; !exists {
		r.order = append(r.order, ext)
	}

	r.parsers[ext] = p
}

// Extensions returns the registered extensions in probe order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, len(r.order))
	copy(exts, r.order)

	return exts
}

// Lookup returns the parser registered for ext.
func (r *Registry) Lookup(ext string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.parsers[normalizeExt(ext)]

	return p, ok
}

// ForName picks the parser for a resource name by its extension,
// falling back to the flat parser.
func (r *Registry) ForName(name string) Parser {
	if p, ok := r.Lookup(path.Ext(name)); ok {
		return p
	}

	return r.Fallback()
}

// Fallback returns the parser used for unknown extensions.
func (r *Registry) Fallback() Parser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.fallback
}

// Name returns the format label of a resource name: its extension without
// the dot, or "flat" when the extension is not registered.
func (r *Registry) Name(name string) string {
	ext := path.Ext(name)
	if _, ok := r.Lookup(ext); ok {
		return strings.TrimPrefix(strings.ToLower(ext), ".")
	}

	return "flat"
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return ext
}
