package yaml

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/hjarta-ns/namespace/document"
)

// ErrNotMapping is returned when the document root is not a mapping.
var ErrNotMapping = errors.New("yaml document root must be a mapping")

// Parser implements format.Parser for YAML data.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes r with ordered maps and flattens it using delimiter.
// An empty document parses to an empty mapping.
func (p *Parser) Parse(r io.Reader, delimiter string) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading yaml document: %w", err)
	}

	var root any

	err = yaml.UnmarshalWithOptions(data, &root, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	builder := document.NewBuilder()

	switch node := root.(type) {
	case nil:
	case yaml.MapSlice:
		flatten(builder, "", node, delimiter)
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, root)
	}

	return builder.Build(), nil
}

func flatten(builder *document.Builder, path string, node any, delimiter string) {
	switch val := node.(type) {
	case yaml.MapSlice:
		for _, item := range val {
			key := fmt.Sprint(item.Key)
			if path != "" {
				key = path + delimiter + key
			}

			flatten(builder, key, item.Value, delimiter)
		}
	case []any:
		for _, elem := range val {
			flatten(builder, path, elem, delimiter)
		}
	case nil:
		builder.Add(path, "")
	default:
		builder.Add(path, fmt.Sprint(val))
	}
}
