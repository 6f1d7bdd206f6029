package ini

import (
	"fmt"
	"io"

	goini "gopkg.in/ini.v1"

	"github.com/0xalexb/hjarta-ns/namespace/document"
)

// Parser implements format.Parser for section-based documents.
type Parser struct{}

// NewParser creates a new section-based parser.
func NewParser() *Parser {
	return &Parser{}
}

// LoadOptions are the ini.v1 settings shared by the section-based and flat parsers.
// Shadows are kept, including duplicate values, so repeated keys become ordered lists.
func LoadOptions() goini.LoadOptions {
	return goini.LoadOptions{ //nolint:exhaustruct // remaining options keep library defaults
		AllowShadows:               true,
		AllowDuplicateShadowValues: true,
		IgnoreInlineComment:        true,
		KeyValueDelimiters:         "=:",
	}
}

// Parse reads r and flattens its sections using delimiter.
func (p *Parser) Parse(r io.Reader, delimiter string) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading ini document: %w", err)
	}

	file, err := goini.LoadSources(LoadOptions(), data)
	if err != nil {
		return nil, fmt.Errorf("parsing ini document: %w", err)
	}

	builder := document.NewBuilder()

	for _, section := range file.Sections() {
		prefix := ""
		if section.Name() != goini.DefaultSection {
			prefix = section.Name() + delimiter
		}

		AddKeys(builder, prefix, section)
	}

	return builder.Build(), nil
}

// AddKeys copies every key of section into builder, prefixing names with prefix.
func AddKeys(builder *document.Builder, prefix string, section *goini.Section) {
	for _, key := range section.Keys() {
		name := prefix + key.Name()

		values := key.ValueWithShadows()
		if len(values) == 0 {
			builder.Add(name, "")

			continue
		}

		for _, val := range values {
			builder.Add(name, val)
		}
	}
}
