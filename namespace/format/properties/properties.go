package properties

import (
	"errors"
	"fmt"
	"io"

	goini "gopkg.in/ini.v1"

	"github.com/0xalexb/hjarta-ns/namespace/document"
	"github.com/0xalexb/hjarta-ns/namespace/format/ini"
)

// ErrSectionNotAllowed is returned when a flat document declares a section.
var ErrSectionNotAllowed = errors.New("sections are not allowed in a flat document")

// Parser implements format.Parser for flat key=value documents.
type Parser struct{}

// NewParser creates a new flat parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads r into a document. The delimiter is unused: flat keys are taken verbatim.
func (p *Parser) Parse(r io.Reader, _ string) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading properties document: %w", err)
	}

	file, err := goini.LoadSources(ini.LoadOptions(), data)
	if err != nil {
		return nil, fmt.Errorf("parsing properties document: %w", err)
	}

	builder := document.NewBuilder()

	for _, section := range file.Sections() {
		if section.Name() != goini.DefaultSection {
			return nil, fmt.Errorf("%w: [%s]", ErrSectionNotAllowed, section.Name())
		}

		ini.AddKeys(builder, "", section)
	}

	return builder.Build(), nil
}
