package xml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/0xalexb/hjarta-ns/namespace/document"
)

// ErrUnbalanced is returned when the element structure does not close properly.
var ErrUnbalanced = errors.New("unbalanced xml elements")

// Parser implements format.Parser for XML documents.
type Parser struct{}

// NewParser creates a new XML parser.
func NewParser() *Parser {
	return &Parser{}
}

type frame struct {
	path string
	text strings.Builder
}

// Parse streams r token by token and flattens elements using delimiter.
func (p *Parser) Parse(r io.Reader, delimiter string) (*document.Document, error) {
	decoder := xml.NewDecoder(r)
	builder := document.NewBuilder()

	var stack []*frame

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("parsing xml document: %w", err)
		}

		switch elem := tok.(type) {
		case xml.StartElement:
			name := elem.Name.Local
			if len(stack) > 0 {
				name = stack[len(stack)-1].path + delimiter + name
			}

			for _, attr := range elem.Attr {
				builder.Add(name+delimiter+attr.Name.Local, attr.Value)
			}

			stack = append(stack, &frame{path: name}) //nolint:exhaustruct // text starts empty
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(elem)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, ErrUnbalanced
			}

			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if text := strings.TrimSpace(top.text.String()); text != "" {
				builder.Add(top.path, text)
			}
		}
	}

	if len(stack) != 0 {
		return nil, ErrUnbalanced
	}

	return builder.Build(), nil
}
