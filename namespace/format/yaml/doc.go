// Package yaml parses YAML documents into flat, ordered keys.
//
// This package uses github.com/goccy/go-yaml with ordered maps so keys keep their
// declaration order. Nested mappings are joined with the namespace delimiter and
// sequences of scalars become lists:
//
//	config:
//	  value: 13
//	  multi:
//	    item: [one, two]
//
// yields "config.value" = "13" and "config.multi.item" = ["one", "two"].
package yaml
