// Package properties parses flat key=value documents.
//
// Lines are "key=value" or "key: value"; "#" and ";" start comments. A key that is
// declared more than once yields a list of its values in declaration order. Section
// headers are not part of the flat format and are rejected.
package properties
