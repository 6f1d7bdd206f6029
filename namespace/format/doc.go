// Package format maps resource file extensions to the parsers that turn them into documents.
//
// Every parser exposes the same capability: read a byte stream and produce an ordered
// key to string mapping (see the document package). Hierarchical formats join nested
// names with the delimiter of the namespace doing the lookup, so the same file parsed
// for two namespaces with different delimiters yields two different documents.
//
// The default registry tries extensions in this order, which is also the tie-break
// used when several files share a base name:
//
//	.xml         hierarchical markup  (format/xml)
//	.yaml        hierarchical markup  (format/yaml)
//	.ini         section based        (format/ini)
//	.properties  flat key=value       (format/properties)
//
// Resources whose name carries no known extension are read with the flat parser.
package format
