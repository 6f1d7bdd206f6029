// Package document holds parsed configuration documents and the cache that keeps them.
//
// A Document is the ordered key to value mapping produced by one format parser from one
// backing resource. Keys keep their first-seen order; a key that appears more than once
// collects all of its values in declaration order and is reported as a list.
//
// Documents are immutable once built, so a single instance is shared by every lookup
// (and every scoped view) that resolves to the same resource. The Cache deduplicates
// concurrent first loads of the same resource and bounds the number of kept documents.
package document
