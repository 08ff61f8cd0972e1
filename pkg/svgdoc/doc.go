// Package svgdoc is a small structural model of SVG documents.
//
// It parses a document into a mutable node tree that preserves prefixes,
// attribute order, comments and whitespace, so that addressed edits
// ("find element by id, replace inner run") round-trip without disturbing
// the rest of the markup.
package svgdoc
