// Package structura converts low-level page primitives (positioned text
// spans, vector drawings, an optional outline) into a hierarchical document:
// nested sections with resolved contiguous page ranges, assigned body text,
// and geometrically detected tables.
//
// Basic usage:
//
//	doc, warnings, err := structura.Parse(source)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", structura.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := structura.Parse(source,
//	    structura.WithOutline(false),
//	    structura.WithMinHeadingFontSize(14))
//
// Structure building falls through a ladder: the supplied outline when
// present, then headings detected from font statistics, then a flat
// one-section-per-page layout. Unless the input is fundamentally empty, a
// parse always yields some structure; recoverable problems surface as
// [Warning] values, never as errors.
package structura

import (
	"github.com/tsawler/structura/model"
)

// Parse converts a source document into a resolved Document using a parser
// with the given options.
//
// Example:
//
//	doc, warnings, err := structura.Parse(source)
func Parse(src *model.SourceDocument, opts ...Option) (*model.Document, []Warning, error) {
	return NewParser(opts...).Parse(src)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := structura.Must(structura.NewParser().Parse(source))
func Must[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
