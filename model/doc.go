// Package model defines the value types shared by the structure synthesis
// pipeline: the source primitives handed over by a page/content provider
// (text spans, drawing primitives, outline entries) and the resolved output
// tree (Document, Section, Table).
//
// All types are plain value records. Validation that the original data may
// violate (page ordering, ragged table rows, malformed outline entries) is
// performed by explicit normalization functions rather than by constructors,
// so construction stays order-independent and testable in isolation.
//
// Coordinates follow the source primitives: x grows rightward, y grows
// downward, and every rectangle satisfies x0 <= x1 and y0 <= y1 after
// canonicalization.
package model
