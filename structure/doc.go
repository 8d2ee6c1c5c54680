// Package structure turns classified page primitives into a section tree:
// corpus-wide font statistics, heading classification, outline- and
// heading-based tree assembly, and contiguous page range resolution.
package structure
