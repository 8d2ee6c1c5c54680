// Package pdfdoc reads PDF files into source documents ready for parsing.
//
// It adapts the ledongthuc/pdf reader: positioned character runs are merged
// into text spans with font attributes, and PDF's bottom-left origin is
// converted to the top-left origin the rest of the library uses. The
// underlying reader exposes neither vector graphics nor outline page
// destinations, so documents read through this package carry no drawings
// and no outline.
package pdfdoc
