// Package tables detects tables on document pages from vector drawing
// primitives, with text-alignment analysis as a last resort.
//
// # Detection pipeline
//
// Detection runs per page through a fallback ladder:
//
//  1. Line grid: drawing primitives are classified into horizontal and
//     vertical segments (rectangles contribute their four edges), clustered
//     into collinear groups, and paired into grid regions wherever the
//     groups cross often enough. Overlapping regions are merged, then each
//     region's coordinate boundaries define the cell grid.
//  2. Rectangle clusters: when too few line segments exist, explicit
//     cell-sized rectangles aligned on shared edges are grouped and their
//     corner coordinates define the grid.
//  3. Text alignment: x-positions recurring across enough text lines become
//     candidate columns; adjacent lines are grouped into rows and split
//     into cells at large horizontal gaps.
//
// Cell text is taken from the spans whose center falls inside the cell
// rectangle. Rows that are entirely blank are dropped, and a candidate only
// becomes a table once it meets the configured minimum row and column
// counts.
//
// # Configuration
//
// Detector behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.MinRows = 3
//	detector := tables.NewDetector(config, logger)
//	found, errs := detector.Detect(pages)
//
// A geometric failure on one page yields an [ExtractionError] for that page
// only; remaining pages are still processed.
package tables
