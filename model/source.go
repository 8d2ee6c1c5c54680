package model

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// TextSpan is a positioned run of text on a page, produced once by the page
// provider and immutable thereafter.
type TextSpan struct {
	Text     string
	Bounds   Rect
	FontSize float64
	Bold     bool
	Italic   bool
	Page     int // 1-indexed
}

// DrawingKind distinguishes the two vector primitive shapes.
type DrawingKind int

const (
	DrawingLine DrawingKind = iota
	DrawingRect
)

// Drawing is a vector drawing primitive: a line segment between Start and
// End, or a rectangle. Orientation is always derived from geometry, never
// stored.
type Drawing struct {
	Kind  DrawingKind
	Start Point // line endpoints (DrawingLine only)
	End   Point
	Rect  Rect // rectangle bounds (DrawingRect only)
}

// LineDrawing creates a line primitive.
func LineDrawing(start, end Point) Drawing {
	return Drawing{Kind: DrawingLine, Start: start, End: end}
}

// RectDrawing creates a rectangle primitive with canonical corners.
func RectDrawing(x0, y0, x1, y1 float64) Drawing {
	return Drawing{Kind: DrawingRect, Rect: NewRect(x0, y0, x1, y1)}
}

// OutlineEntry is one externally supplied navigation entry.
type OutlineEntry struct {
	Level int
	Title string
	Page  int // 1-indexed
}

// SourcePage carries the primitives extracted from one page.
type SourcePage struct {
	Number   int // 1-indexed
	Spans    []TextSpan
	Drawings []Drawing
}

// SourceDocument is the complete provider hand-off for one parse: per-page
// primitives, an optional outline, the page count, and optional title
// metadata.
type SourceDocument struct {
	Title     string
	PageCount int
	Pages     []SourcePage
	Outline   []OutlineEntry
}

// SpansByPage groups spans by page number, each page's spans sorted in
// reading order (top to bottom, then left to right). Providers are expected
// to deliver spans pre-sorted; sorting here keeps downstream components
// deterministic either way.
func (d *SourceDocument) SpansByPage() map[int][]TextSpan {
	byPage := make(map[int][]TextSpan)
	for _, page := range d.Pages {
		for _, span := range page.Spans {
			byPage[span.Page] = append(byPage[span.Page], span)
		}
	}
	for _, spans := range byPage {
		sort.SliceStable(spans, func(i, j int) bool {
			if spans[i].Bounds.Y0 != spans[j].Bounds.Y0 {
				return spans[i].Bounds.Y0 < spans[j].Bounds.Y0
			}
			return spans[i].Bounds.X0 < spans[j].Bounds.X0
		})
	}
	return byPage
}

// SpanCount returns the total number of spans across all pages.
func (d *SourceDocument) SpanCount() int {
	n := 0
	for _, page := range d.Pages {
		n += len(page.Spans)
	}
	return n
}

// DrawingCount returns the total number of drawing primitives.
func (d *SourceDocument) DrawingCount() int {
	n := 0
	for _, page := range d.Pages {
		n += len(page.Drawings)
	}
	return n
}

// NormalizeTitle returns the NFC-normalized, whitespace-trimmed form of a
// title or span text. All literal title comparisons in the pipeline go
// through this so that provider and outline encodings agree.
func NormalizeTitle(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// NormalizeOutline validates and coerces raw outline entries. Levels below 1
// are coerced to 1; entries with a blank title or a page outside
// [1, totalPages] are dropped. Invalid entries are never propagated raw. The
// returned messages describe each drop or coercion for warning reporting.
func NormalizeOutline(entries []OutlineEntry, totalPages int) ([]OutlineEntry, []string) {
	if len(entries) == 0 {
		return nil, nil
	}

	valid := make([]OutlineEntry, 0, len(entries))
	var messages []string

	for i, entry := range entries {
		title := NormalizeTitle(entry.Title)
		if title == "" {
			messages = append(messages, fmt.Sprintf("outline entry %d: blank title, dropped", i))
			continue
		}
		if entry.Page < 1 || entry.Page > totalPages {
			messages = append(messages, fmt.Sprintf("outline entry %d (%q): page %d outside [1, %d], dropped", i, title, entry.Page, totalPages))
			continue
		}
		level := entry.Level
		if level < 1 {
			messages = append(messages, fmt.Sprintf("outline entry %d (%q): level %d coerced to 1", i, title, level))
			level = 1
		}
		valid = append(valid, OutlineEntry{Level: level, Title: title, Page: entry.Page})
	}

	return valid, messages
}
