package tables

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/structura/model"
)

// segment is a normalized axis-aligned line segment: horizontal segments
// have X0 <= X1, vertical segments have Y0 <= Y1.
type segment struct {
	X0, Y0, X1, Y1 float64
}

// gridRegion is a rectangular area hypothesized to be a table, carrying the
// ruling segments that define its cell grid.
type gridRegion struct {
	bounds model.Rect
	hSegs  []segment
	vSegs  []segment
}

// extractSegments classifies drawing primitives into horizontal and vertical
// segments. Lines within tolerance of axis-aligned qualify; rectangles
// contribute their four edges.
func extractSegments(drawings []model.Drawing, tolerance float64) (hSegs, vSegs []segment) {
	for _, drawing := range drawings {
		switch drawing.Kind {
		case model.DrawingLine:
			x0, y0 := drawing.Start.X, drawing.Start.Y
			x1, y1 := drawing.End.X, drawing.End.Y

			if math.Abs(y1-y0) < tolerance {
				hSegs = append(hSegs, segment{math.Min(x0, x1), y0, math.Max(x0, x1), y1})
			} else if math.Abs(x1-x0) < tolerance {
				vSegs = append(vSegs, segment{x0, math.Min(y0, y1), x1, math.Max(y0, y1)})
			}
		case model.DrawingRect:
			r := drawing.Rect
			hSegs = append(hSegs,
				segment{r.X0, r.Y0, r.X1, r.Y0},
				segment{r.X0, r.Y1, r.X1, r.Y1})
			vSegs = append(vSegs,
				segment{r.X0, r.Y0, r.X0, r.Y1},
				segment{r.X1, r.Y0, r.X1, r.Y1})
		}
	}
	return hSegs, vSegs
}

// groupByPosition clusters segments whose position along the grouping axis
// lies within tolerance of the cluster's first member. Only clusters with at
// least two segments survive; a lone ruling is not evidence of a grid.
func groupByPosition(segs []segment, byY bool, tolerance float64) [][]segment {
	if len(segs) == 0 {
		return nil
	}

	pos := func(s segment) float64 {
		if byY {
			return s.Y0
		}
		return s.X0
	}

	sorted := make([]segment, len(segs))
	copy(sorted, segs)
	sort.Slice(sorted, func(i, j int) bool { return pos(sorted[i]) < pos(sorted[j]) })

	var groups [][]segment
	current := []segment{sorted[0]}
	currentPos := pos(sorted[0])

	for _, seg := range sorted[1:] {
		if math.Abs(pos(seg)-currentPos) <= tolerance {
			current = append(current, seg)
			continue
		}
		if len(current) >= 2 {
			groups = append(groups, current)
		}
		current = []segment{seg}
		currentPos = pos(seg)
	}
	if len(current) >= 2 {
		groups = append(groups, current)
	}
	return groups
}

// findRegions pairs row groups with column groups, keeps the pairs that
// cross often enough to form a grid, and merges overlapping regions.
func (d *Detector) findRegions(hSegs, vSegs []segment) []gridRegion {
	hGroups := groupByPosition(hSegs, true, d.config.LineTolerance)
	vGroups := groupByPosition(vSegs, false, d.config.LineTolerance)

	var regions []gridRegion
	for _, hGroup := range hGroups {
		for _, vGroup := range vGroups {
			if !d.isValidGrid(hGroup, vGroup) {
				continue
			}
			regions = append(regions, gridRegion{
				bounds: segmentExtent(hGroup, vGroup).Expand(d.config.TablePadding),
				hSegs:  hGroup,
				vSegs:  vGroup,
			})
		}
	}
	return d.mergeOverlapping(regions)
}

// isValidGrid reports whether the two groups cross at least
// min(len(hGroup), len(vGroup)) times within the intersection tolerance.
func (d *Detector) isValidGrid(hGroup, vGroup []segment) bool {
	if len(hGroup) < d.config.MinRows || len(vGroup) < d.config.MinCols {
		return false
	}

	tol := d.config.IntersectTolerance
	intersections := 0
	for _, h := range hGroup {
		for _, v := range vGroup {
			if h.X0-tol <= v.X0 && v.X0 <= h.X1+tol &&
				v.Y0-tol <= h.Y0 && h.Y0 <= v.Y1+tol {
				intersections++
			}
		}
	}

	required := len(hGroup)
	if len(vGroup) < required {
		required = len(vGroup)
	}
	return intersections >= required
}

// segmentExtent returns the bounding rectangle of all segments in both
// groups.
func segmentExtent(hSegs, vSegs []segment) model.Rect {
	first := true
	var r model.Rect
	for _, seg := range append(append([]segment(nil), hSegs...), vSegs...) {
		segRect := model.NewRect(seg.X0, seg.Y0, seg.X1, seg.Y1)
		if first {
			r = segRect
			first = false
			continue
		}
		r = r.Union(segRect)
	}
	return r
}

// mergeOverlapping sweeps regions in position order and merges any that
// overlap, unioning bounds and segment sets.
func (d *Detector) mergeOverlapping(regions []gridRegion) []gridRegion {
	if len(regions) == 0 {
		return nil
	}

	sort.Slice(regions, func(i, j int) bool {
		if regions[i].bounds.Y0 != regions[j].bounds.Y0 {
			return regions[i].bounds.Y0 < regions[j].bounds.Y0
		}
		return regions[i].bounds.X0 < regions[j].bounds.X0
	})

	merged := []gridRegion{regions[0]}
	for _, region := range regions[1:] {
		last := &merged[len(merged)-1]
		if last.bounds.Intersects(region.bounds) {
			last.bounds = last.bounds.Union(region.bounds)
			last.hSegs = append(last.hSegs, region.hSegs...)
			last.vSegs = append(last.vSegs, region.vSegs...)
		} else {
			merged = append(merged, region)
		}
	}
	return merged
}

// extractGridData builds the cell grid for one region and fills it with the
// page's span text. Rows that are entirely blank are dropped.
func (d *Detector) extractGridData(region gridRegion, spans []model.TextSpan) [][]string {
	ys := dedupeCoords(collectCoords(region.hSegs, true), d.config.LineTolerance)
	xs := dedupeCoords(collectCoords(region.vSegs, false), d.config.LineTolerance)
	if len(ys) < 2 || len(xs) < 2 {
		return nil
	}

	// Ruling segments that run past the last boundary close an implicit
	// final row or column; extend the grid to their extent.
	if maxY := maxCrossExtent(region.vSegs, true); maxY > ys[len(ys)-1]+d.config.LineTolerance {
		ys = append(ys, maxY)
	}
	if maxX := maxCrossExtent(region.hSegs, false); maxX > xs[len(xs)-1]+d.config.LineTolerance {
		xs = append(xs, maxX)
	}

	var data [][]string
	for i := 0; i < len(ys)-1; i++ {
		row := make([]string, 0, len(xs)-1)
		blank := true
		for j := 0; j < len(xs)-1; j++ {
			cell := model.NewRect(xs[j], ys[i], xs[j+1], ys[i+1])
			text := cellText(cell, spans)
			if text != "" {
				blank = false
			}
			row = append(row, text)
		}
		if !blank {
			data = append(data, row)
		}
	}
	return data
}

// collectCoords gathers each segment's position coordinate, sorted
// ascending.
func collectCoords(segs []segment, byY bool) []float64 {
	coords := make([]float64, 0, len(segs))
	for _, seg := range segs {
		if byY {
			coords = append(coords, seg.Y0)
		} else {
			coords = append(coords, seg.X0)
		}
	}
	sort.Float64s(coords)
	return coords
}

// dedupeCoords drops coordinates within tolerance of the previous kept one.
func dedupeCoords(coords []float64, tolerance float64) []float64 {
	if len(coords) == 0 {
		return nil
	}
	kept := []float64{coords[0]}
	for _, c := range coords[1:] {
		if c-kept[len(kept)-1] > tolerance {
			kept = append(kept, c)
		}
	}
	return kept
}

// maxCrossExtent returns the farthest reach of the segments along their run
// axis: max Y1 of vertical segments, or max X1 of horizontal ones.
func maxCrossExtent(segs []segment, byY bool) float64 {
	max := math.Inf(-1)
	for _, seg := range segs {
		v := seg.X1
		if byY {
			v = seg.Y1
		}
		if v > max {
			max = v
		}
	}
	return max
}

// cellText concatenates, in reading order, the spans whose center lies
// inside the cell rectangle.
func cellText(cell model.Rect, spans []model.TextSpan) string {
	var parts []string
	for _, span := range spans {
		if !cell.Contains(span.Bounds.Center()) {
			continue
		}
		if text := strings.TrimSpace(span.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
