package tables

import (
	"math"
	"sort"

	"github.com/tsawler/structura/model"
)

// detectRectangleTables finds tables drawn as explicit cell rectangles
// rather than ruling lines. Cell-sized rectangles are clustered by shared
// or adjoining edges and each cluster's corner coordinates define the grid.
func (d *Detector) detectRectangleTables(page model.SourcePage) []model.Table {
	var cells []model.Rect
	for _, drawing := range page.Drawings {
		if drawing.Kind != model.DrawingRect {
			continue
		}
		r := drawing.Rect
		if r.Width() >= d.config.MinCellWidth && r.Height() >= d.config.MinCellHeight {
			cells = append(cells, r)
		}
	}
	if len(cells) < d.config.MinRows*d.config.MinCols {
		return nil
	}

	var tables []model.Table
	for _, group := range d.groupRectangles(cells) {
		data := d.extractRectData(group, page.Spans)
		if len(data) < d.config.MinRows || len(data[0]) < d.config.MinCols {
			continue
		}

		bounds := group[0]
		for _, r := range group[1:] {
			bounds = bounds.Union(r)
		}
		tables = append(tables, model.Table{
			Page:   page.Number,
			Bounds: bounds.Expand(d.config.TablePadding),
			Data:   data,
		})
	}
	return tables
}

// groupRectangles clusters rectangles transitively by edge alignment. Only
// clusters large enough to hold a minimum grid survive.
func (d *Detector) groupRectangles(rects []model.Rect) [][]model.Rect {
	var groups [][]model.Rect
	visited := make([]bool, len(rects))

	for i := range rects {
		if visited[i] {
			continue
		}
		group := []model.Rect{rects[i]}
		visited[i] = true

		for j := range rects {
			if visited[j] {
				continue
			}
			if d.alignedWithGroup(rects[j], group) {
				group = append(group, rects[j])
				visited[j] = true
			}
		}

		if len(group) >= d.config.MinRows*d.config.MinCols {
			groups = append(groups, group)
		}
	}
	return groups
}

// alignedWithGroup reports whether a rectangle shares or adjoins an edge
// with any rectangle in the group, on either axis.
func (d *Detector) alignedWithGroup(rect model.Rect, group []model.Rect) bool {
	tol := d.config.LineTolerance
	near := func(a, b float64) bool { return math.Abs(a-b) < tol }

	for _, r := range group {
		yAligned := near(rect.Y0, r.Y0) || near(rect.Y1, r.Y1) ||
			near(rect.Y0, r.Y1) || near(rect.Y1, r.Y0)
		xAligned := near(rect.X0, r.X0) || near(rect.X1, r.X1) ||
			near(rect.X0, r.X1) || near(rect.X1, r.X0)
		if xAligned || yAligned {
			return true
		}
	}
	return false
}

// extractRectData builds the grid from the cluster's corner coordinates and
// fills cells from the page spans. Blank rows are dropped.
func (d *Detector) extractRectData(group []model.Rect, spans []model.TextSpan) [][]string {
	var xs, ys []float64
	for _, r := range group {
		xs = append(xs, r.X0, r.X1)
		ys = append(ys, r.Y0, r.Y1)
	}
	sort.Float64s(xs)
	sort.Float64s(ys)
	xs = dedupeCoords(xs, d.config.LineTolerance)
	ys = dedupeCoords(ys, d.config.LineTolerance)
	if len(xs) < 2 || len(ys) < 2 {
		return nil
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
