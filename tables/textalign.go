package tables

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tsawler/structura/model"
)

// detectTextTables is the last-resort detector: it looks for tabular text
// with no ruling lines at all, using x-positions that recur across many
// lines as evidence of columns.
func (d *Detector) detectTextTables(page model.SourcePage) []model.Table {
	spansByLine := make(map[float64][]model.TextSpan)
	for _, span := range page.Spans {
		spansByLine[span.Bounds.Y0] = append(spansByLine[span.Bounds.Y0], span)
	}
	if len(spansByLine) == 0 {
		return nil
	}

	// Bucket span x-positions on lines that hold enough spans; a bucket
	// recurring across enough distinct lines marks a column.
	linesByBucket := make(map[float64]map[float64]bool)
	for lineY, spans := range spansByLine {
		if len(spans) < d.config.MinCols {
			continue
		}
		for _, span := range spans {
			bucket := math.Round(span.Bounds.X0/5) * 5
			if linesByBucket[bucket] == nil {
				linesByBucket[bucket] = make(map[float64]bool)
			}
			linesByBucket[bucket][lineY] = true
		}
	}

	columns := 0
	for _, lines := range linesByBucket {
		if len(lines) >= d.config.MinRows {
			columns++
		}
	}
	if columns < d.config.MinCols {
		return nil
	}

	lineYs := make([]float64, 0, len(spansByLine))
	for y := range spansByLine {
		lineYs = append(lineYs, y)
	}
	sort.Float64s(lineYs)

	var tables []model.Table
	for _, group := range d.groupLines(lineYs) {
		if table, ok := d.tableFromLineGroup(group, spansByLine, page.Number, len(tables)+1); ok {
			tables = append(tables, table)
		}
	}
	return tables
}

// groupLines splits sorted line positions into runs of vertically adjacent
// lines. Runs shorter than the minimum row count are discarded.
func (d *Detector) groupLines(lineYs []float64) [][]float64 {
	gap := d.config.MinCellHeight * 2

	var groups [][]float64
	var current []float64
	for i, y := range lineYs {
		if i == 0 || y-lineYs[i-1] < gap {
			current = append(current, y)
			continue
		}
		if len(current) >= d.config.MinRows {
			groups = append(groups, current)
		}
		current = []float64{y}
	}
	if len(current) >= d.config.MinRows {
		groups = append(groups, current)
	}
	return groups
}

// tableFromLineGroup converts one run of lines into a table, splitting each
// line into cells at large horizontal gaps and padding short rows.
func (d *Detector) tableFromLineGroup(group []float64, spansByLine map[float64][]model.TextSpan, pageNum, index int) (model.Table, bool) {
	var data [][]string
	for _, lineY := range group {
		spans := append([]model.TextSpan(nil), spansByLine[lineY]...)
		sort.Slice(spans, func(i, j int) bool {
			return spans[i].Bounds.X0 < spans[j].Bounds.X0
		})

		var row []string
		var cell strings.Builder
		lastX := math.Inf(-1)
		for _, span := range spans {
			if cell.Len() > 0 && span.Bounds.X0-lastX > d.config.MinCellWidth {
				row = append(row, strings.TrimSpace(cell.String()))
				cell.Reset()
			}
			cell.WriteString(strings.TrimSpace(span.Text))
			cell.WriteString(" ")
			lastX = span.Bounds.X0
		}
		if cell.Len() > 0 {
			row = append(row, strings.TrimSpace(cell.String()))
		}

		if len(row) >= d.config.MinCols {
			data = append(data, row)
		}
	}

	maxCols := 0
	for _, row := range data {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	for i, row := range data {
		for len(row) < maxCols {
			row = append(row, "")
		}
		data[i] = row
	}

	if len(data) < d.config.MinRows || maxCols < d.config.MinCols {
		return model.Table{}, false
	}

	var bounds model.Rect
	first := true
	for _, lineY := range group {
		for _, span := range spansByLine[lineY] {
			if first {
				bounds = span.Bounds
				first = false
				continue
			}
			bounds = bounds.Union(span.Bounds)
		}
	}

	return model.Table{
		Caption: fmt.Sprintf("Text Table %d on page %d", index, pageNum),
		Page:    pageNum,
		Bounds:  bounds,
		Data:    data,
	}, true
}
