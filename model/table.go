package model

import "strings"

// Table is a detected table: an optional caption, the page it appears on,
// its bounds on that page, and cell data as rows of strings. After
// NormalizeRows all rows have equal length.
type Table struct {
	Caption string     `json:"caption,omitempty"`
	Page    int        `json:"page"`
	Bounds  Rect       `json:"bounds"`
	Data    [][]string `json:"data"`
}

// NormalizeRows makes the table rectangular: short rows are padded with empty
// cells to the longest row's length, and over-long rows are truncated. It
// reports whether any row needed adjustment.
func (t *Table) NormalizeRows() bool {
	width := 0
	for _, row := range t.Data {
		if len(row) > width {
			width = len(row)
		}
	}

	adjusted := false
	for i, row := range t.Data {
		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			t.Data[i] = padded
			adjusted = true
		case len(row) > width:
			t.Data[i] = row[:width]
			adjusted = true
		}
	}
	return adjusted
}

// Dimensions returns the (rows, columns) shape of the table data.
func (t *Table) Dimensions() (rows, cols int) {
	rows = len(t.Data)
	if rows > 0 {
		cols = len(t.Data[0])
	}
	return rows, cols
}

// Cell returns the value at (row, col), or "" and false when out of bounds.
func (t *Table) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(t.Data) {
		return "", false
	}
	if col < 0 || col >= len(t.Data[row]) {
		return "", false
	}
	return t.Data[row][col], true
}

// Row returns a copy of the given row, or nil when out of bounds.
func (t *Table) Row(row int) []string {
	if row < 0 || row >= len(t.Data) {
		return nil
	}
	return append([]string(nil), t.Data[row]...)
}

// Column returns the values of the given column across all rows, or nil when
// out of bounds.
func (t *Table) Column(col int) []string {
	if len(t.Data) == 0 || col < 0 || col >= len(t.Data[0]) {
		return nil
	}
	values := make([]string, 0, len(t.Data))
	for _, row := range t.Data {
		if col < len(row) {
			values = append(values, row[col])
		}
	}
	return values
}

// ToMarkdown renders the table as a markdown table, first row as header.
// The caption, when present, precedes the table in bold.
func (t *Table) ToMarkdown() string {
	if len(t.Data) == 0 {
		return ""
	}

	var sb strings.Builder
	if t.Caption != "" {
		sb.WriteString("**" + t.Caption + "**\n\n")
	}

	writeRow := func(cells []string) {
		sb.WriteString("|")
		for _, cell := range cells {
			sb.WriteString(" " + strings.ReplaceAll(cell, "\n", " ") + " |")
		}
		sb.WriteString("\n")
	}

	writeRow(t.Data[0])
	sb.WriteString("|")
	for range t.Data[0] {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")
	for _, row := range t.Data[1:] {
		writeRow(row)
	}

	return sb.String()
}

// ToCSV renders the table as CSV, quoting cells that contain separators.
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Data {
		for j, cell := range row {
			if strings.ContainsAny(cell, ",\"\n") {
				cell = "\"" + strings.ReplaceAll(cell, "\"", "\"\"") + "\""
			}
			sb.WriteString(cell)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
