package pdfdoc

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/structura/model"
)

const (
	// defaultPageHeight is used when a page has no usable MediaBox.
	defaultPageHeight = 792.0

	// rowTolerance is the Y distance within which characters belong to
	// the same line.
	rowTolerance = 3.0
)

// Read opens a PDF file and converts it into a source document.
func Read(path string) (*model.SourceDocument, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	return FromReader(r)
}

// FromReader converts an already-open PDF reader into a source document.
func FromReader(r *pdf.Reader) (*model.SourceDocument, error) {
	src := &model.SourceDocument{
		PageCount: r.NumPage(),
	}

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			src.Pages = append(src.Pages, model.SourcePage{Number: i})
			continue
		}

		height := pageHeight(p)
		spans := buildSpans(p.Content().Text, height, i)
		src.Pages = append(src.Pages, model.SourcePage{
			Number: i,
			Spans:  spans,
		})
	}

	return src, nil
}

// pageHeight reads the page height from the MediaBox, falling back to US
// Letter when the box is missing or degenerate.
func pageHeight(p pdf.Page) float64 {
	box := p.V.Key("MediaBox")
	if box.Len() != 4 {
		return defaultPageHeight
	}
	height := box.Index(3).Float64() - box.Index(1).Float64()
	if height <= 0 {
		return defaultPageHeight
	}
	return height
}

// buildSpans merges positioned character runs into text spans. Characters
// are grouped into lines by Y, ordered left to right, and split into spans
// at font changes or gaps wider than the current font size. Y coordinates
// are flipped so the origin is the top-left corner of the page.
func buildSpans(texts []pdf.Text, height float64, page int) []model.TextSpan {
	var chars []pdf.Text
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			chars = append(chars, t)
		}
	}
	if len(chars) == 0 {
		return nil
	}

	var spans []model.TextSpan
	for _, line := range groupLines(chars) {
		sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })

		var (
			sb         strings.Builder
			start      = line[0]
			prev       = line[0]
			minY, maxY = line[0].Y, line[0].Y
		)
		flush := func(end pdf.Text) {
			text := strings.TrimSpace(sb.String())
			if text == "" {
				return
			}
			size := start.FontSize
			if size <= 0 {
				// Estimate from the line's vertical spread so font
				// statistics still see these spans.
				size = maxY - minY
			}
			spans = append(spans, model.TextSpan{
				Text:     text,
				FontSize: size,
				Bold:     isBoldFont(start.Font),
				Page:     page,
				Bounds: model.NewRect(
					start.X,
					height-(maxY+size),
					end.X+end.W,
					height-minY,
				),
			})
		}

		sb.WriteString(line[0].S)
		for _, t := range line[1:] {
			gap := t.X - (prev.X + prev.W)
			sameRun := t.Font == start.Font && t.FontSize == start.FontSize

			switch {
			case !sameRun || gap > wordGap(prev)*3:
				flush(prev)
				sb.Reset()
				start = t
				minY, maxY = t.Y, t.Y
			case gap > wordGap(prev):
				sb.WriteString(" ")
			}

			sb.WriteString(t.S)
			if t.Y < minY {
				minY = t.Y
			}
			if t.Y > maxY {
				maxY = t.Y
			}
			prev = t
		}
		flush(prev)
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Bounds.Y0 != spans[j].Bounds.Y0 {
			return spans[i].Bounds.Y0 < spans[j].Bounds.Y0
		}
		return spans[i].Bounds.X0 < spans[j].Bounds.X0
	})
	return spans
}

// wordGap is the horizontal distance beyond which two characters on the
// same line are separate words.
func wordGap(t pdf.Text) float64 {
	if t.FontSize > 0 {
		return t.FontSize * 0.3
	}
	return 3.0
}

// groupLines clusters characters by Y coordinate, top of page first. The
// input uses PDF coordinates where larger Y is higher on the page.
func groupLines(chars []pdf.Text) [][]pdf.Text {
	type line struct {
		y     float64
		chars []pdf.Text
	}

	var lines []line
	for _, c := range chars {
		matched := false
		for i := range lines {
			if math.Abs(lines[i].y-c.Y) <= rowTolerance {
				lines[i].chars = append(lines[i].chars, c)
				matched = true
				break
			}
		}
		if !matched {
			lines = append(lines, line{y: c.Y, chars: []pdf.Text{c}})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	grouped := make([][]pdf.Text, len(lines))
	for i, l := range lines {
		grouped[i] = l.chars
	}
	return grouped
}

// isBoldFont reports whether a font name indicates a bold face.
func isBoldFont(font string) bool {
	name := strings.ToLower(font)
	return strings.Contains(name, "bold") || strings.Contains(name, "black") ||
		strings.Contains(name, "heavy")
}
