package structure

import (
	"sort"

	"github.com/tsawler/structura/model"
)

// FontProfile holds corpus-wide font statistics derived from all spans of a
// document. A zero-valued profile (Empty() == true) means no usable font
// information was found and heading detection is disabled for the parse.
type FontProfile struct {
	// NormalSize is the body text size: the font size carrying the greatest
	// cumulative character count. Weighting by characters instead of span
	// count resists skew from many short large-font spans.
	NormalSize float64

	// HeadingThreshold is the minimum font size for a size-based heading:
	// max(configured minimum, NormalSize * configured ratio).
	HeadingThreshold float64

	// Sizes lists the distinct font sizes observed, ascending.
	Sizes []float64
}

// Empty reports whether no font information was available.
func (p FontProfile) Empty() bool {
	return p.NormalSize == 0
}

// AnalyzeFonts computes the font profile over all spans. minHeadingSize and
// thresholdRatio come from the parser configuration. Spans with no text or a
// non-positive font size are ignored.
func AnalyzeFonts(spansByPage map[int][]model.TextSpan, minHeadingSize, thresholdRatio float64) FontProfile {
	charsBySize := make(map[float64]int)
	for _, spans := range spansByPage {
		for _, span := range spans {
			if span.FontSize <= 0 || span.Text == "" {
				continue
			}
			charsBySize[span.FontSize] += len([]rune(span.Text))
		}
	}

	if len(charsBySize) == 0 {
		return FontProfile{}
	}

	sizes := make([]float64, 0, len(charsBySize))
	for size := range charsBySize {
		sizes = append(sizes, size)
	}
	sort.Float64s(sizes)

	// Pick the size with the most characters; ties go to the smaller size so
	// the profile stays stable across map iteration order.
	normal := sizes[0]
	for _, size := range sizes[1:] {
		if charsBySize[size] > charsBySize[normal] {
			normal = size
		}
	}

	threshold := normal * thresholdRatio
	if minHeadingSize > threshold {
		threshold = minHeadingSize
	}

	return FontProfile{
		NormalSize:       normal,
		HeadingThreshold: threshold,
		Sizes:            sizes,
	}
}
