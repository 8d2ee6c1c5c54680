package structure

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/tsawler/structura/model"
)

// PageRangeResolver expands each section's anchor page into a contiguous
// page range. Sibling ranges partition their span: each sibling runs from its
// anchor up to the page before the next sibling's anchor, and the last
// sibling runs to the enclosing bound. Children are resolved against their
// parent's end page so a trailing child never spills past its parent.
type PageRangeResolver struct {
	totalPages int
	logger     *zap.Logger
}

// NewPageRangeResolver creates a resolver for a document with totalPages
// pages. A nil logger disables logging.
func NewPageRangeResolver(totalPages int, logger *zap.Logger) *PageRangeResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageRangeResolver{totalPages: totalPages, logger: logger}
}

// Resolve assigns page ranges throughout the tree in place and returns any
// consistency warnings encountered while repairing parent/child containment.
func (r *PageRangeResolver) Resolve(sections []*model.Section) []string {
	var warnings []string
	r.resolveSiblings(sections, r.totalPages, &warnings)
	return warnings
}

func (r *PageRangeResolver) resolveSiblings(siblings []*model.Section, endBound int, warnings *[]string) {
	if len(siblings) == 0 {
		return
	}

	sort.SliceStable(siblings, func(i, j int) bool {
		return anchorPage(siblings[i]) < anchorPage(siblings[j])
	})

	for i, section := range siblings {
		start := anchorPage(section)
		end := endBound
		if i+1 < len(siblings) {
			end = anchorPage(siblings[i+1]) - 1
		}
		// Two siblings anchored on the same page collapse the range; a
		// section always keeps at least its own anchor.
		if end < start {
			end = start
		}
		section.Pages = contiguousRange(start, end)

		r.resolveSiblings(section.Subsections, end, warnings)
		r.repairContainment(section, warnings)
	}
}

// repairContainment extends a parent's pages to cover any child pages left
// outside its own range. The parent grows; children are never shrunk.
func (r *PageRangeResolver) repairContainment(section *model.Section, warnings *[]string) {
	owned := make(map[int]bool, len(section.Pages))
	for _, p := range section.Pages {
		owned[p] = true
	}

	var escaped []int
	for _, child := range section.Subsections {
		for _, p := range child.Pages {
			if !owned[p] {
				owned[p] = true
				escaped = append(escaped, p)
			}
		}
	}
	if len(escaped) == 0 {
		return
	}

	section.Pages = append(section.Pages, escaped...)
	section.NormalizePages()

	msg := fmt.Sprintf("section %q extended to cover child pages %v", section.Title, escaped)
	*warnings = append(*warnings, msg)
	r.logger.Warn("child pages outside parent range",
		zap.String("section", section.Title),
		zap.Ints("pages", escaped))
}

// anchorPage returns the smallest page a section claims, or 0 if it has none.
func anchorPage(s *model.Section) int {
	if len(s.Pages) == 0 {
		return 0
	}
	min := s.Pages[0]
	for _, p := range s.Pages[1:] {
		if p < min {
			min = p
		}
	}
	return min
}

func contiguousRange(start, end int) []int {
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
