package structure

import (
	"sort"

	"github.com/tsawler/structura/model"
)

// BuildFromOutline assembles a section tree from a normalized outline. The
// entries must already be in document order with valid levels and pages (see
// model.NormalizeOutline). Each section's pages start as the single anchor
// page from its entry.
func BuildFromOutline(entries []model.OutlineEntry) []*model.Section {
	var roots []*model.Section
	var stack []*model.Section

	for _, entry := range entries {
		node := model.NewSection(entry.Title, entry.Level, entry.Page)
		roots, stack = attach(roots, stack, node)
	}
	return roots
}

// BuildFromHeadings assembles a section tree from classified heading
// candidates. Candidates are ordered by page, then by vertical and horizontal
// position, so headings attach in reading order.
func BuildFromHeadings(candidates map[int][]HeadingCandidate) []*model.Section {
	var ordered []HeadingCandidate
	for _, pageCandidates := range candidates {
		ordered = append(ordered, pageCandidates...)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Bounds.Y0 != b.Bounds.Y0 {
			return a.Bounds.Y0 < b.Bounds.Y0
		}
		return a.Bounds.X0 < b.Bounds.X0
	})

	var roots []*model.Section
	var stack []*model.Section

	for _, candidate := range ordered {
		node := model.NewSection(candidate.Text, candidate.Level, candidate.Page)
		roots, stack = attach(roots, stack, node)
	}
	return roots
}

// attach places node in the tree using the ancestor stack: pop every stack
// entry at the node's level or deeper, then attach to the remaining top (or
// as a new root) and push.
func attach(roots []*model.Section, stack []*model.Section, node *model.Section) ([]*model.Section, []*model.Section) {
	for len(stack) > 0 && stack[len(stack)-1].Level >= node.Level {
		stack = stack[:len(stack)-1]
	}
	if len(stack) == 0 {
		roots = append(roots, node)
	} else {
		parent := stack[len(stack)-1]
		parent.Subsections = append(parent.Subsections, node)
	}
	stack = append(stack, node)
	return roots, stack
}
