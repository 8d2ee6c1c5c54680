package content

import (
	"strings"
	"testing"

	"github.com/tsawler/structura/model"
)

func span(text string, page int, y float64) model.TextSpan {
	return model.TextSpan{
		Text:     text,
		Bounds:   model.NewRect(10, y, 200, y+12),
		FontSize: 10,
		Page:     page,
	}
}

func TestAssignExcludesHeadingText(t *testing.T) {
	spans := map[int][]model.TextSpan{
		1: {
			span("Introduction", 1, 10),
			span("Opening paragraph.", 1, 40),
		},
	}
	sections := []*model.Section{
		{Title: "Introduction", Level: 1, Pages: []int{1}},
	}

	NewAssigner(spans, nil).Assign(sections)

	if strings.Contains(sections[0].Content, "Introduction") {
		t.Errorf("Expected heading text excluded from content, got %q", sections[0].Content)
	}
	if sections[0].Content != "Opening paragraph." {
		t.Errorf("Expected body text only, got %q", sections[0].Content)
	}
}

func TestAssignSharedFirstPageSplit(t *testing.T) {
	// Parent and child share page 1; the child heading sits at y=60. Text
	// above it belongs to the parent, text at or below to the child.
	spans := map[int][]model.TextSpan{
		1: {
			span("Intro", 1, 10),
			span("Parent preamble.", 1, 30),
			span("Background", 1, 60),
			span("Child body.", 1, 90),
		},
	}
	sections := []*model.Section{
		{Title: "Intro", Level: 1, Pages: []int{1}, Subsections: []*model.Section{
			{Title: "Background", Level: 2, Pages: []int{1}},
		}},
	}

	NewAssigner(spans, nil).Assign(sections)

	parent := sections[0]
	child := parent.Subsections[0]
	if parent.Content != "Parent preamble." {
		t.Errorf("Expected parent to keep only text above child heading, got %q", parent.Content)
	}
	if child.Content != "Child body." {
		t.Errorf("Expected child to claim text below its heading, got %q", child.Content)
	}
}

func TestAssignSharedPageSiblingsSplit(t *testing.T) {
	// Two same-level siblings anchored on page 1: the first stops at the
	// second's heading, so no span lands in both sections.
	spans := map[int][]model.TextSpan{
		1: {
			span("Alpha", 1, 10),
			span("alpha body", 1, 40),
			span("Beta", 1, 70),
			span("beta body", 1, 100),
		},
	}
	sections := []*model.Section{
		{Title: "Alpha", Level: 1, Pages: []int{1}},
		{Title: "Beta", Level: 1, Pages: []int{1, 2}},
	}

	NewAssigner(spans, nil).Assign(sections)

	if sections[0].Content != "alpha body" {
		t.Errorf("Expected the first sibling to stop at the next heading, got %q", sections[0].Content)
	}
	if sections[1].Content != "beta body" {
		t.Errorf("Expected the second sibling to start at its heading, got %q", sections[1].Content)
	}
}

func TestAssignSharedPageSiblingWithoutHeadingSpan(t *testing.T) {
	// The second sibling's heading span is missing from the page, so the
	// whole page falls to it rather than being counted twice.
	spans := map[int][]model.TextSpan{
		1: {
			span("Alpha", 1, 10),
			span("shared body", 1, 40),
		},
	}
	sections := []*model.Section{
		{Title: "Alpha", Level: 1, Pages: []int{1}},
		{Title: "Beta", Level: 1, Pages: []int{1, 2}},
	}

	NewAssigner(spans, nil).Assign(sections)

	if sections[0].Content != "" {
		t.Errorf("Expected the first sibling to yield the shared page, got %q", sections[0].Content)
	}
	if sections[1].Content != "shared body" {
		t.Errorf("Expected the second sibling to take the page, got %q", sections[1].Content)
	}
}

func TestAssignKeepsPreambleAboveFirstHeading(t *testing.T) {
	// Nothing claims the text above the first section's heading, so the
	// section keeps it instead of dropping it.
	spans := map[int][]model.TextSpan{
		1: {
			span("By the authors", 1, 10),
			span("Introduction", 1, 30),
			span("Opening paragraph.", 1, 60),
		},
	}
	sections := []*model.Section{
		{Title: "Introduction", Level: 1, Pages: []int{1}},
	}

	NewAssigner(spans, nil).Assign(sections)

	if sections[0].Content != "By the authors\n\nOpening paragraph." {
		t.Errorf("Expected the preamble assigned to the first section, got %q", sections[0].Content)
	}
}

func TestAssignParentSkipsChildOwnedPages(t *testing.T) {
	spans := map[int][]model.TextSpan{
		1: {span("Intro", 1, 10), span("Parent text.", 1, 40)},
		2: {span("Details", 2, 10), span("Child page two text.", 2, 40)},
	}
	sections := []*model.Section{
		{Title: "Intro", Level: 1, Pages: []int{1, 2}, Subsections: []*model.Section{
			{Title: "Details", Level: 2, Pages: []int{2}},
		}},
	}

	NewAssigner(spans, nil).Assign(sections)

	parent := sections[0]
	child := parent.Subsections[0]
	if strings.Contains(parent.Content, "Child page two") {
		t.Errorf("Expected parent to skip the child-owned page, got %q", parent.Content)
	}
	if child.Content != "Child page two text." {
		t.Errorf("Expected child to own page 2 text, got %q", child.Content)
	}
}

func TestAssignReadingOrderSeparator(t *testing.T) {
	spans := map[int][]model.TextSpan{
		1: {span("First.", 1, 10), span("Second.", 1, 40)},
	}
	sections := []*model.Section{{Title: "Only", Level: 1, Pages: []int{1}}}

	NewAssigner(spans, nil).Assign(sections)

	if sections[0].Content != "First.\n\nSecond." {
		t.Errorf("Expected blank-line separator in reading order, got %q", sections[0].Content)
	}
}

func TestAssignEmptyPages(t *testing.T) {
	sections := []*model.Section{{Title: "Empty", Level: 1}}
	NewAssigner(nil, nil).Assign(sections)
	if sections[0].Content != "" {
		t.Errorf("Expected empty content, got %q", sections[0].Content)
	}
}
