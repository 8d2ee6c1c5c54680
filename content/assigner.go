// Package content distributes body text spans across a resolved section
// tree. Each span lands in at most one section's content string.
package content

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/structura/model"
)

// Assigner fills section content from page spans. Spans are consumed in
// reading order; heading text is never duplicated into body content, and a
// page shared between sections is split at the later section's heading, so
// each span lands in at most one section.
type Assigner struct {
	spansByPage map[int][]model.TextSpan
	titles      map[string]bool
	logger      *zap.Logger
}

// NewAssigner creates an assigner over pre-sorted page spans. A nil logger
// disables logging.
func NewAssigner(spansByPage map[int][]model.TextSpan, logger *zap.Logger) *Assigner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assigner{
		spansByPage: spansByPage,
		titles:      make(map[string]bool),
		logger:      logger,
	}
}

// Assign walks the tree and sets each section's Content in place.
func (a *Assigner) Assign(sections []*model.Section) {
	for _, s := range model.FlattenSections(sections) {
		if title := model.NormalizeTitle(s.Title); title != "" {
			a.titles[title] = true
		}
	}
	a.assignSections(sections, nil)
}

// pageClaimedAbove reports whether another section collects the region above
// this section's heading on the page: its parent, or an earlier sibling
// anchored on the same page.
func (a *Assigner) pageClaimedAbove(parent *model.Section, earlier []*model.Section, page int) bool {
	if parent != nil && parent.HasPage(page) {
		return true
	}
	for _, sibling := range earlier {
		if sibling.HasPage(page) {
			return true
		}
	}
	return false
}

func (a *Assigner) assignSections(sections []*model.Section, parent *model.Section) {
	for i, section := range sections {
		var next *model.Section
		if i+1 < len(sections) {
			next = sections[i+1]
		}
		section.Content = a.sectionContent(section, parent, sections[:i], next)
		a.assignSections(section.Subsections, section)
	}
}

func (a *Assigner) sectionContent(section, parent *model.Section, earlier []*model.Section, next *model.Section) string {
	if len(section.Pages) == 0 {
		return ""
	}
	firstPage, _ := section.PageRange()

	var parts []string
	for _, page := range section.Pages {
		childOwned := false
		for _, child := range section.Subsections {
			if child.HasPage(page) {
				childOwned = true
				break
			}
		}

		if childOwned && page != firstPage {
			// A child claims this page in its own pass.
			continue
		}

		// Everything from the first child heading down belongs to that child.
		below := math.Inf(1)
		if childOwned {
			childY, found := a.firstChildHeadingY(section, page)
			if !found {
				// First page shared with a child but no child heading span
				// was found on it; let the child take the whole page.
				a.logger.Debug("no child heading span on shared first page",
					zap.String("section", section.Title),
					zap.Int("page", page))
				continue
			}
			below = childY
		}

		// A next sibling anchored on this same page claims everything from
		// its heading down.
		if next != nil && next.HasPage(page) {
			sibY, found := a.headingY(next.Title, page)
			if !found {
				a.logger.Debug("no sibling heading span on shared page",
					zap.String("section", section.Title),
					zap.Int("page", page))
				continue
			}
			if sibY < below {
				below = sibY
			}
		}

		// On the first page, text above this section's own heading belongs
		// to whoever came before it. When nothing else claims the page, the
		// section keeps any preamble above its heading too.
		above := math.Inf(-1)
		if page == firstPage && a.pageClaimedAbove(parent, earlier, page) {
			if ownY, found := a.headingY(section.Title, page); found {
				above = ownY
			}
		}

		for _, span := range a.spansByPage[page] {
			text := strings.TrimSpace(span.Text)
			if text == "" {
				continue
			}
			if a.titles[model.NormalizeTitle(text)] {
				continue
			}
			if span.Bounds.Y0 < above || span.Bounds.Y0 >= below {
				continue
			}
			parts = append(parts, text)
		}
	}

	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

// firstChildHeadingY returns the smallest vertical position of any span on
// the page whose text matches a direct child's title.
func (a *Assigner) firstChildHeadingY(section *model.Section, page int) (float64, bool) {
	childTitles := make(map[string]bool, len(section.Subsections))
	for _, child := range section.Subsections {
		if title := model.NormalizeTitle(child.Title); title != "" {
			childTitles[title] = true
		}
	}

	var minY float64
	found := false
	for _, span := range a.spansByPage[page] {
		if !childTitles[model.NormalizeTitle(span.Text)] {
			continue
		}
		if !found || span.Bounds.Y0 < minY {
			minY = span.Bounds.Y0
			found = true
		}
	}
	return minY, found
}

// headingY returns the smallest vertical position of a span on the page
// matching the given title.
func (a *Assigner) headingY(title string, page int) (float64, bool) {
	want := model.NormalizeTitle(title)
	if want == "" {
		return 0, false
	}

	var minY float64
	found := false
	for _, span := range a.spansByPage[page] {
		if model.NormalizeTitle(span.Text) != want {
			continue
		}
		if !found || span.Bounds.Y0 < minY {
			minY = span.Bounds.Y0
			found = true
		}
	}
	return minY, found
}
