package model

import "sort"

// Section is a node in the resolved document structure. It owns a contiguous
// page range, plain-text body content, the tables detected within it, and an
// ordered list of subsections. Children are owned values; no back-pointers to
// parents exist anywhere in the tree.
type Section struct {
	Title       string     `json:"title"`
	Level       int        `json:"level"`
	Pages       []int      `json:"pages"`
	Content     string     `json:"content"`
	Tables      []*Table   `json:"tables"`
	Subsections []*Section `json:"subsections"`
}

// NewSection creates a section anchored at a single page.
func NewSection(title string, level, page int) *Section {
	return &Section{
		Title: title,
		Level: level,
		Pages: []int{page},
	}
}

// NormalizePages sorts the page list ascending and removes duplicates. It
// reports whether any reordering or deduplication was needed.
func (s *Section) NormalizePages() bool {
	if sort.IntsAreSorted(s.Pages) && !hasDuplicates(s.Pages) {
		return false
	}
	sort.Ints(s.Pages)
	deduped := s.Pages[:0]
	for i, p := range s.Pages {
		if i == 0 || p != s.Pages[i-1] {
			deduped = append(deduped, p)
		}
	}
	s.Pages = deduped
	return true
}

func hasDuplicates(pages []int) bool {
	for i := 1; i < len(pages); i++ {
		if pages[i] == pages[i-1] {
			return true
		}
	}
	return false
}

// PageRange returns the first and last page of the section, or (0, 0) when
// the section has no pages.
func (s *Section) PageRange() (first, last int) {
	if len(s.Pages) == 0 {
		return 0, 0
	}
	first, last = s.Pages[0], s.Pages[0]
	for _, p := range s.Pages[1:] {
		if p < first {
			first = p
		}
		if p > last {
			last = p
		}
	}
	return first, last
}

// HasPage reports whether the section's resolved range includes the page.
func (s *Section) HasPage(page int) bool {
	for _, p := range s.Pages {
		if p == page {
			return true
		}
	}
	return false
}

// AllTables returns the tables of this section and all nested subsections.
func (s *Section) AllTables() []*Table {
	tables := append([]*Table(nil), s.Tables...)
	for _, sub := range s.Subsections {
		tables = append(tables, sub.AllTables()...)
	}
	return tables
}

// FlattenSections returns all sections in declaration (pre-order) order.
func FlattenSections(sections []*Section) []*Section {
	var all []*Section
	var walk func([]*Section)
	walk = func(list []*Section) {
		for _, s := range list {
			all = append(all, s)
			walk(s.Subsections)
		}
	}
	walk(sections)
	return all
}
