package model

import "fmt"

// Document is the resolved output of one parse: a title, the total page
// count, and the ordered top-level sections.
type Document struct {
	Title    string     `json:"title"`
	Pages    int        `json:"pages"`
	Sections []*Section `json:"sections"`
}

// AllSections returns every section of the tree in declaration order.
func (d *Document) AllSections() []*Section {
	return FlattenSections(d.Sections)
}

// AllTables returns every table in the tree in declaration order.
func (d *Document) AllTables() []*Table {
	var tables []*Table
	for _, s := range d.Sections {
		tables = append(tables, s.AllTables()...)
	}
	return tables
}

// Validate checks the document invariants: a positive page count and every
// referenced page within [1, Pages].
func (d *Document) Validate() error {
	if d.Pages <= 0 {
		return fmt.Errorf("document must have at least one page, got %d", d.Pages)
	}
	for _, s := range d.AllSections() {
		for _, p := range s.Pages {
			if p < 1 || p > d.Pages {
				return fmt.Errorf("section %q references page %d outside [1, %d]", s.Title, p, d.Pages)
			}
		}
	}
	return nil
}

// UncoveredPages returns the pages not claimed by any section, ascending.
func (d *Document) UncoveredPages() []int {
	covered := make(map[int]bool)
	for _, s := range d.AllSections() {
		for _, p := range s.Pages {
			covered[p] = true
		}
	}
	var missing []int
	for p := 1; p <= d.Pages; p++ {
		if !covered[p] {
			missing = append(missing, p)
		}
	}
	return missing
}
