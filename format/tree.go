package format

import (
	"fmt"
	"strings"

	"github.com/tsawler/structura/model"
)

// TreeFormatter renders the section hierarchy as a plain-text outline
// tree, one section per line.
type TreeFormatter struct {
	// IncludePageNumbers appends each section's page range to its line.
	IncludePageNumbers bool

	// Unicode switches from ASCII branch characters to box drawing ones.
	Unicode bool
}

// NewTreeFormatter returns an ASCII tree formatter with page numbers.
func NewTreeFormatter() *TreeFormatter {
	return &TreeFormatter{IncludePageNumbers: true}
}

// Format renders the document outline.
func (f *TreeFormatter) Format(doc *model.Document) ([]byte, error) {
	branch, lastBranch, pipe, space := "|-- ", "`-- ", "|   ", "    "
	if f.Unicode {
		branch, lastBranch, pipe = "├── ", "└── ", "│   "
	}

	var sb strings.Builder
	sb.WriteString(doc.Title + "\n")

	var walk func(sections []*model.Section, indent string)
	walk = func(sections []*model.Section, indent string) {
		for i, s := range sections {
			last := i == len(sections)-1
			prefix := branch
			childIndent := indent + pipe
			if last {
				prefix = lastBranch
				childIndent = indent + space
			}

			sb.WriteString(indent + prefix + f.sectionLabel(s) + "\n")
			walk(s.Subsections, childIndent)
		}
	}
	walk(doc.Sections, "")

	return []byte(sb.String()), nil
}

func (f *TreeFormatter) sectionLabel(s *model.Section) string {
	if !f.IncludePageNumbers || len(s.Pages) == 0 {
		return s.Title
	}
	first, last := s.PageRange()
	if first == last {
		return fmt.Sprintf("%s [Page %d]", s.Title, first)
	}
	return fmt.Sprintf("%s [Pages %d-%d]", s.Title, first, last)
}
