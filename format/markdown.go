package format

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tsawler/structura/model"
)

// MarkdownFormatter renders the document as Markdown: the title, an
// optional linked table of contents, then each section as a heading with
// its page range, body text, and tables.
type MarkdownFormatter struct {
	// IncludePageNumbers adds a page range line under each heading.
	IncludePageNumbers bool

	// IncludeTOC adds a table of contents after the title.
	IncludeTOC bool

	// MaxTOCDepth is the deepest section level listed in the TOC.
	MaxTOCDepth int
}

// NewMarkdownFormatter returns a Markdown formatter with page numbers and a
// three-level table of contents.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{
		IncludePageNumbers: true,
		IncludeTOC:         true,
		MaxTOCDepth:        3,
	}
}

// Format renders the document as Markdown.
func (f *MarkdownFormatter) Format(doc *model.Document) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("# " + doc.Title + "\n\n")

	if f.IncludeTOC {
		f.writeTOC(&sb, doc.Sections)
		sb.WriteString("\n---\n\n")
	}

	for _, section := range doc.Sections {
		f.writeSection(&sb, section)
	}

	return []byte(sb.String()), nil
}

func (f *MarkdownFormatter) writeTOC(sb *strings.Builder, sections []*model.Section) {
	sb.WriteString("## Table of Contents\n\n")

	var walk func(sections []*model.Section, indent int)
	walk = func(sections []*model.Section, indent int) {
		for _, s := range sections {
			if s.Level > f.MaxTOCDepth {
				continue
			}
			sb.WriteString(strings.Repeat("  ", indent))
			sb.WriteString(fmt.Sprintf("- [%s](#%s)\n", s.Title, anchor(s.Title)))
			walk(s.Subsections, indent+1)
		}
	}
	walk(sections, 0)
}

func (f *MarkdownFormatter) writeSection(sb *strings.Builder, section *model.Section) {
	level := section.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	sb.WriteString(strings.Repeat("#", level) + " " + section.Title + "\n")

	if f.IncludePageNumbers && len(section.Pages) > 0 {
		first, last := section.PageRange()
		if first == last {
			sb.WriteString(fmt.Sprintf("*Page %d*\n\n", first))
		} else {
			sb.WriteString(fmt.Sprintf("*Pages %d-%d*\n\n", first, last))
		}
	}

	if content := strings.TrimSpace(section.Content); content != "" {
		sb.WriteString(content + "\n\n")
	}

	for _, table := range section.Tables {
		if md := table.ToMarkdown(); md != "" {
			sb.WriteString(md + "\n")
		}
	}

	for _, sub := range section.Subsections {
		f.writeSection(sb, sub)
	}
}

// anchor turns a title into a GitHub-style heading anchor: lower case,
// spaces as hyphens, everything else alphanumeric only.
func anchor(title string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r == ' ':
			sb.WriteRune('-')
		case r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
