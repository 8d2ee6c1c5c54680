// Package format renders parsed documents into output formats: JSON,
// Markdown, a plain-text outline tree, and XLSX workbooks of the detected
// tables.
package format

import (
	"fmt"
	"strings"

	"github.com/tsawler/structura/model"
)

// Format represents a supported output format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// JSON indicates the full document serialized as JSON.
	JSON
	// Markdown indicates a Markdown rendering with headings and tables.
	Markdown
	// Tree indicates a plain-text outline tree of the section structure.
	Tree
	// XLSX indicates an Excel workbook holding the detected tables.
	XLSX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case Markdown:
		return "markdown"
	case Tree:
		return "tree"
	case XLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return ".json"
	case Markdown:
		return ".md"
	case Tree:
		return ".txt"
	case XLSX:
		return ".xlsx"
	default:
		return ""
	}
}

// Detect resolves a format from a name like "json" or "markdown". Common
// aliases ("md", "text", "ascii") are accepted.
func Detect(name string) Format {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON
	case "markdown", "md":
		return Markdown
	case "tree", "text", "ascii", "txt":
		return Tree
	case "xlsx", "excel":
		return XLSX
	default:
		return Unknown
	}
}

// Formatter renders a document into a byte representation.
type Formatter interface {
	// Format renders the document.
	Format(doc *model.Document) ([]byte, error)
}

// New returns a formatter with default options for the given format.
func New(f Format) (Formatter, error) {
	switch f {
	case JSON:
		return NewJSONFormatter(), nil
	case Markdown:
		return NewMarkdownFormatter(), nil
	case Tree:
		return NewTreeFormatter(), nil
	case XLSX:
		return NewXLSXFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", f)
	}
}
