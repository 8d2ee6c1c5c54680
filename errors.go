package structura

import (
	"fmt"
	"strings"

	"github.com/tsawler/structura/tables"
)

// FatalInputError means the input cannot produce any structure at all: a
// nil source, a non-positive page count, or a document with no spans,
// drawings, or outline. It is the only error Parse returns; everything else
// degrades to warnings.
type FatalInputError struct {
	Reason string
}

func (e *FatalInputError) Error() string {
	return "unusable input: " + e.Reason
}

// TableExtractionError is a table detection failure scoped to one page. It
// never aborts a parse; affected pages simply contribute no tables.
type TableExtractionError = tables.ExtractionError

// InputStructureError reports a single malformed outline or heading entry.
// The entry is dropped or coerced and the parse continues; these errors reach
// callers only through the warning list.
type InputStructureError struct {
	Detail string
}

func (e *InputStructureError) Error() string {
	return "malformed structure entry: " + e.Detail
}

// Warning reports a non-fatal problem encountered and corrected during a
// parse: a dropped outline entry, a parent page range extended to cover its
// children, a ragged or orphaned table.
type Warning struct {
	// Stage names the pipeline stage that produced the warning: "outline",
	// "structure", or "tables".
	Stage string

	// Page is the affected page, or 0 when the warning is not page-scoped.
	Page int

	// Message describes the problem and the correction applied.
	Message string
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("[%s] page %d: %s", w.Stage, w.Page, w.Message)
	}
	return fmt.Sprintf("[%s] %s", w.Stage, w.Message)
}

// FormatWarnings renders warnings one per line for display or logging.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
