package structura_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	structura "github.com/tsawler/structura"
	"github.com/tsawler/structura/model"
)

func span(page int, text string, size float64, bold bool, y float64) model.TextSpan {
	return model.TextSpan{
		Text:     text,
		Bounds:   model.NewRect(50, y, 400, y+size),
		FontSize: size,
		Bold:     bold,
		Page:     page,
	}
}

func bodySpan(page int, text string, y float64) model.TextSpan {
	return span(page, text, 10, false, y)
}

// outlineSource builds a five page document with an outline: Intro (with a
// Background child) and Methods.
func outlineSource() *model.SourceDocument {
	return &model.SourceDocument{
		Title:     "Outlined Document",
		PageCount: 5,
		Outline: []model.OutlineEntry{
			{Level: 1, Title: "Intro", Page: 1},
			{Level: 2, Title: "Background", Page: 1},
			{Level: 1, Title: "Methods", Page: 3},
		},
		Pages: []model.SourcePage{
			{Number: 1, Spans: []model.TextSpan{
				span(1, "Intro", 18, true, 10),
				bodySpan(1, "Opening words before any child heading.", 40),
				span(1, "Background", 14, true, 80),
				bodySpan(1, "Historical context for the background.", 110),
			}},
			{Number: 2, Spans: []model.TextSpan{
				bodySpan(2, "More background material on the second page.", 40),
			}},
			{Number: 3, Spans: []model.TextSpan{
				span(3, "Methods", 18, true, 10),
				bodySpan(3, "How the work was carried out.", 40),
			}},
			{Number: 4, Spans: []model.TextSpan{
				bodySpan(4, "Further methodological detail.", 40),
			}},
			{Number: 5, Spans: []model.TextSpan{
				bodySpan(5, "Closing methodological notes.", 40),
			}},
		},
	}
}

func TestParseOutlineStructure(t *testing.T) {
	doc, warnings, err := structura.Parse(outlineSource())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", warnings)
	}

	if len(doc.Sections) != 2 {
		t.Fatalf("Expected 2 top-level sections, got %d", len(doc.Sections))
	}

	intro := doc.Sections[0]
	methods := doc.Sections[1]
	if intro.Title != "Intro" || methods.Title != "Methods" {
		t.Fatalf("Unexpected section titles: %q, %q", intro.Title, methods.Title)
	}
	if !reflect.DeepEqual(intro.Pages, []int{1, 2}) {
		t.Errorf("Expected Intro pages [1 2], got %v", intro.Pages)
	}
	if !reflect.DeepEqual(methods.Pages, []int{3, 4, 5}) {
		t.Errorf("Expected Methods pages [3 4 5], got %v", methods.Pages)
	}

	if len(intro.Subsections) != 1 {
		t.Fatalf("Expected Intro to have 1 child, got %d", len(intro.Subsections))
	}
	background := intro.Subsections[0]
	// The only and last child runs to its parent's end page.
	if !reflect.DeepEqual(background.Pages, []int{1, 2}) {
		t.Errorf("Expected Background pages [1 2], got %v", background.Pages)
	}
}

func TestParseContentAssignment(t *testing.T) {
	doc, _, err := structura.Parse(outlineSource())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	intro := doc.Sections[0]
	background := intro.Subsections[0]

	if !strings.Contains(intro.Content, "Opening words") {
		t.Errorf("Expected parent to keep text above the child heading, got %q", intro.Content)
	}
	if strings.Contains(intro.Content, "Historical context") {
		t.Errorf("Expected child body text excluded from parent, got %q", intro.Content)
	}
	if !strings.Contains(background.Content, "Historical context") {
		t.Errorf("Expected child to claim its body text, got %q", background.Content)
	}
	if !strings.Contains(background.Content, "second page") {
		t.Errorf("Expected child to own page 2 text, got %q", background.Content)
	}

	// A span matching a section title never appears as body content.
	for _, s := range doc.AllSections() {
		if strings.Contains(s.Content, "Intro\n") || s.Content == "Intro" {
			t.Errorf("Section %q duplicates a heading in its content", s.Title)
		}
	}
}

func TestParseSameAnchorSiblingContent(t *testing.T) {
	src := &model.SourceDocument{
		Title:     "Shared Anchor",
		PageCount: 2,
		Outline: []model.OutlineEntry{
			{Level: 1, Title: "Alpha", Page: 1},
			{Level: 1, Title: "Beta", Page: 1},
		},
		Pages: []model.SourcePage{
			{Number: 1, Spans: []model.TextSpan{
				span(1, "Alpha", 18, true, 10),
				bodySpan(1, "alpha body", 40),
				span(1, "Beta", 18, true, 70),
				bodySpan(1, "beta body", 100),
			}},
			{Number: 2, Spans: []model.TextSpan{
				bodySpan(2, "beta continues", 40),
			}},
		},
	}

	doc, _, err := structura.Parse(src)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(doc.Sections))
	}

	alpha, beta := doc.Sections[0], doc.Sections[1]
	if alpha.Content != "alpha body" {
		t.Errorf("Expected Alpha bounded at Beta's heading, got %q", alpha.Content)
	}
	if !strings.Contains(beta.Content, "beta body") || strings.Contains(alpha.Content, "beta body") {
		t.Errorf("Expected beta body claimed once by Beta, got Alpha=%q Beta=%q", alpha.Content, beta.Content)
	}
}

func TestParseDetectsTables(t *testing.T) {
	src := outlineSource()
	// Add a bordered 2x2 grid to page 3, rulings stroked twice, with the
	// bottom and right borders missing.
	var drawings []model.Drawing
	for i := 0; i < 2; i++ {
		drawings = append(drawings,
			model.LineDrawing(model.Point{X: 50, Y: 300}, model.Point{X: 250, Y: 300}),
			model.LineDrawing(model.Point{X: 50, Y: 400}, model.Point{X: 250, Y: 400}),
			model.LineDrawing(model.Point{X: 50, Y: 300}, model.Point{X: 50, Y: 500}),
			model.LineDrawing(model.Point{X: 150, Y: 300}, model.Point{X: 150, Y: 500}),
		)
	}
	src.Pages[2].Drawings = drawings
	src.Pages[2].Spans = append(src.Pages[2].Spans,
		model.TextSpan{Text: "Sample", Bounds: model.NewRect(60, 320, 120, 330), FontSize: 10, Page: 3},
		model.TextSpan{Text: "42", Bounds: model.NewRect(160, 320, 200, 330), FontSize: 10, Page: 3},
		model.TextSpan{Text: "Control", Bounds: model.NewRect(60, 420, 120, 430), FontSize: 10, Page: 3},
		model.TextSpan{Text: "7", Bounds: model.NewRect(160, 420, 200, 430), FontSize: 10, Page: 3},
	)

	doc, warnings, err := structura.Parse(src)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", warnings)
	}

	all := doc.AllTables()
	if len(all) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(all))
	}
	if len(all[0].Data) != 2 {
		t.Errorf("Expected 2 data rows, got %d: %v", len(all[0].Data), all[0].Data)
	}

	// Methods covers page 3 and is the most specific owner.
	methods := doc.Sections[1]
	if len(methods.Tables) != 1 {
		t.Errorf("Expected the table on the Methods section, got %d", len(methods.Tables))
	}
}

func TestParseHeadingFallback(t *testing.T) {
	src := &model.SourceDocument{
		PageCount: 2,
		Pages: []model.SourcePage{
			{Number: 1, Spans: []model.TextSpan{
				span(1, "Results", 20, true, 10),
				bodySpan(1, "the quick brown fox jumps over the lazy dog", 40),
			}},
			{Number: 2, Spans: []model.TextSpan{
				span(2, "Discussion", 20, true, 10),
				bodySpan(2, "more plain body text keeps the normal size honest", 40),
			}},
		},
	}

	doc, _, err := structura.Parse(src)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("Expected 2 sections from headings, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Title != "Results" || doc.Sections[1].Title != "Discussion" {
		t.Errorf("Unexpected titles: %q, %q", doc.Sections[0].Title, doc.Sections[1].Title)
	}
	if !reflect.DeepEqual(doc.Sections[0].Pages, []int{1}) {
		t.Errorf("Expected Results on page 1, got %v", doc.Sections[0].Pages)
	}
}

func TestParseFlatFallback(t *testing.T) {
	src := &model.SourceDocument{
		PageCount: 2,
		Pages: []model.SourcePage{
			{Number: 1, Spans: []model.TextSpan{
				bodySpan(1, "uniform body text with nothing heading-like", 40),
			}},
			{Number: 2, Spans: []model.TextSpan{
				bodySpan(2, "a second page of equally plain text", 40),
			}},
		},
	}

	doc, _, err := structura.Parse(src)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("Expected one section per page, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Title != "Page 1" || doc.Sections[1].Title != "Page 2" {
		t.Errorf("Unexpected titles: %q, %q", doc.Sections[0].Title, doc.Sections[1].Title)
	}
	if !strings.Contains(doc.Sections[1].Content, "second page") {
		t.Errorf("Expected page text as content, got %q", doc.Sections[1].Content)
	}
}

func TestParseZeroPagesFatal(t *testing.T) {
	_, _, err := structura.Parse(&model.SourceDocument{PageCount: 0})
	var fatal *structura.FatalInputError
	if !errors.As(err, &fatal) {
		t.Fatalf("Expected FatalInputError, got %v", err)
	}

	_, _, err = structura.Parse(nil)
	if !errors.As(err, &fatal) {
		t.Fatalf("Expected FatalInputError for nil source, got %v", err)
	}
}

func TestParseEmptyDocumentFatal(t *testing.T) {
	src := &model.SourceDocument{
		PageCount: 3,
		Pages:     []model.SourcePage{{Number: 1}, {Number: 2}, {Number: 3}},
	}
	_, _, err := structura.Parse(src)
	var fatal *structura.FatalInputError
	if !errors.As(err, &fatal) {
		t.Fatalf("Expected FatalInputError for empty document, got %v", err)
	}
}

func TestParseInvalidOutlineEntriesWarn(t *testing.T) {
	src := outlineSource()
	src.Outline = append(src.Outline,
		model.OutlineEntry{Level: 2, Title: "   ", Page: 2},
		model.OutlineEntry{Level: 2, Title: "Beyond", Page: 99},
	)

	doc, warnings, err := structura.Parse(src)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(warnings) != 2 {
		t.Fatalf("Expected 2 outline warnings, got %d: %v", len(warnings), warnings)
	}
	for _, w := range warnings {
		if w.Stage != "outline" {
			t.Errorf("Expected outline stage, got %q", w.Stage)
		}
	}
	// The invalid entries never become sections.
	for _, s := range doc.AllSections() {
		if s.Title == "Beyond" {
			t.Error("Expected out-of-range outline entry dropped")
		}
	}
}

func TestParseIdempotent(t *testing.T) {
	first, _, err := structura.Parse(outlineSource())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, _, err := structura.Parse(outlineSource())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical input to produce identical documents")
	}
}

func TestParseInvariants(t *testing.T) {
	doc, _, err := structura.Parse(outlineSource())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Every referenced page lies within the document.
	if err := doc.Validate(); err != nil {
		t.Errorf("Document failed validation: %v", err)
	}

	// Sibling ranges partition contiguously; children stay within parents.
	var checkSiblings func(t *testing.T, siblings []*model.Section)
	checkSiblings = func(t *testing.T, siblings []*model.Section) {
		for i, s := range siblings {
			for j := 1; j < len(s.Pages); j++ {
				if s.Pages[j] != s.Pages[j-1]+1 {
					t.Errorf("Section %q pages not contiguous: %v", s.Title, s.Pages)
				}
			}
			if i > 0 {
				_, prevEnd := siblings[i-1].PageRange()
				start, _ := s.PageRange()
				if start != prevEnd+1 {
					t.Errorf("Gap between %q and %q: end %d, next start %d",
						siblings[i-1].Title, s.Title, prevEnd, start)
				}
			}
			for _, child := range s.Subsections {
				for _, p := range child.Pages {
					if !s.HasPage(p) {
						t.Errorf("Child %q page %d outside parent %q range %v",
							child.Title, p, s.Title, s.Pages)
					}
				}
			}
			checkSiblings(t, s.Subsections)
		}
	}
	checkSiblings(t, doc.Sections)
}

func TestParseTitleDerivation(t *testing.T) {
	src := outlineSource()
	src.Title = ""
	doc, _, err := structura.Parse(src)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if doc.Title != "Intro" {
		t.Errorf("Expected title derived from first span, got %q", doc.Title)
	}
}
