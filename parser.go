package structura

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/structura/content"
	"github.com/tsawler/structura/model"
	"github.com/tsawler/structura/structure"
	"github.com/tsawler/structura/tables"
)

const maxDerivedTitleLen = 100

// Parser runs the synthesis pipeline: heading classification, section tree
// assembly, page range resolution, content assignment, and table detection.
// A Parser holds only read-only configuration; Parse may be called
// concurrently and each invocation is independent.
type Parser struct {
	options Options
	logger  *zap.Logger
}

// NewParser creates a parser with the given options applied over defaults.
func NewParser(opts ...Option) *Parser {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{options: options, logger: logger}
}

// Parse converts a source document into a resolved Document. The only
// returned error is *FatalInputError for fundamentally empty input; all
// recoverable problems are corrected and reported as warnings.
func (p *Parser) Parse(src *model.SourceDocument) (*model.Document, []Warning, error) {
	if src == nil {
		return nil, nil, &FatalInputError{Reason: "nil source document"}
	}
	if src.PageCount <= 0 {
		return nil, nil, &FatalInputError{Reason: fmt.Sprintf("document reports %d pages", src.PageCount)}
	}
	if src.SpanCount() == 0 && src.DrawingCount() == 0 && len(src.Outline) == 0 {
		return nil, nil, &FatalInputError{Reason: "document has no spans, drawings, or outline"}
	}

	spansByPage := src.SpansByPage()
	var warnings []Warning

	sections, flat, structureWarnings := p.buildStructure(src, spansByPage)
	warnings = append(warnings, structureWarnings...)

	if !flat {
		resolver := structure.NewPageRangeResolver(src.PageCount, p.logger)
		for _, msg := range resolver.Resolve(sections) {
			warnings = append(warnings, Warning{Stage: "structure", Message: msg})
		}
		content.NewAssigner(spansByPage, p.logger).Assign(sections)
	}

	if p.options.DetectTables {
		warnings = append(warnings, p.attachTables(src, sections)...)
	}

	doc := &model.Document{
		Title:    p.documentTitle(src, spansByPage),
		Pages:    src.PageCount,
		Sections: sections,
	}
	if err := doc.Validate(); err != nil {
		// Resolution clamps every range to the document, so this indicates
		// a pipeline bug; surface it rather than fail the caller.
		warnings = append(warnings, Warning{Stage: "structure", Message: err.Error()})
		p.logger.Error("document failed validation", zap.Error(err))
	}

	p.logger.Info("parse complete",
		zap.Int("pages", doc.Pages),
		zap.Int("sections", len(doc.AllSections())),
		zap.Int("tables", len(doc.AllTables())),
		zap.Int("warnings", len(warnings)))
	return doc, warnings, nil
}

// buildStructure walks the fallback ladder: outline, detected headings,
// flat page-per-section. The flat structure is returned with content
// already filled, so later stages skip resolution and assignment for it.
func (p *Parser) buildStructure(src *model.SourceDocument, spansByPage map[int][]model.TextSpan) ([]*model.Section, bool, []Warning) {
	var warnings []Warning

	if p.options.UseOutline && len(src.Outline) > 0 {
		entries, messages := model.NormalizeOutline(src.Outline, src.PageCount)
		for _, msg := range messages {
			err := &InputStructureError{Detail: msg}
			warnings = append(warnings, Warning{Stage: "outline", Message: err.Error()})
		}
		if sections := structure.BuildFromOutline(entries); len(sections) > 0 {
			p.logger.Debug("structure built from outline", zap.Int("entries", len(entries)))
			return sections, false, warnings
		}
	}

	if p.options.DetectHeadings {
		profile := structure.AnalyzeFonts(spansByPage, p.options.MinHeadingFontSize, p.options.HeadingSizeRatio)
		if !profile.Empty() {
			classifier := structure.NewClassifier(profile, p.options.Classifier)
			if candidates := classifier.Classify(spansByPage); len(candidates) > 0 {
				if sections := structure.BuildFromHeadings(candidates); len(sections) > 0 {
					p.logger.Debug("structure built from detected headings",
						zap.Float64("normalSize", profile.NormalSize),
						zap.Float64("threshold", profile.HeadingThreshold))
					return sections, false, warnings
				}
			}
		}
	}

	p.logger.Debug("no structure detected, using page-based sections")
	return p.flatStructure(src, spansByPage), true, warnings
}

// flatStructure creates one level-1 section per page with the page's full
// text as content.
func (p *Parser) flatStructure(src *model.SourceDocument, spansByPage map[int][]model.TextSpan) []*model.Section {
	sections := make([]*model.Section, 0, src.PageCount)
	for page := 1; page <= src.PageCount; page++ {
		var parts []string
		for _, span := range spansByPage[page] {
			if text := strings.TrimSpace(span.Text); text != "" {
				parts = append(parts, text)
			}
		}
		section := model.NewSection(fmt.Sprintf("Page %d", page), 1, page)
		section.Content = strings.Join(parts, "\n\n")
		sections = append(sections, section)
	}
	return sections
}

// attachTables runs detection over all pages and assigns the results to the
// most specific covering sections. Per-page detection failures become
// warnings.
func (p *Parser) attachTables(src *model.SourceDocument, sections []*model.Section) []Warning {
	var warnings []Warning

	detector := tables.NewDetector(p.options.Tables, p.logger)
	found, errs := detector.Detect(src.Pages)
	for _, err := range errs {
		w := Warning{Stage: "tables", Message: err.Error()}
		var extractionErr *tables.ExtractionError
		if errors.As(err, &extractionErr) {
			w.Page = extractionErr.Page
		}
		warnings = append(warnings, w)
	}

	for _, msg := range tables.Assign(found, sections, p.logger) {
		warnings = append(warnings, Warning{Stage: "tables", Message: msg})
	}
	return warnings
}

// documentTitle prefers the supplied metadata title, then the first
// non-empty span of the first page truncated to a sane length.
func (p *Parser) documentTitle(src *model.SourceDocument, spansByPage map[int][]model.TextSpan) string {
	if title := strings.TrimSpace(src.Title); title != "" {
		return title
	}

	for _, span := range spansByPage[1] {
		text := strings.TrimSpace(span.Text)
		if text == "" {
			continue
		}
		if runes := []rune(text); len(runes) > maxDerivedTitleLen {
			return string(runes[:maxDerivedTitleLen]) + "..."
		}
		return text
	}

	return "Untitled Document"
}
