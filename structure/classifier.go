package structure

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/tsawler/structura/model"
)

// HeadingCandidate is a text span classified as likely marking a new section.
type HeadingCandidate struct {
	Text     string
	Level    int
	Bounds   model.Rect
	FontSize float64
	Bold     bool
	Page     int
}

// ClassifierConfig tunes heading candidate selection.
type ClassifierConfig struct {
	// MinLength and MaxLength bound the candidate text length in runes;
	// spans outside the bounds are rejected outright.
	MinLength int
	MaxLength int
}

// DefaultClassifierConfig returns the default classification bounds.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		MinLength: 2,
		MaxLength: 200,
	}
}

// headingPatterns match common structured heading formats.
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(?:chapter|section|part)\s+\d+[.:]\s+.+`), // "Chapter 1: Introduction"
	regexp.MustCompile(`^\s*\d+(?:\.\d+)*\s+.+`),                          // "1.2.3 Methods"
	regexp.MustCompile(`^\s*[A-Z](?:\.\d+)+\s+.+`),                        // "A.1 Appendix"
	regexp.MustCompile(`^\s*[IVXLCDM]+\.\s+.+`),                           // "IV. Results"
	regexp.MustCompile(`(?i)^\s*Appendix\s+[A-Z]\s*:?\s+.+`),              // "Appendix A: Data"
}

// numberPrefix captures a leading dotted number like "1.2.3 " for level
// inference.
var numberPrefix = regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)\.?\s`)

// Classifier labels spans as heading candidates using the document's font
// profile.
type Classifier struct {
	config  ClassifierConfig
	profile FontProfile
}

// NewClassifier creates a classifier for one parse.
func NewClassifier(profile FontProfile, config ClassifierConfig) *Classifier {
	return &Classifier{config: config, profile: profile}
}

// Classify returns heading candidates grouped by page. Pages without
// candidates are absent from the result.
func (c *Classifier) Classify(spansByPage map[int][]model.TextSpan) map[int][]HeadingCandidate {
	if c.profile.Empty() {
		return nil
	}

	candidates := make(map[int][]HeadingCandidate)
	for page, spans := range spansByPage {
		for _, span := range spans {
			if !c.isHeading(span) {
				continue
			}
			candidates[page] = append(candidates[page], HeadingCandidate{
				Text:     span.Text,
				Level:    c.headingLevel(span),
				Bounds:   span.Bounds,
				FontSize: span.FontSize,
				Bold:     span.Bold,
				Page:     span.Page,
			})
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates
}

// isHeading applies the candidate tests in priority order: structured
// pattern, font size, bold near-threshold size, all-caps.
func (c *Classifier) isHeading(span model.TextSpan) bool {
	text := strings.TrimSpace(span.Text)
	length := len([]rune(text))
	if length < c.config.MinLength || length > c.config.MaxLength {
		return false
	}

	for _, pattern := range headingPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	if span.FontSize >= c.profile.HeadingThreshold {
		return true
	}
	if span.Bold && span.FontSize >= c.profile.HeadingThreshold*0.8 {
		return true
	}
	if isAllUpper(text) && length > 3 && length < 50 {
		return true
	}
	return false
}

// headingLevel infers the level from font size, then applies the numeric
// prefix and Appendix overrides.
func (c *Classifier) headingLevel(span model.TextSpan) int {
	threshold := c.profile.HeadingThreshold

	var level int
	switch {
	case span.FontSize >= threshold*1.5:
		level = 1
	case span.FontSize >= threshold*1.25:
		level = 2
	case span.FontSize >= threshold:
		level = 3
	case span.Bold:
		level = 4
	default:
		level = 5
	}

	text := strings.TrimSpace(span.Text)
	if m := numberPrefix.FindStringSubmatch(text); m != nil {
		// "1.2.3" has two dots and is a level-3 heading.
		level = strings.Count(m[1], ".") + 1
		if level > 5 {
			level = 5
		}
	}
	if len(text) >= len("appendix") && strings.EqualFold(text[:len("appendix")], "appendix") {
		level = 1
	}

	return level
}

// isAllUpper reports whether the text contains letters and none of them are
// lower case.
func isAllUpper(text string) bool {
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
