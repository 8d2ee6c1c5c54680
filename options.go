package structura

import (
	"go.uber.org/zap"

	"github.com/tsawler/structura/structure"
	"github.com/tsawler/structura/tables"
)

// Options holds parser configuration.
type Options struct {
	// DetectTables enables geometric table detection.
	DetectTables bool

	// UseOutline prefers the supplied outline over heading detection when
	// the source document carries one.
	UseOutline bool

	// DetectHeadings enables font-based heading detection when no outline
	// is used.
	DetectHeadings bool

	// MinHeadingFontSize is the smallest font size ever considered a
	// size-based heading (points).
	MinHeadingFontSize float64

	// HeadingSizeRatio scales the document's normal text size into the
	// heading threshold.
	HeadingSizeRatio float64

	// Classifier bounds heading candidate text length.
	Classifier structure.ClassifierConfig

	// Tables tunes the geometric table detector.
	Tables tables.Config

	// Logger receives diagnostics from all pipeline stages. Nil disables
	// logging.
	Logger *zap.Logger
}

// defaultOptions returns the default parser configuration.
func defaultOptions() Options {
	return Options{
		DetectTables:       true,
		UseOutline:         true,
		DetectHeadings:     true,
		MinHeadingFontSize: 12.0,
		HeadingSizeRatio:   1.2,
		Classifier:         structure.DefaultClassifierConfig(),
		Tables:             tables.DefaultConfig(),
		Logger:             zap.NewNop(),
	}
}

// Option configures a Parser.
type Option func(*Options)

// WithTableDetection toggles table detection.
func WithTableDetection(enabled bool) Option {
	return func(o *Options) { o.DetectTables = enabled }
}

// WithOutline toggles use of the source document's outline.
func WithOutline(enabled bool) Option {
	return func(o *Options) { o.UseOutline = enabled }
}

// WithHeadingDetection toggles font-based heading detection.
func WithHeadingDetection(enabled bool) Option {
	return func(o *Options) { o.DetectHeadings = enabled }
}

// WithMinHeadingFontSize sets the minimum heading font size in points.
func WithMinHeadingFontSize(size float64) Option {
	return func(o *Options) { o.MinHeadingFontSize = size }
}

// WithHeadingSizeRatio sets the normal-size multiplier for the heading
// threshold.
func WithHeadingSizeRatio(ratio float64) Option {
	return func(o *Options) { o.HeadingSizeRatio = ratio }
}

// WithClassifierConfig replaces the heading classifier configuration.
func WithClassifierConfig(config structure.ClassifierConfig) Option {
	return func(o *Options) { o.Classifier = config }
}

// WithTableConfig replaces the table detector configuration.
func WithTableConfig(config tables.Config) Option {
	return func(o *Options) { o.Tables = config }
}

// WithLogger sets the logger used by all pipeline stages.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}
