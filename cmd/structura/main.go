// Command structura parses a PDF into a structured document and renders it
// in one of the supported output formats. Output paths ending in .gz are
// gzip compressed.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/tsawler/structura"
	"github.com/tsawler/structura/format"
	"github.com/tsawler/structura/pdfdoc"
)

func main() {
	var (
		formatName     = flag.String("format", "json", "output format: json, markdown, tree, or xlsx")
		outPath        = flag.String("o", "", "output file (default stdout; .gz suffix enables compression)")
		noTables       = flag.Bool("no-tables", false, "disable table detection")
		noOutline      = flag.Bool("no-outline", false, "ignore the document outline")
		noHeadings     = flag.Bool("no-headings", false, "disable font-based heading detection")
		minHeadingSize = flag.Float64("min-heading-size", 12.0, "minimum heading font size in points")
		headingRatio   = flag.Float64("heading-ratio", 1.2, "heading size threshold as a multiple of body text size")
		quiet          = flag.Bool("q", false, "suppress warnings")
		verbose        = flag.Bool("v", false, "verbose logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.pdf\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *formatName, *outPath, runConfig{
		tables:         !*noTables,
		outline:        !*noOutline,
		headings:       !*noHeadings,
		minHeadingSize: *minHeadingSize,
		headingRatio:   *headingRatio,
		quiet:          *quiet,
		verbose:        *verbose,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "structura: %v\n", err)
		os.Exit(1)
	}
}

type runConfig struct {
	tables         bool
	outline        bool
	headings       bool
	minHeadingSize float64
	headingRatio   float64
	quiet          bool
	verbose        bool
}

func run(input, formatName, outPath string, cfg runConfig) error {
	outputFormat := format.Detect(formatName)
	if outputFormat == format.Unknown {
		return fmt.Errorf("unknown output format %q", formatName)
	}

	logger, err := buildLogger(cfg.verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	src, err := pdfdoc.Read(input)
	if err != nil {
		return err
	}

	doc, warnings, err := structura.Parse(src,
		structura.WithTableDetection(cfg.tables),
		structura.WithOutline(cfg.outline),
		structura.WithHeadingDetection(cfg.headings),
		structura.WithMinHeadingFontSize(cfg.minHeadingSize),
		structura.WithHeadingSizeRatio(cfg.headingRatio),
		structura.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	if !cfg.quiet && len(warnings) > 0 {
		fmt.Fprintln(os.Stderr, structura.FormatWarnings(warnings))
	}

	formatter, err := format.New(outputFormat)
	if err != nil {
		return err
	}
	out, err := formatter.Format(doc)
	if err != nil {
		return err
	}

	return writeOutput(outPath, out)
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	return cfg.Build()
}

// writeOutput writes to the given path, to stdout when the path is empty.
// A .gz suffix wraps the output in gzip.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if strings.HasSuffix(path, ".gz") {
		zw := gzip.NewWriter(f)
		if _, err := zw.Write(data); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := zw.Close(); err != nil {
			f.Close()
			return fmt.Errorf("failed to finish %s: %w", path, err)
		}
	} else if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return f.Close()
}
