package tables

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/structura/model"
)

// Config holds detector configuration
type Config struct {
	// Minimum rows for a valid table
	MinRows int

	// Minimum columns for a valid table
	MinCols int

	// Minimum cell dimensions in points, used by the rectangle and
	// text-alignment fallbacks
	MinCellWidth  float64
	MinCellHeight float64

	// Tolerance for treating segments as collinear (points)
	LineTolerance float64

	// Tolerance for counting a crossing as an intersection (points)
	IntersectTolerance float64

	// Padding added around detected table bounds (points)
	TablePadding float64
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		MinRows:            2,
		MinCols:            2,
		MinCellWidth:       10.0,
		MinCellHeight:      5.0,
		LineTolerance:      2.0,
		IntersectTolerance: 3.0,
		TablePadding:       5.0,
	}
}

// ExtractionError reports a table detection failure scoped to a single page.
type ExtractionError struct {
	Page int
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("table extraction failed on page %d: %v", e.Page, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Detector finds tables on pages using the geometric pipeline with
// rectangle-cluster and text-alignment fallbacks.
type Detector struct {
	config Config
	logger *zap.Logger
}

// NewDetector creates a detector. A nil logger disables logging.
func NewDetector(config Config, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{config: config, logger: logger}
}

// Detect runs detection over all pages. Failures are isolated per page: a
// page that fails contributes an *ExtractionError to the returned slice and
// detection continues with the next page.
func (d *Detector) Detect(pages []model.SourcePage) ([]model.Table, []error) {
	var found []model.Table
	var errs []error

	for _, page := range pages {
		tables, err := d.DetectPage(page)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		found = append(found, tables...)
	}
	return found, errs
}

// DetectPage finds tables on a single page. Pages without drawing
// primitives yield no tables.
func (d *Detector) DetectPage(page model.SourcePage) (tables []model.Table, err error) {
	// Geometry on malformed input must not take down the whole parse.
	defer func() {
		if r := recover(); r != nil {
			tables = nil
			err = &ExtractionError{Page: page.Number, Err: fmt.Errorf("%v", r)}
		}
	}()

	if len(page.Drawings) == 0 {
		return nil, nil
	}

	hSegs, vSegs := extractSegments(page.Drawings, d.config.LineTolerance)

	// Too few ruling lines for a grid: look for explicit cell rectangles.
	if len(hSegs) < d.config.MinRows || len(vSegs) < d.config.MinCols {
		if rectTables := d.detectRectangleTables(page); len(rectTables) > 0 {
			return rectTables, nil
		}
	}

	regions := d.findRegions(hSegs, vSegs)
	for _, region := range regions {
		data := d.extractGridData(region, page.Spans)
		if len(data) < d.config.MinRows {
			continue
		}
		cols := 0
		for _, row := range data {
			if len(row) > cols {
				cols = len(row)
			}
		}
		if cols < d.config.MinCols {
			continue
		}

		tables = append(tables, model.Table{
			Caption: fmt.Sprintf("Table %d on page %d", len(tables)+1, page.Number),
			Page:    page.Number,
			Bounds:  region.bounds,
			Data:    data,
		})
	}

	if len(tables) == 0 {
		tables = d.detectTextTables(page)
	}

	d.logger.Debug("page table detection complete",
		zap.Int("page", page.Number),
		zap.Int("tables", len(tables)))
	return tables, nil
}
