package format

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/structura/model"
)

// XLSXFormatter exports the document's detected tables as an Excel
// workbook, one sheet per table.
type XLSXFormatter struct {
	// IncludeCaptions writes each table's caption above its data.
	IncludeCaptions bool
}

// NewXLSXFormatter returns an XLSX formatter that includes captions.
func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{IncludeCaptions: true}
}

// Format renders the document's tables as an XLSX workbook. A document
// without tables yields a workbook with a single empty sheet.
func (f *XLSXFormatter) Format(doc *model.Document) ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	for i, table := range doc.AllTables() {
		sheet := fmt.Sprintf("Table %d", i+1)
		if i == 0 {
			if err := wb.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("failed to name sheet: %w", err)
			}
		} else {
			if _, err := wb.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("failed to add sheet: %w", err)
			}
		}

		startRow := 1
		if f.IncludeCaptions && table.Caption != "" {
			if err := wb.SetCellValue(sheet, "A1", table.Caption); err != nil {
				return nil, fmt.Errorf("failed to write caption: %w", err)
			}
			startRow = 2
		}

		for r, row := range table.Data {
			for c, value := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, startRow+r)
				if err != nil {
					return nil, fmt.Errorf("invalid cell coordinates: %w", err)
				}
				if err := wb.SetCellValue(sheet, cell, value); err != nil {
					return nil, fmt.Errorf("failed to write cell %s: %w", cell, err)
				}
			}
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
