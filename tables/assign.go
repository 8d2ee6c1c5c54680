package tables

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/structura/model"
)

// Assign attaches each table to the most specific section covering its
// page: the covering section with the fewest pages, first declared winning
// ties. Tables are normalized to rectangular rows first; tables on pages no
// section covers are dropped. Returned warnings describe every correction
// or drop.
func Assign(tables []model.Table, sections []*model.Section, logger *zap.Logger) []string {
	if logger == nil {
		logger = zap.NewNop()
	}

	flat := model.FlattenSections(sections)
	var warnings []string

	for i := range tables {
		table := &tables[i]
		if table.NormalizeRows() {
			warnings = append(warnings,
				fmt.Sprintf("table on page %d had ragged rows, padded", table.Page))
			logger.Warn("ragged table rows corrected", zap.Int("page", table.Page))
		}

		var best *model.Section
		for _, section := range flat {
			if !section.HasPage(table.Page) {
				continue
			}
			if best == nil || len(section.Pages) < len(best.Pages) {
				best = section
			}
		}
		if best == nil {
			warnings = append(warnings,
				fmt.Sprintf("no section covers page %d, table dropped", table.Page))
			logger.Warn("table outside any section", zap.Int("page", table.Page))
			continue
		}
		best.Tables = append(best.Tables, table)
	}
	return warnings
}
