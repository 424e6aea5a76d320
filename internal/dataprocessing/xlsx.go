package dataprocessing

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"salesclean/internal/cleaning"
)

// LoadXLSX reads cumulative sales observations from an Excel workbook.
// Sheets are searched in order for a header row naming the required
// columns; the first match is parsed with the same rules as CSV input.
func LoadXLSX(path string) ([]cleaning.Observation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if !hasRequiredColumns(rows) {
			continue
		}
		return parseRows(path, rows)
	}

	return nil, fmt.Errorf("%s: no sheet contains %q and %q columns", filepath.Base(path), ColumnTotal, ColumnDate)
}

// hasRequiredColumns reports whether the sheet's first non-empty row
// names both required columns
func hasRequiredColumns(rows [][]string) bool {
	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if _, _, err := locateColumns("", row); err == nil {
			return true
		}
		return false
	}
	return false
}
