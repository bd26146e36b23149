package rowsource

import (
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/dynamic-tables/internal/types"
)

// DefaultSheet is the sheet name used by WriteXLSX when none is given.
const DefaultSheet = "Sheet1"

// ReadXLSX loads rows from an XLSX workbook.
//
// PARAMETERS:
//   - path: The path to the workbook.
//   - sheet: The sheet to read. Empty means the first sheet.
//
// RETURNS:
//   - The rows below the header row.
//   - An error if the workbook or the sheet cannot be read.
func ReadXLSX(path, sheet string) (types.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	return recordsToTable(rows), nil
}

// WriteXLSX writes table to a new workbook at path.
//
// PARAMETERS:
//   - path: The output path. An existing file is overwritten.
//   - sheet: The sheet name. Empty means DefaultSheet.
//   - table: The rows to write.
//   - columns: The column order. Empty means every field, sorted.
//
// Numbers are written as numbers so that the sheet stays computable.
func WriteXLSX(path, sheet string, table types.Table, columns []string) error {
	if sheet == "" {
		sheet = DefaultSheet
	}
	if len(columns) == 0 {
		columns = Columns(table)
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r, row := range table {
		values := make([]interface{}, len(columns))
		for i, c := range columns {
			values[i] = row[c]
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Columns returns every field name used in table, sorted.
func Columns(table types.Table) []string {
	seen := map[string]struct{}{}
	var columns []string
	for _, row := range table {
		for field := range row {
			if _, ok := seen[field]; !ok {
				seen[field] = struct{}{}
				columns = append(columns, field)
			}
		}
	}
	slices.Sort(columns)
	return columns
}
