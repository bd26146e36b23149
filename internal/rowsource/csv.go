// =============================================================================
// Dynamic Tables - Row Sources
// =============================================================================
//
// This module loads table rows from files so that a table's initial
// structure can be maintained in a spreadsheet instead of inline YAML.
//
// SUPPORTED FORMATS:
//   - CSV  (.csv)  : comma, semicolon or tab delimited, detected from the
//                    header line
//   - XLSX (.xlsx) : first sheet unless a sheet name is given
//
// CONVENTIONS:
//   - The first non-empty row is the header; its cells become field names
//   - Blank rows are skipped
//   - Cells that parse as numbers are stored as float64, others as strings
//   - Empty cells are omitted from the row
//
// =============================================================================

package rowsource

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ginjaninja78/dynamic-tables/internal/types"
)

// Extensions lists the file extensions Read accepts.
var Extensions = []string{".csv", ".xlsx", ".xlsm"}

// Read loads rows from a CSV or XLSX file, chosen by extension.
func Read(path string) (types.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path)
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, "")
	}
	return nil, fmt.Errorf("unsupported row source %s", path)
}

// ReadCSV loads rows from a CSV file.
func ReadCSV(path string) (types.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseCSV(file)
}

// ParseCSV reads rows from r. The delimiter is detected from the first line.
func ParseCSV(r io.Reader) (types.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	// Skip a UTF-8 BOM, common in spreadsheet exports.
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(string(data))
	reader.FieldsPerRecord = -1
	// Leading-space trimming would swallow empty tab-separated fields.
	reader.TrimLeadingSpace = reader.Comma != '\t'

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return recordsToTable(records), nil
}

// detectDelimiter picks the most frequent candidate delimiter in the first
// non-blank line. Comma wins ties.
func detectDelimiter(sample string) rune {
	for _, line := range strings.Split(sample, "\n") {
		if strings.TrimSpace(line) != "" {
			sample = line
			break
		}
	}

	best, bestCount := ',', strings.Count(sample, ",")
	for _, candidate := range []rune{';', '\t', '|'} {
		if n := strings.Count(sample, string(candidate)); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}

// recordsToTable turns a header row plus data rows into a table.
func recordsToTable(records [][]string) types.Table {
	table := types.Table{}

	var headers []string
	for _, record := range records {
		if isRowEmpty(record) {
			continue
		}
		if headers == nil {
			headers = cleanHeaders(record)
			continue
		}

		row := types.Row{}
		for i, cell := range record {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			row[headers[i]] = cellValue(cell)
		}
		table = append(table, row)
	}

	return table
}

func cleanHeaders(record []string) []string {
	headers := make([]string, len(record))
	for i, h := range record {
		headers[i] = strings.TrimSpace(h)
	}
	return headers
}

func isRowEmpty(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// cellValue stores numeric cells as float64 and leaves the rest as strings.
// Values like "0,00 %" stay strings.
func cellValue(cell string) any {
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}
