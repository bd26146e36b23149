// =============================================================================
// Dynamic Tables - Structural Validator
// =============================================================================
//
// This module checks a table's shape and data quality. It is not a gate:
// findings are reported and the caller decides whether errors block an
// action or are merely displayed.
//
// CHECKS:
//   1. Structure: the expected field set is present in the first row
//   2. Data: every data row has a numeric value in the value field
//
// SEVERITY:
//   - "error"   : the value cannot be used in a calculation
//   - "warning" : the value is missing and will count as 0
//
// Total rows are never validated; their content is derived.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/dynamic-tables/internal/config"
	"github.com/ginjaninja78/dynamic-tables/internal/types"
)

// =============================================================================
// FINDINGS
// =============================================================================

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Finding is a single validation problem.
type Finding struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Row is the index of the offending row, or -1 for table-level findings.
	Row int

	// Field is the field that failed validation, if any.
	Field string

	// Value is the offending value.
	Value any

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (f *Finding) Error() string {
	if f.Row < 0 {
		return fmt.Sprintf("[%s] %s", strings.ToUpper(f.Severity), f.Message)
	}
	return fmt.Sprintf("[%s] Row %d, Field '%s': %s (value: '%s')",
		strings.ToUpper(f.Severity),
		f.Row,
		f.Field,
		f.Message,
		types.String(f.Value),
	)
}

// Result contains the outcome of ValidateData.
type Result struct {
	// IsValid is true when there are no errors. Warnings do not count.
	IsValid bool

	Errors   []*Finding
	Warnings []*Finding
}

func (r *Result) addError(f *Finding) {
	f.Severity = SeverityError
	r.Errors = append(r.Errors, f)
	r.IsValid = false
}

func (r *Result) addWarning(f *Finding) {
	f.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, f)
}

// =============================================================================
// STRUCTURE VALIDATION
// =============================================================================

// ValidateStructure reports whether every field of expectedRows[0] is present
// in table[0]. An empty expectation always passes; an empty table fails any
// non-empty expectation.
func ValidateStructure(table, expectedRows types.Table) bool {
	if len(expectedRows) == 0 {
		return true
	}
	if len(table) == 0 {
		return false
	}
	for field := range expectedRows[0] {
		if _, ok := table[0][field]; !ok {
			return false
		}
	}
	return true
}

// =============================================================================
// DATA VALIDATION
// =============================================================================

// ValidateData checks the value field of every data row.
//
// PARAMETERS:
//   - value: The raw document value stored under the table key.
//   - cfg: The table configuration.
//
// RETURNS:
//   - A Result. A value that is not a table yields a single error; an empty
//     table is valid with a warning.
func ValidateData(value any, cfg *config.TableConfig) *Result {
	result := &Result{IsValid: true}

	table, ok := types.AsTable(value)
	if !ok {
		result.addError(&Finding{Row: -1, Value: value, Message: "table data is not an array of rows"})
		return result
	}

	if len(table) == 0 {
		result.addWarning(&Finding{Row: -1, Message: "table is empty"})
		return result
	}

	if cfg.TotalValueField == "" {
		return result
	}

	for i, row := range table {
		if row.IsTotal(cfg.TotalLabelField) {
			continue
		}
		validateValueField(result, i, row, cfg.TotalValueField)
	}

	return result
}

func validateValueField(result *Result, index int, row types.Row, field string) {
	v, exists := row[field]
	if !exists || v == nil || v == "" {
		result.addWarning(&Finding{Row: index, Field: field, Value: v, Message: "missing value"})
		return
	}

	if s, ok := v.(string); ok && !types.IsNumeric(s) {
		result.addError(&Finding{Row: index, Field: field, Value: v, Message: "value is not numeric"})
	}
}
