// =============================================================================
// Dynamic Tables - Shared Types
// =============================================================================
//
// This package contains the record types shared across the engine packages to
// avoid import cycles. Types defined here are used by:
//   - table
//   - percentage
//   - query
//   - validation
//   - rowsource
//
// ROW MODEL:
//   Rows are open records. The engine only knows the handful of field names a
//   TableConfig points it at; every other field is carried through untouched.
//
// =============================================================================

package types

import (
	"fmt"
	"maps"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// =============================================================================
// ROW AND TABLE
// =============================================================================

// Row is a single record of a table. Values are strings, numbers or nil.
type Row map[string]any

// Table is an ordered sequence of rows.
// A nil Table is "absent"; a non-nil zero-length Table is "empty".
type Table []Row

// Document is the enclosing document's field mapping. Tables live under their
// table key.
type Document map[string]any

// Clone returns a shallow copy of the row. Row values are scalars, so this is
// enough to keep the copy independent of the original.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// Clone returns a copy of the table with every row cloned.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for i, row := range t {
		out[i] = row.Clone()
	}
	return out
}

// =============================================================================
// VALUE HELPERS
// =============================================================================

// String returns the display form of a row value. nil renders as "".
func String(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64, float32:
		return cast.ToString(val)
	}
	return fmt.Sprint(v)
}

// Number coerces a row value to float64. Anything that is not a finite
// number, including nil, unparseable strings, "NaN" and "Inf", yields 0.
func Number(v any) float64 {
	f, ok := toFinite(v)
	if !ok {
		return 0
	}
	return f
}

// IsNumeric reports whether v can be read as a finite number.
func IsNumeric(v any) bool {
	_, ok := toFinite(v)
	return ok
}

func toFinite(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// =============================================================================
// DOCUMENT ACCESS
// =============================================================================

// AsTable converts a raw document value into a Table.
//
// RETURNS:
//   - The table and true when v is a sequence of records.
//   - nil and false otherwise.
//
// Values decoded from YAML or JSON arrive as []any holding map[string]any,
// so both the typed and the decoded shapes are accepted.
func AsTable(v any) (Table, bool) {
	switch val := v.(type) {
	case Table:
		return val, true
	case []Row:
		return Table(val), true
	case []map[string]any:
		out := make(Table, len(val))
		for i, m := range val {
			out[i] = Row(m)
		}
		return out, true
	case []any:
		out := make(Table, 0, len(val))
		for _, item := range val {
			row, ok := asRow(item)
			if !ok {
				return nil, false
			}
			out = append(out, row)
		}
		return out, true
	}
	return nil, false
}

func asRow(v any) (Row, bool) {
	switch val := v.(type) {
	case Row:
		return val, true
	case map[string]any:
		return Row(val), true
	case Document:
		return Row(val), true
	case map[any]any:
		row := make(Row, len(val))
		for k, item := range val {
			row[fmt.Sprint(k)] = item
		}
		return row, true
	case nil:
		return nil, true
	}
	return nil, false
}

// =============================================================================
// TOTAL ROW CLASSIFICATION
// =============================================================================

// totalMarker is searched for, case-insensitively, in a row's label field.
const totalMarker = "total"

// IsTotal reports whether the row is a synthetic total row: the lower-cased
// value of labelField contains "total". A nil row is never a total row.
//
// This is a substring test, so "Total", "TOTAL" and "Gran Total" all match.
func (r Row) IsTotal(labelField string) bool {
	if r == nil {
		return false
	}
	return strings.Contains(strings.ToLower(String(r[labelField])), totalMarker)
}

// TotalRowIndex returns the index of the first total row, or -1.
func (t Table) TotalRowIndex(labelField string) int {
	for i, row := range t {
		if row.IsTotal(labelField) {
			return i
		}
	}
	return -1
}
