// Package query pulls single values out of tables for other parts of the
// document, matching rows by a case-insensitive substring of a label.
package query

import (
	"strings"

	"github.com/ginjaninja78/dynamic-tables/internal/types"
)

const (
	// IndicatorField is the label field of indicator tables.
	IndicatorField = "indicador"

	// CategoryField is the label field of category tables.
	CategoryField = "categoria"
)

// Lookup returns the string form of returnField from the first row whose
// searchField contains searchValue, ignoring case. It returns "" when no row
// matches.
func Lookup(table types.Table, searchField, searchValue, returnField string) string {
	needle := strings.ToLower(searchValue)
	for _, row := range table {
		if row == nil {
			continue
		}
		if strings.Contains(strings.ToLower(types.String(row[searchField])), needle) {
			return types.String(row[returnField])
		}
	}
	return ""
}

// LookupValue is Lookup over a raw document value. Anything that is not a
// sequence of records yields "".
func LookupValue(value any, searchField, searchValue, returnField string) string {
	table, ok := types.AsTable(value)
	if !ok {
		return ""
	}
	return Lookup(table, searchField, searchValue, returnField)
}

// ByIndicator looks up a row by its "indicador" field.
func ByIndicator(value any, indicator, returnField string) string {
	return LookupValue(value, IndicatorField, indicator, returnField)
}

// ByCategory looks up a row by its "categoria" field.
func ByCategory(value any, category, returnField string) string {
	return LookupValue(value, CategoryField, category, returnField)
}
