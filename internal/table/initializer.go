// =============================================================================
// Dynamic Tables - Row Initializer
// =============================================================================
//
// Produces the starting content of a table: a copy of the configured initial
// rows, or a single default row built from the config's field names.
//
// REINITIALIZATION:
//   A table that already has content is kept unless it is clearly a leftover
//   placeholder: fewer rows than the configured structure, every one of them
//   holding only empty-sentinel values. This catches the single blank row
//   left behind after the configured structure changed, without ever
//   overwriting data a user typed.
//
// =============================================================================

package table

import (
	"github.com/ginjaninja78/dynamic-tables/internal/config"
	"github.com/ginjaninja78/dynamic-tables/internal/types"
)

// emptySentinels are the string values that count as "nothing entered yet".
var emptySentinels = map[string]struct{}{
	"":       {},
	"0":      {},
	"0%":     {},
	"0,00 %": {},
}

// IsEmptyValue reports whether v is one of the empty sentinels: nil, "",
// "0", "0%", "0,00 %" or a numeric zero.
func IsEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		_, ok := emptySentinels[val]
		return ok
	case bool:
		return false
	}
	return types.IsNumeric(v) && types.Number(v) == 0
}

// IsEmptyRow reports whether every field of row is an empty sentinel.
func IsEmptyRow(row types.Row) bool {
	for _, v := range row {
		if !IsEmptyValue(v) {
			return false
		}
	}
	return true
}

// NeedsReinitialization decides whether current must be replaced by
// initialRows.
//
// RETURNS:
//   - false when no initial rows are configured.
//   - true when current is absent or empty.
//   - true when current is shorter than initialRows and holds only empty rows.
//   - false otherwise.
func NeedsReinitialization(current, initialRows types.Table) bool {
	if len(initialRows) == 0 {
		return false
	}
	if len(current) == 0 {
		return true
	}
	if len(current) >= len(initialRows) {
		return false
	}
	for _, row := range current {
		if !IsEmptyRow(row) {
			return false
		}
	}
	return true
}

// BuildDefaultRow returns override when given, else a blank row holding the
// label field and, if configured, a zero value field. The percentage field is
// derived and never defaulted.
func BuildDefaultRow(cfg *config.TableConfig, override types.Row) types.Row {
	if override != nil {
		return override
	}
	row := types.Row{cfg.TotalLabelField: ""}
	if cfg.TotalValueField != "" {
		row[cfg.TotalValueField] = 0
	}
	return row
}

// Initialize seeds *table when it is absent, empty, or needs
// reinitialization. Configured initial rows are cloned, never aliased.
//
// RETURNS:
//   - true if the table content was replaced.
func Initialize(table *types.Table, cfg *config.TableConfig) bool {
	if len(*table) > 0 && !NeedsReinitialization(*table, cfg.InitialRows) {
		return false
	}

	if len(cfg.InitialRows) > 0 {
		*table = cfg.InitialRows.Clone()
		return true
	}

	*table = types.Table{BuildDefaultRow(cfg, nil)}
	return true
}
