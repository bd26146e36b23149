package table

import (
	"slices"

	"github.com/ginjaninja78/dynamic-tables/internal/config"
	"github.com/ginjaninja78/dynamic-tables/internal/diagnostics"
	"github.com/ginjaninja78/dynamic-tables/internal/types"
)

// =============================================================================
// UPDATE STATUS
// =============================================================================

// UpdateStatus is the outcome of UpdateRow.
type UpdateStatus int

const (
	// StatusUpdated means the field was written.
	StatusUpdated UpdateStatus = iota

	// StatusIndexOutOfRange means the row does not exist (yet) and nothing
	// was written. A concurrent edit may still be creating it.
	StatusIndexOutOfRange
)

func (s UpdateStatus) String() string {
	switch s {
	case StatusUpdated:
		return "updated"
	case StatusIndexOutOfRange:
		return "index out of range"
	}
	return "unknown"
}

// =============================================================================
// ROW MANIPULATOR
// =============================================================================

// Manipulator performs structural edits on tables in place. Callers are
// responsible for persisting the result.
type Manipulator struct {
	logger diagnostics.Logger
}

// NewManipulator creates a Manipulator. A nil logger discards diagnostics.
func NewManipulator(logger diagnostics.Logger) *Manipulator {
	if logger == nil {
		logger = diagnostics.NewNoOp()
	}
	return &Manipulator{logger: logger}
}

// AddRow inserts newRow (or a default row when nil) immediately before the
// total row, or appends it when there is none. An absent or empty table is
// initialized first.
func (m *Manipulator) AddRow(table *types.Table, cfg *config.TableConfig, newRow types.Row) {
	if len(*table) == 0 {
		Initialize(table, cfg)
	}

	row := BuildDefaultRow(cfg, newRow)

	idx := table.TotalRowIndex(cfg.TotalLabelField)
	if idx < 0 {
		*table = append(*table, row)
		return
	}
	*table = slices.Insert(*table, idx, row)
}

// RemoveRow removes the row at index.
//
// RETURNS:
//   - false, leaving the table untouched, when the table is empty, the index
//     is out of range, or the row is the total row.
//   - true once the row is removed.
func (m *Manipulator) RemoveRow(table *types.Table, cfg *config.TableConfig, index int) bool {
	t := *table
	if len(t) == 0 {
		m.logger.Warn("table %s: cannot remove row %d from an empty table", cfg.TableKey, index)
		return false
	}
	if index < 0 || index >= len(t) {
		m.logger.Warn("table %s: remove index %d out of range (len %d)", cfg.TableKey, index, len(t))
		return false
	}
	if t[index].IsTotal(cfg.TotalLabelField) {
		m.logger.Warn("table %s: refusing to remove total row %d", cfg.TableKey, index)
		return false
	}

	*table = slices.Delete(t, index, index+1)
	return true
}

// UpdateRow sets table[index][field] = value. An absent table is initialized
// first. An out-of-range index is reported, never treated as an error.
func (m *Manipulator) UpdateRow(table *types.Table, cfg *config.TableConfig, index int, field string, value any) UpdateStatus {
	if *table == nil {
		Initialize(table, cfg)
	}

	t := *table
	if index < 0 || index >= len(t) {
		m.logger.Warn("table %s: update index %d out of range (len %d), field %s ignored",
			cfg.TableKey, index, len(t), field)
		return StatusIndexOutOfRange
	}

	if t[index] == nil {
		t[index] = types.Row{}
	}
	t[index][field] = value
	return StatusUpdated
}
