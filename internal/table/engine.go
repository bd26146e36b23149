// =============================================================================
// Dynamic Tables - Table Engine
// =============================================================================
//
// The Engine is the single surface callers use: initialize, mutate,
// recalculate, query. It owns one rule: a field update that affects
// calculations triggers exactly the recomputation the strategy selects.
//
// LIFECYCLE:
//   1. InitializeAndCompute on first render
//   2. AddRow / RemoveRow / UpdateRow for every edit
//   3. The caller persists document[table_key] after each mutation
//
// CONCURRENCY:
//   The engine holds no locks. Callers must serialize mutations of the same
//   table; reads may run freely between writes.
//
// =============================================================================

package table

import (
	"github.com/ginjaninja78/dynamic-tables/internal/config"
	"github.com/ginjaninja78/dynamic-tables/internal/diagnostics"
	"github.com/ginjaninja78/dynamic-tables/internal/percentage"
	"github.com/ginjaninja78/dynamic-tables/internal/types"
)

// Engine combines initialization, structural edits and recalculation.
type Engine struct {
	logger      diagnostics.Logger
	manipulator *Manipulator
	calculator  *percentage.Calculator
}

// NewEngine creates an Engine. A nil logger discards diagnostics.
func NewEngine(logger diagnostics.Logger) *Engine {
	if logger == nil {
		logger = diagnostics.NewNoOp()
	}
	return &Engine{
		logger:      logger,
		manipulator: NewManipulator(logger),
		calculator:  percentage.NewCalculator(logger),
	}
}

// =============================================================================
// STRUCTURAL OPERATIONS
// =============================================================================

// Initialize seeds the table if needed.
func (e *Engine) Initialize(table *types.Table, cfg *config.TableConfig) {
	if Initialize(table, cfg) {
		e.logger.Debug("table %s: initialized with %d row(s)", cfg.TableKey, len(*table))
	}
}

// AddRow inserts a row before the total row.
func (e *Engine) AddRow(table *types.Table, cfg *config.TableConfig, newRow types.Row) {
	e.manipulator.AddRow(table, cfg, newRow)
}

// RemoveRow removes a data row; total rows are refused.
func (e *Engine) RemoveRow(table *types.Table, cfg *config.TableConfig, index int) bool {
	return e.manipulator.RemoveRow(table, cfg, index)
}

// UpdateRow writes one field and, when autoRecalculate is set and the field
// affects calculation, recomputes what the table's strategy requires.
func (e *Engine) UpdateRow(table *types.Table, cfg *config.TableConfig, index int, field string, value any, autoRecalculate bool) UpdateStatus {
	status := e.manipulator.UpdateRow(table, cfg, index, field, value)
	if status != StatusUpdated {
		return status
	}

	if autoRecalculate && FieldAffectsCalculation(cfg, field) {
		e.Recalculate(*table, cfg)
	}
	return status
}

// =============================================================================
// CALCULATION
// =============================================================================

// Recalculate dispatches on the table's calculation kind. Tables with a sex
// breakdown always use the disaggregated calculator, which maintains its own
// totals.
func (e *Engine) Recalculate(table types.Table, cfg *config.TableConfig) CalculationKind {
	kind := ResolveCalculationKind(cfg)

	if cfg.SexBreakdown != nil && kind != KindNone {
		e.calculator.ComputePercentagesBySex(table, cfg)
		return kind
	}

	switch kind {
	case KindBoth:
		e.calculator.ComputeTotalsAndPercentages(table, cfg)
	case KindPercentages:
		e.calculator.ComputePercentages(table, cfg)
	case KindTotals:
		e.calculator.ComputeAndUpdateTotals(table, cfg)
	case KindNone:
	}
	return kind
}

// InitializeAndCompute initializes the table, then computes percentages if
// they are configured. Used for first render.
func (e *Engine) InitializeAndCompute(table *types.Table, cfg *config.TableConfig) {
	e.Initialize(table, cfg)
	if !ShouldComputePercentages(cfg) {
		return
	}
	if cfg.SexBreakdown != nil {
		e.calculator.ComputePercentagesBySex(*table, cfg)
		return
	}
	e.calculator.ComputePercentages(*table, cfg)
}

// =============================================================================
// DOCUMENT ACCESS
// =============================================================================

// TableOf reads document[cfg.TableKey]. A missing key yields a nil (absent)
// table; a value that is not a sequence of records is reported and treated
// as absent.
func (e *Engine) TableOf(doc types.Document, cfg *config.TableConfig) types.Table {
	raw, ok := doc[cfg.TableKey]
	if !ok || raw == nil {
		return nil
	}
	t, ok := types.AsTable(raw)
	if !ok {
		e.logger.Warn("table %s: document value is %T, not a table", cfg.TableKey, raw)
		return nil
	}
	return t
}

// Store writes table back under cfg.TableKey.
func (e *Engine) Store(doc types.Document, cfg *config.TableConfig, table types.Table) {
	doc[cfg.TableKey] = table
}
