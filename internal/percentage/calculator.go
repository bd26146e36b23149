// =============================================================================
// Dynamic Tables - Percentage Calculator
// =============================================================================
//
// This module computes a table's total and the percentage each data row
// contributes to it.
//
// CALCULATION PIPELINE:
//   1. Sum the value field over every row that is not the total row
//   2. Correct a stale value stored in the total row
//   3. Compute and round each data row's raw percentage
//   4. Push the rounding residual into the last data row
//   5. Write the formatted strings back in row order
//
// The computed sum is always authoritative. A value typed into the total row
// is only read to decide whether it must be overwritten.
//
// ERROR HANDLING:
//   A config missing the fields a calculation needs degrades to a no-op with
//   a debug diagnostic. Nothing here returns an error.
//
// =============================================================================

package percentage

import (
	"github.com/ginjaninja78/dynamic-tables/internal/config"
	"github.com/ginjaninja78/dynamic-tables/internal/diagnostics"
	"github.com/ginjaninja78/dynamic-tables/internal/types"
)

// Calculator computes totals and percentages in place.
type Calculator struct {
	logger diagnostics.Logger
}

// NewCalculator creates a Calculator. A nil logger discards diagnostics.
func NewCalculator(logger diagnostics.Logger) *Calculator {
	if logger == nil {
		logger = diagnostics.NewNoOp()
	}
	return &Calculator{logger: logger}
}

// =============================================================================
// TOTALS
// =============================================================================

// ComputeTotal sums cfg.TotalValueField over the rows that are not the total
// row. Missing and non-numeric values count as 0.
func ComputeTotal(table types.Table, cfg *config.TableConfig) float64 {
	if cfg.TotalValueField == "" {
		return 0
	}
	return sumField(table, cfg.TotalLabelField, cfg.TotalValueField)
}

func sumField(table types.Table, labelField, valueField string) float64 {
	var total float64
	for _, row := range table {
		if row == nil || row.IsTotal(labelField) {
			continue
		}
		total += types.Number(row[valueField])
	}
	return total
}

// ComputeAndUpdateTotals writes the computed total into the total row's value
// field and, when a percentage field is configured, forces the total row's
// percentage to "100,00 %".
func (c *Calculator) ComputeAndUpdateTotals(table types.Table, cfg *config.TableConfig) {
	if cfg.TotalValueField == "" {
		c.logger.Debug("table %s: no total value field, skipping totals", cfg.TableKey)
		return
	}

	idx := table.TotalRowIndex(cfg.TotalLabelField)
	if idx < 0 {
		c.logger.Debug("table %s: no total row to update", cfg.TableKey)
		return
	}

	total := ComputeTotal(table, cfg)
	table[idx][cfg.TotalValueField] = total
	if cfg.PercentageField != "" {
		table[idx][cfg.PercentageField] = FullPercent
	}
}

// =============================================================================
// PERCENTAGES
// =============================================================================

// ComputePercentages recomputes the percentage field of every data row.
//
// PARAMETERS:
//   - table: The table, modified in place.
//   - cfg: Must name both TotalValueField and PercentageField.
//
// When the total is not positive every data row receives "0,00 %".
func (c *Calculator) ComputePercentages(table types.Table, cfg *config.TableConfig) {
	if cfg.TotalValueField == "" || cfg.PercentageField == "" {
		c.logger.Debug("table %s: percentages need value and percentage fields", cfg.TableKey)
		return
	}

	total := ComputeTotal(table, cfg)
	c.correctTotalRow(table, cfg, total)

	var dataRows []types.Row
	for _, row := range table {
		if row != nil && !row.IsTotal(cfg.TotalLabelField) {
			dataRows = append(dataRows, row)
		}
	}

	if total <= 0 {
		for _, row := range dataRows {
			row[cfg.PercentageField] = ZeroPercent
		}
		return
	}

	adjusted := AdjustToSum100(rawPercentages(dataRows, cfg.TotalValueField, total))
	for i, row := range dataRows {
		row[cfg.PercentageField] = FormatPercentage(adjusted[i])
	}
}

// ComputeTotalsAndPercentages runs ComputeAndUpdateTotals then
// ComputePercentages.
func (c *Calculator) ComputeTotalsAndPercentages(table types.Table, cfg *config.TableConfig) {
	c.ComputeAndUpdateTotals(table, cfg)
	c.ComputePercentages(table, cfg)
}

// correctTotalRow overwrites a positive total-row value that disagrees with
// the computed sum.
func (c *Calculator) correctTotalRow(table types.Table, cfg *config.TableConfig, total float64) {
	idx := table.TotalRowIndex(cfg.TotalLabelField)
	if idx < 0 {
		return
	}

	stored := types.Number(table[idx][cfg.TotalValueField])
	if stored > 0 && stored != total {
		c.logger.Warn("table %s: total row value %v corrected to %v", cfg.TableKey, stored, total)
		table[idx][cfg.TotalValueField] = total
	}
}

// rawPercentages returns each row's share of total, rounded to two decimals.
func rawPercentages(rows []types.Row, valueField string, total float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = Round2(types.Number(row[valueField]) / total * 100)
	}
	return out
}
