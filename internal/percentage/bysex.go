package percentage

import (
	"github.com/ginjaninja78/dynamic-tables/internal/config"
	"github.com/ginjaninja78/dynamic-tables/internal/types"
)

// ComputePercentagesBySex handles tables broken down into men and women.
//
// For every data row the cases field is recomputed as men + women. Three
// series are then produced: men over total men, women over total women, and
// cases over total cases. Only the cases series is adjusted to sum to 100;
// the other two are relative to their own totals and are reported rounded
// but unadjusted.
//
// The total row, when present, receives the three sums and "100,00 %" for
// every series whose total is positive.
func (c *Calculator) ComputePercentagesBySex(table types.Table, cfg *config.TableConfig) {
	sb := cfg.SexBreakdown
	if sb == nil {
		c.logger.Debug("table %s: no sex breakdown configured", cfg.TableKey)
		return
	}

	var dataRows []types.Row
	for _, row := range table {
		if row == nil || row.IsTotal(cfg.TotalLabelField) {
			continue
		}
		row[sb.CasesField] = types.Number(row[sb.MenField]) + types.Number(row[sb.WomenField])
		dataRows = append(dataRows, row)
	}

	series := []struct {
		value, percent string
		adjust         bool
	}{
		{sb.MenField, sb.MenPercentField, false},
		{sb.WomenField, sb.WomenPercentField, false},
		{sb.CasesField, sb.CasesPercentField, true},
	}

	idx := table.TotalRowIndex(cfg.TotalLabelField)

	for _, s := range series {
		total := sumField(table, cfg.TotalLabelField, s.value)

		if idx >= 0 {
			table[idx][s.value] = total
		}

		if total <= 0 {
			for _, row := range dataRows {
				row[s.percent] = ZeroPercent
			}
			if idx >= 0 {
				table[idx][s.percent] = ZeroPercent
			}
			continue
		}

		values := rawPercentages(dataRows, s.value, total)
		if s.adjust {
			values = AdjustToSum100(values)
		}
		for i, row := range dataRows {
			row[s.percent] = FormatPercentage(values[i])
		}
		if idx >= 0 {
			table[idx][s.percent] = FullPercent
		}
	}
}
