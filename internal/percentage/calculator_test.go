package percentage

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ginjaninja78/dynamic-tables/internal/config"
	"github.com/ginjaninja78/dynamic-tables/internal/diagnostics"
	"github.com/ginjaninja78/dynamic-tables/internal/types"
)

func casesConfig() *config.TableConfig {
	return &config.TableConfig{
		TableKey:        "casos_por_edad",
		TotalLabelField: "categoria",
		TotalValueField: "casos",
		PercentageField: "porcentaje",
	}
}

func percentages(table types.Table, field string) []any {
	out := make([]any, len(table))
	for i, row := range table {
		out[i] = row[field]
	}
	return out
}

func TestComputeTotalIgnoresTotalRow(t *testing.T) {
	table := types.Table{
		{"casos": 30},
		{"casos": 20},
		{"categoria": "Total", "casos": 999},
	}

	if got := ComputeTotal(table, casesConfig()); got != 50 {
		t.Errorf("ComputeTotal() = %v, want 50", got)
	}
}

func TestComputeTotalPermissiveParsing(t *testing.T) {
	table := types.Table{
		{"categoria": "a", "casos": "12"},
		{"categoria": "b", "casos": " 3.5 "},
		{"categoria": "c", "casos": "n/a"},
		{"categoria": "d"},
		{"categoria": "e", "casos": nil},
		{"categoria": "f", "casos": 4.5},
	}

	if got := ComputeTotal(table, casesConfig()); got != 20 {
		t.Errorf("ComputeTotal() = %v, want 20", got)
	}
}

func TestComputePercentagesCorrectsStaleTotal(t *testing.T) {
	rec := &diagnostics.Recorder{}
	table := types.Table{
		{"casos": 30},
		{"casos": 20},
		{"categoria": "Total", "casos": 999},
	}

	NewCalculator(rec).ComputePercentages(table, casesConfig())

	if got := types.Number(table[2]["casos"]); got != 50 {
		t.Errorf("total row casos = %v, want 50", got)
	}
	want := []any{"60,00 %", "40,00 %", nil}
	if diff := cmp.Diff(want, percentages(table, "porcentaje")); diff != "" {
		t.Errorf("percentages mismatch (-want +got):\n%s", diff)
	}
	if rec.Count("warn") != 1 {
		t.Errorf("expected one warning for the corrected total, got %v", rec.Entries())
	}
}

func TestComputePercentagesLeavesNonPositiveTotalValue(t *testing.T) {
	table := types.Table{
		{"categoria": "a", "casos": 1},
		{"categoria": "Total", "casos": 0},
	}

	NewCalculator(nil).ComputePercentages(table, casesConfig())

	if got := table[1]["casos"]; got != 0 {
		t.Errorf("total row casos = %v, want untouched 0", got)
	}
}

func TestComputePercentagesZeroTotal(t *testing.T) {
	table := types.Table{
		{"categoria": "a", "casos": 0},
		{"categoria": "b"},
		{"categoria": "Total"},
	}

	NewCalculator(nil).ComputePercentages(table, casesConfig())

	want := []any{"0,00 %", "0,00 %", nil}
	if diff := cmp.Diff(want, percentages(table, "porcentaje")); diff != "" {
		t.Errorf("percentages mismatch (-want +got):\n%s", diff)
	}
}

func TestComputePercentagesMissingFieldsIsNoOp(t *testing.T) {
	cfg := casesConfig()
	cfg.PercentageField = ""
	table := types.Table{{"categoria": "a", "casos": 1}}
	before := table.Clone()

	NewCalculator(nil).ComputePercentages(table, cfg)

	if diff := cmp.Diff(before, table); diff != "" {
		t.Errorf("table changed (-want +got):\n%s", diff)
	}
}

func TestComputeAndUpdateTotals(t *testing.T) {
	table := types.Table{
		{"categoria": "a", "casos": 30},
		{"categoria": "b", "casos": 20},
		{"categoria": "TOTAL", "casos": 0, "porcentaje": "99,00 %"},
	}

	NewCalculator(nil).ComputeAndUpdateTotals(table, casesConfig())

	want := types.Row{"categoria": "TOTAL", "casos": 50.0, "porcentaje": FullPercent}
	if diff := cmp.Diff(want, table[2]); diff != "" {
		t.Errorf("total row mismatch (-want +got):\n%s", diff)
	}
	if _, ok := table[0]["porcentaje"]; ok {
		t.Errorf("data rows should not receive percentages")
	}
}

func TestComputeTotalsAndPercentages(t *testing.T) {
	table := types.Table{
		{"categoria": "a", "casos": 1},
		{"categoria": "b", "casos": 1},
		{"categoria": "c", "casos": 1},
		{"categoria": "Gran Total"},
	}

	NewCalculator(nil).ComputeTotalsAndPercentages(table, casesConfig())

	want := []any{"33,33 %", "33,33 %", "33,34 %", FullPercent}
	if diff := cmp.Diff(want, percentages(table, "porcentaje")); diff != "" {
		t.Errorf("percentages mismatch (-want +got):\n%s", diff)
	}
	if got := types.Number(table[3]["casos"]); got != 3 {
		t.Errorf("total = %v, want 3", got)
	}
}

func TestComputeTotalsAndPercentagesIgnoresNonFinite(t *testing.T) {
	table := types.Table{
		{"categoria": "a", "casos": 30},
		{"categoria": "b", "casos": "NaN"},
		{"categoria": "c", "casos": 20},
		{"categoria": "d", "casos": "-inf"},
		{"categoria": "Total", "casos": 999},
	}

	NewCalculator(nil).ComputeTotalsAndPercentages(table, casesConfig())

	want := []any{"60,00 %", "0,00 %", "40,00 %", "0,00 %", FullPercent}
	if diff := cmp.Diff(want, percentages(table, "porcentaje")); diff != "" {
		t.Errorf("percentages mismatch (-want +got):\n%s", diff)
	}
	if got := table[4]["casos"]; got != 50.0 {
		t.Errorf("total = %v, want 50", got)
	}
}
