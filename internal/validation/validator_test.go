package validation

import (
	"strings"
	"testing"

	"github.com/ginjaninja78/dynamic-tables/internal/config"
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

func TestValidateStructure(t *testing.T) {
	expected := types.Table{{"categoria": "0-14", "casos": 0}}

	tests := []struct {
		name     string
		table    types.Table
		expected types.Table
		want     bool
	}{
		{"no expectation", nil, nil, true},
		{"empty table", types.Table{}, expected, false},
		{"all fields present", types.Table{{"categoria": "a", "casos": 1, "extra": "x"}}, expected, true},
		{"missing field", types.Table{{"categoria": "a"}}, expected, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateStructure(tc.table, tc.expected); got != tc.want {
				t.Errorf("ValidateStructure() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidateData(t *testing.T) {
	table := types.Table{
		{"categoria": "a", "casos": 10},
		{"categoria": "b", "casos": "12"},
		{"categoria": "c", "casos": "doce"},
		{"categoria": "d", "casos": ""},
		{"categoria": "e"},
		{"categoria": "f", "casos": "NaN"},
		{"categoria": "g", "casos": "Inf"},
		{"categoria": "Total", "casos": "n/a"},
	}

	result := ValidateData(table, casesConfig())

	if result.IsValid {
		t.Error("IsValid = true, want false")
	}
	if len(result.Errors) != 3 {
		t.Fatalf("len(Errors) = %d, want 3: %v", len(result.Errors), result.Errors)
	}
	if f := result.Errors[0]; f.Row != 2 || f.Field != "casos" || f.Severity != SeverityError {
		t.Errorf("unexpected error finding: %+v", f)
	}
	for i, row := range []int{5, 6} {
		if got := result.Errors[i+1].Row; got != row {
			t.Errorf("non-finite value finding %d on row %d, want %d", i, got, row)
		}
	}
	if len(result.Warnings) != 2 {
		t.Errorf("len(Warnings) = %d, want 2: %v", len(result.Warnings), result.Warnings)
	}
}

func TestValidateDataShapes(t *testing.T) {
	cfg := casesConfig()

	t.Run("not a table", func(t *testing.T) {
		result := ValidateData("oops", cfg)
		if result.IsValid || len(result.Errors) != 1 {
			t.Errorf("expected one error, got %+v", result)
		}
	})

	t.Run("empty table", func(t *testing.T) {
		result := ValidateData([]any{}, cfg)
		if !result.IsValid || len(result.Warnings) != 1 {
			t.Errorf("expected valid with one warning, got %+v", result)
		}
	})

	t.Run("no value field", func(t *testing.T) {
		cfg := casesConfig()
		cfg.TotalValueField = ""
		result := ValidateData(types.Table{{"categoria": "a", "casos": "x"}}, cfg)
		if !result.IsValid || len(result.Errors)+len(result.Warnings) != 0 {
			t.Errorf("expected clean result, got %+v", result)
		}
	})
}

func TestFindingError(t *testing.T) {
	row := &Finding{Severity: SeverityError, Row: 3, Field: "casos", Value: "x", Message: "value is not numeric"}
	if got := row.Error(); !strings.Contains(got, "Row 3") || !strings.HasPrefix(got, "[ERROR]") {
		t.Errorf("Error() = %q", got)
	}

	table := &Finding{Severity: SeverityWarning, Row: -1, Message: "table is empty"}
	if got := table.Error(); got != "[WARNING] table is empty" {
		t.Errorf("Error() = %q", got)
	}
}
