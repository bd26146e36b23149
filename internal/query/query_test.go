package query

import (
	"testing"

	"github.com/ginjaninja78/dynamic-tables/internal/types"
)

func indicators() types.Table {
	return types.Table{
		{"indicador": "Tasa de Incidencia", "valor": 12.5, "unidad": "por 100.000"},
		{"indicador": "Tasa de letalidad", "valor": "3,20 %"},
		{"indicador": "Casos nuevos"},
	}
}

func TestLookup(t *testing.T) {
	table := indicators()

	tests := []struct {
		name        string
		search, ret string
		want        string
	}{
		{"exact", "Tasa de Incidencia", "valor", "12.5"},
		{"case insensitive substring", "LETALIDAD", "valor", "3,20 %"},
		{"first match wins", "tasa", "valor", "12.5"},
		{"missing return field", "casos", "valor", ""},
		{"no match", "mortalidad", "valor", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Lookup(table, IndicatorField, tc.search, tc.ret); got != tc.want {
				t.Errorf("Lookup(%q, %q) = %q, want %q", tc.search, tc.ret, got, tc.want)
			}
		})
	}
}

func TestLookupIsReadOnly(t *testing.T) {
	table := indicators()
	first := Lookup(table, IndicatorField, "incidencia", "valor")
	second := Lookup(table, IndicatorField, "incidencia", "valor")

	if first != second {
		t.Errorf("repeated lookups differ: %q then %q", first, second)
	}
	if len(table) != 3 || table[0]["valor"] != 12.5 {
		t.Errorf("table changed: %v", table)
	}
}

func TestLookupValue(t *testing.T) {
	decoded := []any{
		map[string]any{"categoria": "Hombres", "casos": 40},
		nil,
		map[string]any{"categoria": "Mujeres", "casos": 60},
	}

	if got := ByCategory(decoded, "mujeres", "casos"); got != "60" {
		t.Errorf("ByCategory() = %q, want 60", got)
	}
	if got := ByIndicator(indicators(), "casos nuevos", "indicador"); got != "Casos nuevos" {
		t.Errorf("ByIndicator() = %q, want Casos nuevos", got)
	}

	for _, v := range []any{nil, "text", 42, map[string]any{"a": 1}} {
		if got := LookupValue(v, CategoryField, "a", "a"); got != "" {
			t.Errorf("LookupValue(%#v) = %q, want empty", v, got)
		}
	}
}
