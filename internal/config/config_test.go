package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/dynamic-tables/internal/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestParseTableConfigsSingle(t *testing.T) {
	data := []byte(`
table_key: casos_por_edad
total_label_field: categoria
total_value_field: casos
percentage_field: porcentaje
auto_compute_percentages: false
initial_rows:
  - categoria: "0-14"
    casos: 0
  - categoria: Total
    casos: 0
`)

	configs, err := ParseTableConfigs(data)
	if err != nil {
		t.Fatalf("ParseTableConfigs() error = %v", err)
	}
	if len(configs) != 1 {
		t.Fatalf("len(configs) = %d, want 1", len(configs))
	}

	cfg := configs[0]
	if cfg.TableKey != "casos_por_edad" || cfg.TotalValueField != "casos" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.AutoCompute() {
		t.Error("AutoCompute() = true, want false")
	}
	want := types.Table{{"categoria": "0-14", "casos": 0}, {"categoria": "Total", "casos": 0}}
	if diff := cmp.Diff(want, cfg.InitialRows); diff != "" {
		t.Errorf("initial rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTableConfigsList(t *testing.T) {
	data := []byte(`
tables:
  - table_key: indicadores
    total_label_field: indicador
  - table_key: casos_por_sexo
    total_label_field: categoria
    percentage_field: porcentaje
    sex_breakdown: {}
`)

	configs, err := ParseTableConfigs(data)
	if err != nil {
		t.Fatalf("ParseTableConfigs() error = %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("len(configs) = %d, want 2", len(configs))
	}
	if !configs[0].AutoCompute() {
		t.Error("AutoCompute() should default to true")
	}

	sb := configs[1].SexBreakdown
	if sb == nil {
		t.Fatal("sex breakdown not decoded")
	}
	want := SexBreakdown{
		MenField:          "hombres",
		WomenField:        "mujeres",
		CasesField:        "casos",
		MenPercentField:   "porcentaje_hombres",
		WomenPercentField: "porcentaje_mujeres",
		CasesPercentField: "porcentaje",
	}
	if diff := cmp.Diff(want, *sb); diff != "" {
		t.Errorf("sex breakdown defaults mismatch (-want +got):\n%s", diff)
	}
	if !configs[1].AffectsCalculation("hombres") || !configs[1].AffectsCalculation("mujeres") {
		t.Errorf("breakdown fields should affect calculation: %v", configs[1].FieldsAffectingCalculation)
	}
}

func TestParseTableConfigsValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"missing key", "total_label_field: categoria\n", "table_key is required"},
		{"missing label", "table_key: t\n", "total_label_field is required"},
		{"percentage without value", "table_key: t\ntotal_label_field: c\npercentage_field: p\n", "requires total_value_field"},
		{"bad yaml", "table_key: [\n", "failed to parse"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTableConfigs([]byte(tc.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %q, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestLoadTableConfigs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "edad.csv", "categoria;casos\n0-14;0\n15-64;0\nTotal;0\n")
	writeFile(t, dir, "edad.yaml", `
table_key: casos_por_edad
total_label_field: categoria
total_value_field: casos
percentage_field: porcentaje
initial_rows_file: edad.csv
`)
	writeFile(t, dir, "otros.yml", `
tables:
  - table_key: indicadores
    total_label_field: indicador
`)
	writeFile(t, dir, "README.md", "not a config")

	configs, err := LoadTableConfigs(dir)
	if err != nil {
		t.Fatalf("LoadTableConfigs() error = %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("len(configs) = %d, want 2", len(configs))
	}

	rows := configs["casos_por_edad"].InitialRows
	want := types.Table{
		{"categoria": "0-14", "casos": 0.0},
		{"categoria": "15-64", "casos": 0.0},
		{"categoria": "Total", "casos": 0.0},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("initial rows mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTableConfigsErrors(t *testing.T) {
	t.Run("duplicate key", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.yaml", "table_key: t\ntotal_label_field: c\n")
		writeFile(t, dir, "b.yaml", "table_key: t\ntotal_label_field: c\n")

		if _, err := LoadTableConfigs(dir); err == nil || !strings.Contains(err.Error(), "duplicate") {
			t.Errorf("expected duplicate key error, got %v", err)
		}
	})

	t.Run("missing rows file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.yaml", "table_key: t\ntotal_label_field: c\ninitial_rows_file: nope.csv\n")

		if _, err := LoadTableConfigs(dir); err == nil {
			t.Error("expected an error for a missing initial rows file")
		}
	})
}

func TestLoadMainConfig(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		v := viper.New()
		v.SetConfigFile(filepath.Join(t.TempDir(), "tables.yaml"))

		cfg, err := LoadMainConfig(v)
		if err != nil {
			t.Fatalf("LoadMainConfig() error = %v", err)
		}
		want := &MainConfig{
			ConfigsDir: "./configs",
			Document:   "./document.yaml",
			OutputDir:  "./output",
			LogLevel:   "info",
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("file and environment", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "tables.yaml", "configs_dir: ./tablas\nlog_level: warn\n")
		t.Setenv("TABLES_LOG_LEVEL", "debug")

		v := viper.New()
		v.SetConfigFile(path)

		cfg, err := LoadMainConfig(v)
		if err != nil {
			t.Fatalf("LoadMainConfig() error = %v", err)
		}
		if cfg.ConfigsDir != "./tablas" {
			t.Errorf("ConfigsDir = %q, want ./tablas", cfg.ConfigsDir)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("LogLevel = %q, want environment override debug", cfg.LogLevel)
		}
	})
}
