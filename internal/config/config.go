// =============================================================================
// Dynamic Tables - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing all configuration.
// It handles both the application-level settings and the per-table
// configurations that describe each dynamic table's shape.
//
// CONFIGURATION FILES:
//   1. Main Config (tables.yaml): Global settings, read through Viper so that
//      every key can be overridden with a TABLES_* environment variable.
//   2. Table Configs (configs/*.yaml): One file per table, or a list of
//      tables per file.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/dynamic-tables/internal/rowsource"
	"github.com/ginjaninja78/dynamic-tables/internal/types"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// ConfigsDir is the directory containing table configurations.
	// Default: "./configs"
	ConfigsDir string `mapstructure:"configs_dir" yaml:"configs_dir"`

	// Document is the path of the YAML document holding the tables.
	// Default: "./document.yaml"
	Document string `mapstructure:"document" yaml:"document"`

	// OutputDir is where exports are written.
	// Default: "./output"
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// LogFile is the path to the application log file. Empty logs to stderr.
	LogFile string `mapstructure:"log_file" yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// EnvPrefix is the prefix for environment overrides of main config keys.
const EnvPrefix = "TABLES"

// =============================================================================
// TABLE CONFIGURATION STRUCTURE
// =============================================================================

// TableConfig is the declarative description of one table's shape.
type TableConfig struct {
	// TableKey identifies the table inside the enclosing document.
	TableKey string `yaml:"table_key"`

	// TotalLabelField is the field inspected to detect the total row.
	TotalLabelField string `yaml:"total_label_field"`

	// TotalValueField holds the quantity that is summed and percentaged.
	TotalValueField string `yaml:"total_value_field,omitempty"`

	// PercentageField receives the computed percentage string.
	PercentageField string `yaml:"percentage_field,omitempty"`

	// InitialRows seeds the table on first use.
	InitialRows types.Table `yaml:"initial_rows,omitempty"`

	// InitialRowsFile is a CSV or XLSX file loaded into InitialRows.
	// Relative paths resolve against the config file's directory.
	InitialRowsFile string `yaml:"initial_rows_file,omitempty"`

	// AutoComputePercentages disables recomputation on mutation when set to
	// false. Unset means true.
	AutoComputePercentages *bool `yaml:"auto_compute_percentages,omitempty"`

	// FieldsAffectingCalculation lists the fields whose changes trigger a
	// recomputation, in addition to TotalValueField.
	FieldsAffectingCalculation []string `yaml:"fields_affecting_calculation,omitempty"`

	// SexBreakdown switches percentage computation to the sex-disaggregated
	// variant.
	SexBreakdown *SexBreakdown `yaml:"sex_breakdown,omitempty"`
}

// SexBreakdown names the fields of a sex-disaggregated table.
type SexBreakdown struct {
	MenField          string `yaml:"men_field"`
	WomenField        string `yaml:"women_field"`
	CasesField        string `yaml:"cases_field"`
	MenPercentField   string `yaml:"men_percentage_field"`
	WomenPercentField string `yaml:"women_percentage_field"`
	CasesPercentField string `yaml:"cases_percentage_field"`
}

// AutoCompute reports the effective value of AutoComputePercentages.
func (c *TableConfig) AutoCompute() bool {
	return c.AutoComputePercentages == nil || *c.AutoComputePercentages
}

// AffectsCalculation reports whether field is listed in
// FieldsAffectingCalculation.
func (c *TableConfig) AffectsCalculation(field string) bool {
	return slices.Contains(c.FieldsAffectingCalculation, field)
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig reads the main configuration through v.
//
// PARAMETERS:
//   - v: A Viper instance whose config file and env bindings are already set.
//
// RETURNS:
//   - A pointer to the MainConfig struct with defaults applied.
//   - An error if the file exists but cannot be parsed.
//
// A missing config file is not an error; defaults and environment overrides
// still apply.
func LoadMainConfig(v *viper.Viper) (*MainConfig, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range mainConfigDefaults() {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config MainConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

func mainConfigDefaults() map[string]any {
	return map[string]any{
		"configs_dir": "./configs",
		"document":    "./document.yaml",
		"output_dir":  "./output",
		"log_file":    "",
		"log_level":   "info",
	}
}

// LoadTableConfigs loads all table configurations from a directory.
//
// PARAMETERS:
//   - configsDir: The directory containing table configuration files.
//
// RETURNS:
//   - A map of table configurations keyed by table key.
//   - An error if any file cannot be parsed, fails validation, or declares a
//     table key that another file already declared.
func LoadTableConfigs(configsDir string) (map[string]*TableConfig, error) {
	configs := make(map[string]*TableConfig)

	files, err := filepath.Glob(filepath.Join(configsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list config files: %w", err)
	}
	ymlFiles, err := filepath.Glob(filepath.Join(configsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list config files: %w", err)
	}
	files = append(files, ymlFiles...)
	slices.Sort(files)

	for _, file := range files {
		loaded, err := LoadTableConfigFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
		for _, cfg := range loaded {
			if _, exists := configs[cfg.TableKey]; exists {
				return nil, fmt.Errorf("duplicate table key %q in %s", cfg.TableKey, file)
			}
			configs[cfg.TableKey] = cfg
		}
	}

	return configs, nil
}

// LoadTableConfigFile loads a single file holding either one table
// configuration or a "tables:" list of them.
func LoadTableConfigFile(filePath string) ([]*TableConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	configs, err := ParseTableConfigs(data)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(filePath)
	for _, cfg := range configs {
		if err := resolveInitialRowsFile(cfg, baseDir); err != nil {
			return nil, err
		}
	}

	return configs, nil
}

// ParseTableConfigs decodes, defaults and validates table configurations from
// YAML bytes. InitialRowsFile is left unresolved.
func ParseTableConfigs(data []byte) ([]*TableConfig, error) {
	var list struct {
		Tables []*TableConfig `yaml:"tables"`
	}
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	configs := list.Tables
	if len(configs) == 0 {
		var single TableConfig
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("failed to parse file: %w", err)
		}
		configs = []*TableConfig{&single}
	}

	for _, cfg := range configs {
		ApplyTableConfigDefaults(cfg)
		if err := ValidateTableConfig(cfg); err != nil {
			return nil, err
		}
	}

	return configs, nil
}

// ApplyTableConfigDefaults sets default values for a table configuration.
func ApplyTableConfigDefaults(cfg *TableConfig) {
	sb := cfg.SexBreakdown
	if sb == nil {
		return
	}
	if sb.MenField == "" {
		sb.MenField = "hombres"
	}
	if sb.WomenField == "" {
		sb.WomenField = "mujeres"
	}
	if sb.CasesField == "" {
		sb.CasesField = "casos"
	}
	if sb.MenPercentField == "" {
		sb.MenPercentField = "porcentaje_hombres"
	}
	if sb.WomenPercentField == "" {
		sb.WomenPercentField = "porcentaje_mujeres"
	}
	if sb.CasesPercentField == "" {
		sb.CasesPercentField = cfg.PercentageField
	}
	if sb.CasesPercentField == "" {
		sb.CasesPercentField = "porcentaje"
	}

	// Editing either breakdown field changes the cases column.
	for _, field := range []string{sb.MenField, sb.WomenField} {
		if !cfg.AffectsCalculation(field) {
			cfg.FieldsAffectingCalculation = append(cfg.FieldsAffectingCalculation, field)
		}
	}
}

// ValidateTableConfig checks the fields every table needs.
func ValidateTableConfig(cfg *TableConfig) error {
	if cfg.TableKey == "" {
		return fmt.Errorf("table_key is required")
	}
	if cfg.TotalLabelField == "" {
		return fmt.Errorf("table %s: total_label_field is required", cfg.TableKey)
	}
	if cfg.PercentageField != "" && cfg.TotalValueField == "" && cfg.SexBreakdown == nil {
		return fmt.Errorf("table %s: percentage_field requires total_value_field", cfg.TableKey)
	}
	return nil
}

func resolveInitialRowsFile(cfg *TableConfig, baseDir string) error {
	if cfg.InitialRowsFile == "" || len(cfg.InitialRows) > 0 {
		return nil
	}

	path := cfg.InitialRowsFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	rows, err := rowsource.Read(path)
	if err != nil {
		return fmt.Errorf("table %s: failed to load initial rows: %w", cfg.TableKey, err)
	}
	cfg.InitialRows = rows
	return nil
}
