// =============================================================================
// Dynamic Tables - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (tables)
//   ├── showCmd       (tables show)
//   ├── computeCmd    (tables compute)
//   ├── addRowCmd     (tables add-row)
//   ├── removeRowCmd  (tables remove-row)
//   ├── updateCmd     (tables update)
//   ├── lookupCmd     (tables lookup)
//   ├── validateCmd   (tables validate)
//   ├── exportCmd     (tables export)
//   └── versionCmd    (tables version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --document, --table, --verbose)
//   2. Initializing Viper and loading the main configuration
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/dynamic-tables/internal/config"
	"github.com/ginjaninja78/dynamic-tables/internal/diagnostics"
	"github.com/ginjaninja78/dynamic-tables/internal/table"
	"github.com/ginjaninja78/dynamic-tables/internal/types"
	"github.com/ginjaninja78/dynamic-tables/pkg/utils"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// documentPath overrides the configured document path.
var documentPath string

// tableKey selects the table a command operates on.
var tableKey string

// verbose forces debug logging.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tables",
	Short: "Dynamic tables - maintain document tables whose percentages always sum to 100",
	Long: `tables maintains the array-of-records tables embedded in a YAML document.

Each table is described by a configuration file: which field marks the total
row, which field is summed, and which field receives the percentage. Every
edit keeps the total row last and recomputes percentages so that the visible
column adds up to exactly 100,00 %.

Example Usage:
  tables show --table casos_por_edad
  tables add-row --table casos_por_edad --set categoria="65 y más" --set casos=12
  tables update --table casos_por_edad --row 0 --field casos --value 30
  tables lookup --table casos_por_edad --by categoria --match "65" --field porcentaje`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "tables.yaml", "Path to the main configuration file")
	rootCmd.PersistentFlags().StringVar(&documentPath, "document", "", "Path to the document (overrides the configured document)")
	rootCmd.PersistentFlags().StringVarP(&tableKey, "table", "t", "", "Key of the table to operate on")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
}

// =============================================================================
// COMMAND ENVIRONMENT
// =============================================================================

// env bundles everything a command needs to operate on one table.
type env struct {
	main    *config.MainConfig
	configs map[string]*config.TableConfig
	cfg     *config.TableConfig
	store   *utils.DocumentStore
	docPath string
	doc     types.Document
	table   types.Table
	engine  *table.Engine
	log     *logrus.Logger
	closer  io.Closer
}

// loadEnv reads configuration, sets up logging and loads the document and the
// selected table. When requireTable is false, --table may be omitted.
func loadEnv(requireTable bool) (*env, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)

	mainConfig, err := config.LoadMainConfig(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load main config: %w", err)
	}
	if verbose {
		mainConfig.LogLevel = "debug"
	}
	if documentPath != "" {
		mainConfig.Document = documentPath
	}

	log, closer, err := diagnostics.NewLogrusFromConfig(mainConfig.LogLevel, mainConfig.LogFile)
	if err != nil {
		return nil, err
	}

	configs, err := config.LoadTableConfigs(mainConfig.ConfigsDir)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("failed to load table configs: %w", err)
	}
	log.Debugf("loaded %d table configuration(s) from %s", len(configs), mainConfig.ConfigsDir)

	store := utils.NewDocumentStore("")
	doc, err := store.Load(mainConfig.Document)
	if err != nil {
		closer.Close()
		return nil, err
	}

	e := &env{
		main:    mainConfig,
		configs: configs,
		store:   store,
		docPath: mainConfig.Document,
		doc:     doc,
		log:     log,
		closer:  closer,
	}

	if tableKey == "" {
		if requireTable {
			closer.Close()
			return nil, fmt.Errorf("--table is required (known tables: %s)", strings.Join(e.tableKeys(), ", "))
		}
		return e, nil
	}

	cfg, ok := configs[tableKey]
	if !ok {
		closer.Close()
		return nil, fmt.Errorf("unknown table %q (known tables: %s)", tableKey, strings.Join(e.tableKeys(), ", "))
	}

	e.cfg = cfg
	e.engine = table.NewEngine(diagnostics.NewLogrus(log, logrus.Fields{"table": cfg.TableKey}))
	e.table = e.engine.TableOf(doc, cfg)
	return e, nil
}

func (e *env) tableKeys() []string {
	keys := make([]string, 0, len(e.configs))
	for k := range e.configs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// persist writes the current table back into the document and saves it.
func (e *env) persist() error {
	if err := e.store.PersistTable(e.docPath, e.doc, e.cfg.TableKey, e.table); err != nil {
		return fmt.Errorf("failed to persist table %s: %w", e.cfg.TableKey, err)
	}
	e.log.Debugf("persisted table %s to %s", e.cfg.TableKey, e.docPath)
	return nil
}

func (e *env) close() {
	if e.closer != nil {
		e.closer.Close()
	}
}

// docTable returns the document value under key as a table.
func (e *env) docTable(key string) (types.Table, bool) {
	raw, ok := e.doc[key]
	if !ok {
		return nil, false
	}
	return types.AsTable(raw)
}
