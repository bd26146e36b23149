package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/dynamic-tables/internal/query"
	"github.com/ginjaninja78/dynamic-tables/internal/rowsource"
	"github.com/ginjaninja78/dynamic-tables/internal/validation"
)

// maxSheetName is the longest sheet name a workbook accepts.
const maxSheetName = 31

var (
	lookupBy, lookupMatch, lookupField string
	exportPath                         string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Print one field of the first row whose label contains a value",
	Long: `Print one field of the first row whose search field contains --match,
ignoring case. Prints an empty line when nothing matches.

Example:
  tables lookup --table casos_por_edad --by categoria --match total --field casos`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(true)
		if err != nil {
			return err
		}
		defer e.close()

		var value string
		switch lookupBy {
		case query.IndicatorField:
			value = query.ByIndicator(e.doc[e.cfg.TableKey], lookupMatch, lookupField)
		case query.CategoryField:
			value = query.ByCategory(e.doc[e.cfg.TableKey], lookupMatch, lookupField)
		default:
			value = query.LookupValue(e.doc[e.cfg.TableKey], lookupBy, lookupMatch, lookupField)
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report structural and data problems in one or all tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(false)
		if err != nil {
			return err
		}
		defer e.close()

		keys := e.tableKeys()
		if e.cfg != nil {
			keys = []string{e.cfg.TableKey}
		}

		invalid := 0
		out := cmd.OutOrStdout()
		for _, key := range keys {
			cfg := e.configs[key]
			raw, present := e.doc[key]
			if !present {
				fmt.Fprintf(out, "%s: not present in document\n", key)
				continue
			}

			result := validation.ValidateData(raw, cfg)
			if t, ok := e.docTable(key); ok && !validation.ValidateStructure(t, cfg.InitialRows) {
				fmt.Fprintf(out, "%s: [WARNING] fields differ from the configured initial rows\n", key)
			}
			for _, f := range result.Errors {
				fmt.Fprintf(out, "%s: %s\n", key, f.Error())
			}
			for _, f := range result.Warnings {
				fmt.Fprintf(out, "%s: %s\n", key, f.Error())
			}
			if !result.IsValid {
				invalid++
			} else if len(result.Warnings) == 0 {
				fmt.Fprintf(out, "%s: ok\n", key)
			}
		}

		if invalid > 0 {
			return fmt.Errorf("%d table(s) failed validation", invalid)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a table to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(true)
		if err != nil {
			return err
		}
		defer e.close()

		path := exportPath
		if path == "" {
			path = filepath.Join(e.main.OutputDir, e.cfg.TableKey+".xlsx")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		sheet := e.cfg.TableKey
		if len(sheet) > maxSheetName {
			sheet = sheet[:maxSheetName]
		}
		if err := rowsource.WriteXLSX(path, sheet, e.table, columnOrder(e)); err != nil {
			return err
		}
		e.log.Infof("exported table %s (%d rows) to %s", e.cfg.TableKey, len(e.table), path)
		return nil
	},
}

func init() {
	lookupCmd.Flags().StringVar(&lookupBy, "by", query.CategoryField, "Field to search")
	lookupCmd.Flags().StringVar(&lookupMatch, "match", "", "Text the search field must contain")
	lookupCmd.Flags().StringVar(&lookupField, "field", "", "Field to print from the matching row")
	lookupCmd.MarkFlagRequired("field")

	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "Output path (default <output_dir>/<table>.xlsx)")

	rootCmd.AddCommand(lookupCmd, validateCmd, exportCmd)
}
