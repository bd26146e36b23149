// =============================================================================
// Dynamic Tables - Edit Commands
// =============================================================================
//
// This file defines the commands that mutate a table. Every command follows
// the same steps:
//   1. Load configuration, the document and the selected table
//   2. Run the engine operation
//   3. Persist the table back into the document
//   4. Print the resulting table
//
// =============================================================================

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/dynamic-tables/internal/table"
	"github.com/ginjaninja78/dynamic-tables/internal/types"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// rowIndex is the zero-based row targeted by remove-row and update.
var rowIndex int

// setFields holds field=value pairs for add-row.
var setFields []string

// updateField and updateValue are the field and value written by update.
var updateField, updateValue string

// noRecalc disables the automatic recomputation after update.
var noRecalc bool

// dryRun skips persisting the result.
var dryRun bool

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Initialize a table if needed and recompute totals and percentages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdit(cmd, func(e *env) error {
			e.engine.InitializeAndCompute(&e.table, e.cfg)
			kind := e.engine.Recalculate(e.table, e.cfg)
			e.log.Infof("table %s recomputed (%s)", e.cfg.TableKey, kind)
			return nil
		})
	},
}

var addRowCmd = &cobra.Command{
	Use:   "add-row",
	Short: "Add a row before the total row",
	Long: `Add a row before the total row. Without --set a default blank row is added.

Example:
  tables add-row --table casos_por_edad --set categoria="65 y más" --set casos=12`,
	RunE: func(cmd *cobra.Command, args []string) error {
		newRow, err := parseAssignments(setFields)
		if err != nil {
			return err
		}
		return runEdit(cmd, func(e *env) error {
			e.engine.AddRow(&e.table, e.cfg, newRow)
			e.engine.Recalculate(e.table, e.cfg)
			return nil
		})
	},
}

var removeRowCmd = &cobra.Command{
	Use:   "remove-row",
	Short: "Remove a data row (total rows are protected)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdit(cmd, func(e *env) error {
			if !e.engine.RemoveRow(&e.table, e.cfg, rowIndex) {
				return fmt.Errorf("row %d was not removed", rowIndex)
			}
			e.engine.Recalculate(e.table, e.cfg)
			return nil
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Set one field of one row",
	RunE: func(cmd *cobra.Command, args []string) error {
		if updateField == "" {
			return fmt.Errorf("--field is required")
		}
		return runEdit(cmd, func(e *env) error {
			status := e.engine.UpdateRow(&e.table, e.cfg, rowIndex, updateField, parseValue(updateValue), !noRecalc)
			if status != table.StatusUpdated {
				e.log.Warnf("update of row %d skipped: %s", rowIndex, status)
			}
			return nil
		})
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	for _, c := range []*cobra.Command{computeCmd, addRowCmd, removeRowCmd, updateCmd} {
		c.Flags().BoolVar(&dryRun, "dry-run", false, "Print the result without saving the document")
		rootCmd.AddCommand(c)
	}

	addRowCmd.Flags().StringArrayVar(&setFields, "set", nil, "Field assignment field=value (repeatable)")

	removeRowCmd.Flags().IntVar(&rowIndex, "row", -1, "Zero-based index of the row to remove")
	removeRowCmd.MarkFlagRequired("row")

	updateCmd.Flags().IntVar(&rowIndex, "row", -1, "Zero-based index of the row to update")
	updateCmd.Flags().StringVar(&updateField, "field", "", "Field to set")
	updateCmd.Flags().StringVar(&updateValue, "value", "", "Value to write (numbers are stored as numbers)")
	updateCmd.Flags().BoolVar(&noRecalc, "no-recalc", false, "Do not recompute after the update")
	updateCmd.MarkFlagRequired("row")
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// runEdit loads the environment, applies op, persists and prints.
func runEdit(cmd *cobra.Command, op func(e *env) error) error {
	e, err := loadEnv(true)
	if err != nil {
		return err
	}
	defer e.close()

	if err := op(e); err != nil {
		return err
	}

	if !dryRun {
		if err := e.persist(); err != nil {
			return err
		}
	}

	renderTable(cmd.OutOrStdout(), e.table, columnOrder(e))
	return nil
}

// parseAssignments turns field=value pairs into a row. No pairs yields nil so
// that the engine builds its default row.
func parseAssignments(pairs []string) (types.Row, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	row := types.Row{}
	for _, pair := range pairs {
		field, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(field) == "" {
			return nil, fmt.Errorf("invalid --set %q, expected field=value", pair)
		}
		row[strings.TrimSpace(field)] = parseValue(value)
	}
	return row, nil
}

// parseValue stores numeric input as float64 and everything else as text.
func parseValue(s string) any {
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return f
	}
	return s
}
