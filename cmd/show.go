package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/dynamic-tables/internal/rowsource"
	"github.com/ginjaninja78/dynamic-tables/internal/types"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a table",
	Long:  `Print a table as stored in the document, without modifying it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(true)
		if err != nil {
			return err
		}
		defer e.close()

		renderTable(cmd.OutOrStdout(), e.table, columnOrder(e))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// columnOrder puts the configured fields first, then every other field.
func columnOrder(e *env) []string {
	var columns []string
	seen := map[string]bool{}
	add := func(field string) {
		if field != "" && !seen[field] {
			seen[field] = true
			columns = append(columns, field)
		}
	}

	add(e.cfg.TotalLabelField)
	all := append(e.cfg.InitialRows.Clone(), e.table...)
	for _, field := range rowsource.Columns(all) {
		if field != e.cfg.TotalValueField && field != e.cfg.PercentageField {
			add(field)
		}
	}
	add(e.cfg.TotalValueField)
	add(e.cfg.PercentageField)
	return columns
}

// renderTable prints table with a leading row-index column.
func renderTable(w io.Writer, table types.Table, columns []string) {
	if w == nil {
		w = os.Stdout
	}
	if len(table) == 0 {
		fmt.Fprintln(w, "(empty table)")
		return
	}

	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetHeader(append([]string{"#"}, columns...))
	for i, row := range table {
		line := []string{fmt.Sprint(i)}
		for _, c := range columns {
			line = append(line, types.String(row[c]))
		}
		tw.Append(line)
	}
	tw.Render()
}
