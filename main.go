// =============================================================================
// Dynamic Tables - Main Entry Point
// =============================================================================
//
// This is the main entry point for the dynamic tables CLI. It initializes the
// Cobra CLI and delegates command execution to the cmd package.
//
// USAGE:
//   tables show        - Print a table
//   tables compute     - Initialize a table and recompute its percentages
//   tables add-row     - Add a row before the total row
//   tables remove-row  - Remove a data row
//   tables update      - Set one field and recompute
//   tables lookup      - Pull a single value out of a table
//   tables validate    - Report data-quality findings
//   tables export      - Write a table to XLSX
//   tables version     - Display the application version
//
// ARCHITECTURE:
//   - cmd/                 : CLI command definitions (Cobra)
//   - internal/table       : initialization, row edits, strategy, engine
//   - internal/percentage  : totals, percentages, rounding adjustment
//   - internal/query       : value lookup by label
//   - internal/validation  : structural and data checks
//   - internal/rowsource   : CSV/XLSX row import and XLSX export
//   - pkg/utils            : YAML document store
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/dynamic-tables/cmd"
)

func main() {
	cmd.Execute()
}
