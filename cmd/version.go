// =============================================================================
// Dynamic Tables - Version Command
// =============================================================================
//
// Prints the build information together with what this binary understands:
// the row source formats accepted by initial_rows_file, where configuration
// is looked up and the percentage format written into documents.
//
// COMMAND USAGE:
//   tables version
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/dynamic-tables/internal/config"
	"github.com/ginjaninja78/dynamic-tables/internal/percentage"
	"github.com/ginjaninja78/dynamic-tables/internal/rowsource"
)

// Version and BuildDate are set at build time:
//
//	go build -ldflags "-X 'github.com/ginjaninja78/dynamic-tables/cmd.Version=1.2.0' -X 'github.com/ginjaninja78/dynamic-tables/cmd.BuildDate=2026-10-14'"
var (
	Version   = "dev"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information and supported formats",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "tables %s (built %s, %s)\n", Version, BuildDate, runtime.Version())
		fmt.Fprintf(w, "Row sources:    %s\n", strings.Join(rowsource.Extensions, ", "))
		fmt.Fprintf(w, "Main config:    %s (env overrides %s_<KEY>)\n", cfgFile, config.EnvPrefix)
		fmt.Fprintf(w, "Percentages:    %s ... %s\n", percentage.ZeroPercent, percentage.FullPercent)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
