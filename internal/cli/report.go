package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MBMer22/Sales-Performance-Analysis/internal/db"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/logging"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/report"
)

var (
	reportView  string
	reportLimit int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the saved reports against the warehouse",
	Long: `Run one or all of the saved reports against the most recently loaded
warehouse and print the results as tables. A single report can be
addressed by its short name or by its view name.

Example:
  salesperf report
  salesperf report --view top-products --limit 25
  salesperf report --view monthly_revenue_trend`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportView, "view", "",
		"run a single report by name or view (see 'salesperf reports')")
	reportCmd.Flags().IntVar(&reportLimit, "limit", 0,
		"row limit for ranking reports (overrides config)")
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateReport(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if exists, err := db.MetadataExists(ctx, pool); err != nil || !exists {
		logging.Warn().Msg("No pipeline run recorded; reports may be empty")
	} else {
		lastRunAt, _ := db.GetMetadataValue(ctx, pool, "last_run_at")
		logging.Debug().
			Str("last_run_at", lastRunAt).
			Msg("Reporting against warehouse")
	}

	var reports []report.Report
	if reportView != "" {
		r, err := report.Get(reportView)
		if err != nil {
			return err
		}
		reports = []report.Report{r}
	} else {
		reports = report.All()
	}

	for _, r := range reports {
		result, err := r.Run(ctx, pool, limitFor(r))
		if err != nil {
			return fmt.Errorf("report %s failed: %w", r.Name, err)
		}
		printResult(cmd, r, result)
	}

	return nil
}

// limitFor returns the configured row limit for ranking reports. The
// --limit flag overrides both configured limits.
func limitFor(r report.Report) int {
	if reportLimit > 0 {
		return reportLimit
	}
	switch r.Name {
	case "top-products":
		return cfg.Report.TopProducts
	case "top-customers":
		return cfg.Report.TopCustomers
	}
	return 0
}

func printResult(cmd *cobra.Command, r report.Report, result *report.Result) {
	cmd.Printf("%s - %s\n\n", r.Name, r.Description)

	if len(result.Rows) == 0 {
		cmd.Println("  (no rows)")
		cmd.Println()
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(result.Columns, "\t"))
	for _, row := range result.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
	cmd.Println()
}
