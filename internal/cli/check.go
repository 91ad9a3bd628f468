package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MBMer22/Sales-Performance-Analysis/internal/ingest"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/logging"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/quality"
)

var checkInputDir string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Read the CSV extracts and report data quality problems",
	Long: `Read the CSV extracts and run the data quality checks without
touching the database. Violations are listed on standard output and
the command exits non-zero when any are found, so it can gate a
scheduled run.

Example:
  salesperf check --input-dir ./extracts`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkInputDir, "input-dir", "",
		"directory containing the CSV extracts")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkInputDir != "" {
		cfg.Input.Dir = checkInputDir
	}
	if err := cfg.ValidateCheck(); err != nil {
		return err
	}

	products, err := ingest.ReadProducts(cfg.ProductsPath())
	if err != nil {
		return fmt.Errorf("failed to read products: %w", err)
	}
	customers, err := ingest.ReadCustomers(cfg.CustomersPath())
	if err != nil {
		return fmt.Errorf("failed to read customers: %w", err)
	}
	sales, err := ingest.ReadSales(cfg.SalesPath())
	if err != nil {
		return fmt.Errorf("failed to read sales: %w", err)
	}

	logging.Info().
		Int("products", len(products)).
		Int("customers", len(customers)).
		Int("sales", len(sales)).
		Msg("Extracts read")

	productReport := quality.CheckProducts(products)
	customerReport := quality.CheckCustomers(customers)
	saleReport := quality.CheckSales(sales)

	cmd.Println("Data quality report:")
	cmd.Println()
	printQualityLine(cmd, productReport.Table, productReport.RowCount,
		len(productReport.NullRows), len(productReport.Duplicates))
	printQualityLine(cmd, customerReport.Table, customerReport.RowCount,
		len(customerReport.NullRows), len(customerReport.Duplicates))
	printQualityLine(cmd, saleReport.Table, saleReport.RowCount,
		len(saleReport.NullRows), len(saleReport.Duplicates))
	cmd.Println()

	var violations []string
	violations = append(violations, productReport.Violations()...)
	violations = append(violations, customerReport.Violations()...)
	violations = append(violations, saleReport.Violations()...)

	if len(violations) == 0 {
		logging.Info().Msg("All data quality checks passed")
		return nil
	}

	cmd.Println("Violations:")
	for _, v := range violations {
		cmd.Println("  " + v)
	}
	cmd.Println()
	return fmt.Errorf("data quality checks failed with %d violations", len(violations))
}

func printQualityLine(cmd *cobra.Command, table string, rows, nullRows, dupKeys int) {
	cmd.Println(fmt.Sprintf("  %-15s %6d rows  %4d with null required fields  %4d duplicated keys",
		table, rows, nullRows, dupKeys))
}
