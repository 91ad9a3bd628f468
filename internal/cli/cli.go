//-------------------------------------------------------------------------
//
// Sales Performance Analysis
//
// Portions copyright (c) 2025 - 2026, MBMer22
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for salesperf.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MBMer22/Sales-Performance-Analysis/internal/config"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/logging"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/report"
	"github.com/MBMer22/Sales-Performance-Analysis/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "salesperf",
		Short: "Batch ETL and reporting for retail sales analytics",
		Long: `salesperf loads raw CSV extracts of products, customers and sales
into a PostgreSQL star schema and answers standing business questions
about revenue and purchase volume.

Each run stages the extracts verbatim, checks them for null keys and
duplicates, cleans the rows that can be repaired, and rebuilds the
dimension and fact tables. Reports read from views over the warehouse,
so they always reflect the most recent completed run.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./salesperf.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(reportsCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List available reports",
	Long: `List the saved reports that can be run against the warehouse.
Each report is backed by a reporting view created at init time.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available reports:")
		cmd.Println()
		for _, r := range report.All() {
			cmd.Println(fmt.Sprintf("  %-15s - %s (view: %s)", r.Name, r.Description, r.View))
		}
		cmd.Println()
		cmd.Println("Use 'salesperf report --view <report>' to run one.")
	},
}
