package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MBMer22/Sales-Performance-Analysis/internal/db"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/logging"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/pipeline"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/warehouse"
)

var (
	runInputDir       string
	runStrategy       string
	runEnforceQuality bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: ingest, check, clean and load",
	Long: `Run one complete refresh of the warehouse. The CSV extracts are read
into staging, checked for quality problems, cleaned, and loaded into
the dimension and fact tables.

Load Strategies:
  replace-all   - truncate the warehouse tables and reload (default)
  append        - insert on top of existing rows
  upsert-by-key - merge rows on their natural keys

Example:
  salesperf run --input-dir ./extracts --connection "postgres://..."
  salesperf run --strategy upsert-by-key --enforce-quality`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runInputDir, "input-dir", "",
		"directory containing the CSV extracts")
	runCmd.Flags().StringVar(&runStrategy, "strategy", "",
		"load strategy: replace-all, append or upsert-by-key")
	runCmd.Flags().BoolVar(&runEnforceQuality, "enforce-quality", false,
		"abort the run when quality checks find violations")
}

func runRun(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if runInputDir != "" {
		cfg.Input.Dir = runInputDir
	}
	if runStrategy != "" {
		cfg.Load.Strategy = runStrategy
	}
	if runEnforceQuality {
		cfg.Load.EnforceQuality = true
	}

	// Validate configuration
	if err := cfg.ValidateRun(); err != nil {
		return err
	}

	strategy, err := warehouse.ParseStrategy(cfg.Load.Strategy)
	if err != nil {
		return err
	}

	// Connect to database
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Check that the warehouse was initialized
	exists, err := db.MetadataExists(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to check metadata: %w", err)
	}
	if !exists {
		return fmt.Errorf(
			"warehouse has not been initialized; run 'salesperf init' first")
	}

	// Log the previous run, if any, before replacing it
	if lastRunID, err := db.GetMetadataValue(ctx, pool, "last_run_id"); err == nil {
		lastRunAt, _ := db.GetMetadataValue(ctx, pool, "last_run_at")
		lastStrategy, _ := db.GetMetadataValue(ctx, pool, "load_strategy")
		logging.Info().
			Str("last_run_id", lastRunID).
			Str("last_run_at", lastRunAt).
			Str("load_strategy", lastStrategy).
			Msg("Previous pipeline run found")
	}

	logging.Info().
		Str("input_dir", cfg.Input.Dir).
		Str("strategy", string(strategy)).
		Bool("enforce_quality", cfg.Load.EnforceQuality).
		Msg("Starting pipeline run")

	// Handle shutdown signals
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logging.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	}()

	p := pipeline.New(pool, pipeline.Config{
		ProductsPath:   cfg.ProductsPath(),
		CustomersPath:  cfg.CustomersPath(),
		SalesPath:      cfg.SalesPath(),
		Strategy:       strategy,
		EnforceQuality: cfg.Load.EnforceQuality,
	})

	stats, err := p.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			logging.Warn().Msg("Pipeline interrupted; warehouse may be partially loaded")
		}
		return fmt.Errorf("pipeline failed: %w", err)
	}

	stats.LogSummary()
	return nil
}
