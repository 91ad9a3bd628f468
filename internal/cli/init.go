package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MBMer22/Sales-Performance-Analysis/internal/db"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/logging"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/warehouse"
)

var initDropExisting bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the staging tables, warehouse tables and reporting views",
	Long: `Initialize a PostgreSQL database with the staging tables, the star
schema and the reporting views. Safe to run against an already
initialized database; use --drop-existing to start from scratch.

Example:
  salesperf init --connection "postgres://..."
  salesperf init --drop-existing --connection "postgres://..."`,
	RunE: runInitCmd,
}

func init() {
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop existing schema and run metadata before initialization")
}

func runInitCmd(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if initDropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := warehouse.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	} else {
		exists, err := db.MetadataExists(ctx, pool)
		if err == nil && exists {
			lastRun, _ := db.GetMetadataValue(ctx, pool, "last_run_at")
			logging.Info().
				Str("last_run_at", lastRun).
				Msg("Database already initialized; keeping existing data")
		}
	}

	logging.Info().Msg("Creating schema")
	if err := warehouse.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := db.SaveInitMetadata(ctx, pool); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().Msg("Database initialization complete")
	return nil
}
