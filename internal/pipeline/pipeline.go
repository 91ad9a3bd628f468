// Package pipeline orchestrates the warehouse refresh: extract the CSV
// exports, stage them, check data quality, clean, conform and load the
// star schema, then record the run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MBMer22/Sales-Performance-Analysis/internal/clean"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/conform"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/db"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/ingest"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/logging"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/model"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/quality"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/warehouse"
)

// Config holds configuration for one pipeline run.
type Config struct {
	ProductsPath  string
	CustomersPath string
	SalesPath     string
	Strategy      warehouse.Strategy

	// EnforceQuality aborts the run before cleaning when the staging
	// quality checks find violations. Off by default: the checks
	// always run and log, the pipeline normally keeps going.
	EnforceQuality bool
}

// Stats summarizes one pipeline run.
type Stats struct {
	RunID           string
	Strategy        warehouse.Strategy
	StagedProducts  int
	StagedCustomers int
	StagedSales     int
	Violations      []string
	CleanedProducts int
	CleanedSales    int
	DroppedSales    int
	OrphanedFacts   int
	Duration        time.Duration
}

// Pipeline executes the full refresh against one database.
type Pipeline struct {
	pool *pgxpool.Pool
	cfg  Config
}

// New creates a pipeline writing through pool.
func New(pool *pgxpool.Pool, cfg Config) *Pipeline {
	return &Pipeline{
		pool: pool,
		cfg:  cfg,
	}
}

// Run executes every stage in order and blocks until done. The
// returned stats describe the run whether or not quality enforcement
// aborted it.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	stats := &Stats{
		RunID:    uuid.New().String(),
		Strategy: p.cfg.Strategy,
	}

	logging.Info().
		Str("run_id", stats.RunID).
		Str("strategy", string(p.cfg.Strategy)).
		Msg("Starting warehouse refresh")

	// Extract. Any malformed file fails the whole run: a partial
	// extract would load a warehouse that silently disagrees with the
	// source system.
	products, err := ingest.ReadProducts(p.cfg.ProductsPath)
	if err != nil {
		return stats, fmt.Errorf("failed to read products: %w", err)
	}
	customers, err := ingest.ReadCustomers(p.cfg.CustomersPath)
	if err != nil {
		return stats, fmt.Errorf("failed to read customers: %w", err)
	}
	sales, err := ingest.ReadSales(p.cfg.SalesPath)
	if err != nil {
		return stats, fmt.Errorf("failed to read sales: %w", err)
	}
	stats.StagedProducts = len(products)
	stats.StagedCustomers = len(customers)
	stats.StagedSales = len(sales)

	// Stage
	if err := warehouse.CreateSchema(ctx, p.pool); err != nil {
		return stats, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := warehouse.ResetStaging(ctx, p.pool); err != nil {
		return stats, fmt.Errorf("failed to reset staging: %w", err)
	}

	loader := warehouse.NewLoader(p.pool, p.cfg.Strategy)
	if err := loader.LoadStaging(ctx, products, customers, sales); err != nil {
		return stats, err
	}
	logging.Info().
		Int("products", len(products)).
		Int("customers", len(customers)).
		Int("sales", len(sales)).
		Msg("Extracts staged")

	// Quality checks run on the raw staging data, before any cleaning
	// can mask what the source actually sent.
	stats.Violations = p.checkQuality(products, customers, sales)
	if p.cfg.EnforceQuality && len(stats.Violations) > 0 {
		return stats, fmt.Errorf("data quality checks failed with %d violations", len(stats.Violations))
	}

	// Clean
	cleanedProducts := clean.Products(products)
	cleanedSales := clean.Sales(sales)
	stats.CleanedProducts = len(cleanedProducts)
	stats.CleanedSales = len(cleanedSales)
	stats.DroppedSales = len(sales) - len(cleanedSales)

	if err := loader.LoadCleaned(ctx, cleanedProducts, cleanedSales); err != nil {
		return stats, err
	}
	logging.Info().
		Int("products", len(cleanedProducts)).
		Int("sales", len(cleanedSales)).
		Int("dropped_sales", stats.DroppedSales).
		Msg("Cleaned data staged")

	// Conform. Customers go straight from raw staging to the
	// dimension; cleaning never touches them.
	dimProducts := conform.Products(cleanedProducts)
	dimCustomers := conform.Customers(customers)
	facts := conform.Sales(cleanedSales)

	ref := quality.CheckReferential(facts, dimProducts, dimCustomers)
	stats.OrphanedFacts = len(ref.MissingProducts) + len(ref.MissingCustomers)
	if !ref.Passed() {
		logging.Warn().
			Int("missing_products", len(ref.MissingProducts)).
			Int("missing_customers", len(ref.MissingCustomers)).
			Msg("Facts reference missing dimension keys")
	}

	// Load
	if err := loader.LoadWarehouse(ctx, dimProducts, dimCustomers, facts); err != nil {
		return stats, err
	}
	logging.Info().
		Int("dim_products", len(dimProducts)).
		Int("dim_customers", len(dimCustomers)).
		Int("fact_sales", len(facts)).
		Msg("Warehouse loaded")

	// Record the run
	if err := db.SaveRunMetadata(ctx, p.pool, stats.RunID, string(p.cfg.Strategy), int64(len(facts))); err != nil {
		return stats, fmt.Errorf("failed to save run metadata: %w", err)
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// checkQuality runs the staging checks and logs every violation.
func (p *Pipeline) checkQuality(products []model.StagingProduct, customers []model.StagingCustomer, sales []model.StagingSale) []string {
	var violations []string
	violations = append(violations, quality.CheckProducts(products).Violations()...)
	violations = append(violations, quality.CheckCustomers(customers).Violations()...)
	violations = append(violations, quality.CheckSales(sales).Violations()...)

	for _, v := range violations {
		logging.Warn().Msg(v)
	}
	if len(violations) == 0 {
		logging.Info().Msg("Data quality checks passed")
	}
	return violations
}

// LogSummary logs the final run statistics.
func (s *Stats) LogSummary() {
	logging.Info().
		Str("run_id", s.RunID).
		Str("strategy", string(s.Strategy)).
		Dur("duration", s.Duration).
		Int("staged_products", s.StagedProducts).
		Int("staged_customers", s.StagedCustomers).
		Int("staged_sales", s.StagedSales).
		Int("quality_violations", len(s.Violations)).
		Int("dropped_sales", s.DroppedSales).
		Int("orphaned_facts", s.OrphanedFacts).
		Msg("Warehouse refresh complete")
}
