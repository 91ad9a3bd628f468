//-------------------------------------------------------------------------
//
// Sales Performance Analysis
//
// Copyright (c) 2025 - 2026, MBMer22
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MBMer22/Sales-Performance-Analysis/internal/logging"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/model"
)

// Strategy controls how the dimensional tables are populated.
type Strategy string

const (
	// StrategyReplaceAll truncates the dimensional tables before
	// inserting, so a run fully replaces the previous warehouse state.
	StrategyReplaceAll Strategy = "replace-all"

	// StrategyAppend inserts on top of whatever rows exist. A re-run
	// with the same input duplicates fact rows and fails on the
	// dimension primary keys.
	StrategyAppend Strategy = "append"

	// StrategyUpsert merges dimension rows on their natural key and
	// replaces fact rows carrying the same sale_id.
	StrategyUpsert Strategy = "upsert-by-key"
)

// ParseStrategy maps a configuration string onto a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyReplaceAll, StrategyAppend, StrategyUpsert:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown load strategy %q", s)
}

// BatchConfig configures batch insert behavior.
type BatchConfig struct {
	// BatchSize is the number of rows per batch insert.
	BatchSize int

	// ProgressInterval is how often to log progress (in rows).
	ProgressInterval int64
}

// DefaultBatchConfig returns default batch insert configuration.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		BatchSize:        1000,
		ProgressInterval: 100000,
	}
}

// ProgressReporter tracks and reports load progress for one table.
type ProgressReporter struct {
	tableName        string
	totalRows        int64
	currentRow       int64
	progressInterval int64
}

// NewProgressReporter creates a new progress reporter.
func NewProgressReporter(tableName string, totalRows int64, interval int64) *ProgressReporter {
	if interval < 1 {
		interval = 1
	}
	return &ProgressReporter{
		tableName:        tableName,
		totalRows:        totalRows,
		progressInterval: interval,
	}
}

// Update updates the progress and logs if necessary.
func (p *ProgressReporter) Update(rowsInserted int64) {
	oldRow := p.currentRow
	p.currentRow += rowsInserted

	// Check if we crossed a progress interval
	if p.currentRow/p.progressInterval > oldRow/p.progressInterval {
		pct := float64(p.currentRow) / float64(p.totalRows) * 100
		logging.Info().
			Str("table", p.tableName).
			Int64("rows", p.currentRow).
			Int64("total", p.totalRows).
			Float64("percent", pct).
			Msg("Loading data")
	}
}

// Done logs completion.
func (p *ProgressReporter) Done() {
	logging.Info().
		Str("table", p.tableName).
		Int64("rows", p.currentRow).
		Msg("Table loaded")
}

// Loader writes staging and dimensional records into the warehouse.
type Loader struct {
	db       DB
	strategy Strategy
	cfg      BatchConfig
}

// NewLoader creates a loader writing through db with the given
// dimensional load strategy.
func NewLoader(db DB, strategy Strategy) *Loader {
	return &Loader{
		db:       db,
		strategy: strategy,
		cfg:      DefaultBatchConfig(),
	}
}

// LoadStaging writes the raw extracts into the staging tables. The
// caller resets staging first; this only inserts.
func (l *Loader) LoadStaging(ctx context.Context, products []model.StagingProduct, customers []model.StagingCustomer, sales []model.StagingSale) error {
	if err := l.insertProducts(ctx, "stg_products", products); err != nil {
		return fmt.Errorf("failed to load stg_products: %w", err)
	}
	if err := l.insertCustomers(ctx, customers); err != nil {
		return fmt.Errorf("failed to load stg_customers: %w", err)
	}
	if err := l.insertSales(ctx, "stg_sales", sales); err != nil {
		return fmt.Errorf("failed to load stg_sales: %w", err)
	}
	return nil
}

// LoadCleaned writes the cleaned record sets into their staging tables.
func (l *Loader) LoadCleaned(ctx context.Context, products []model.StagingProduct, sales []model.StagingSale) error {
	if err := l.insertProducts(ctx, "stg_products_cleaned", products); err != nil {
		return fmt.Errorf("failed to load stg_products_cleaned: %w", err)
	}
	if err := l.insertSales(ctx, "stg_sales_cleaned", sales); err != nil {
		return fmt.Errorf("failed to load stg_sales_cleaned: %w", err)
	}
	return nil
}

// LoadWarehouse populates the dimensional tables from the conformed
// records. Under replace-all the tables are truncated first; under
// append rows land on top of existing ones and any duplicate dimension
// key surfaces as the primary key violation it is; under upsert-by-key
// dimensions merge and facts with a known sale_id are replaced.
func (l *Loader) LoadWarehouse(ctx context.Context, products []model.DimProduct, customers []model.DimCustomer, facts []model.FactSale) error {
	if l.strategy == StrategyReplaceAll {
		logging.Debug().Msg("Truncating dimensional tables")
		if _, err := l.db.Exec(ctx, "TRUNCATE TABLE dim_products, dim_customers, fact_sales"); err != nil {
			return fmt.Errorf("failed to truncate dimensional tables: %w", err)
		}
	}

	if err := l.loadDimProducts(ctx, products); err != nil {
		return fmt.Errorf("failed to load dim_products: %w", err)
	}
	if err := l.loadDimCustomers(ctx, customers); err != nil {
		return fmt.Errorf("failed to load dim_customers: %w", err)
	}
	if err := l.loadFactSales(ctx, facts); err != nil {
		return fmt.Errorf("failed to load fact_sales: %w", err)
	}
	return nil
}

func (l *Loader) insertProducts(ctx context.Context, table string, rows []model.StagingProduct) error {
	logging.Info().Int("count", len(rows)).Msg("Loading " + table)
	batch := make([]string, 0, l.cfg.BatchSize)

	for _, p := range rows {
		batch = append(batch, fmt.Sprintf("(%s, %s, %s, %s, %s)",
			sqlInt(p.ProductID),
			sqlStr(p.ProductName),
			sqlStr(p.Category),
			sqlStr(p.SubCategory),
			sqlFloat(p.Price),
		))

		if len(batch) >= l.cfg.BatchSize {
			if err := l.executeBatchInsert(ctx, table,
				"(product_id, product_name, category, sub_category, price)", batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	return l.executeBatchInsert(ctx, table,
		"(product_id, product_name, category, sub_category, price)", batch)
}

func (l *Loader) insertCustomers(ctx context.Context, rows []model.StagingCustomer) error {
	logging.Info().Int("count", len(rows)).Msg("Loading stg_customers")
	batch := make([]string, 0, l.cfg.BatchSize)

	for _, c := range rows {
		batch = append(batch, fmt.Sprintf("(%s, %s, %s, %s, %s, %s, %s, %s)",
			sqlInt(c.CustomerID),
			sqlStr(c.FirstName),
			sqlStr(c.LastName),
			sqlStr(c.Email),
			sqlStr(c.Phone),
			sqlStr(c.City),
			sqlStr(c.State),
			sqlStr(c.Country),
		))

		if len(batch) >= l.cfg.BatchSize {
			if err := l.executeBatchInsert(ctx, "stg_customers",
				"(customer_id, first_name, last_name, email, phone, city, state, country)", batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	return l.executeBatchInsert(ctx, "stg_customers",
		"(customer_id, first_name, last_name, email, phone, city, state, country)", batch)
}

func (l *Loader) insertSales(ctx context.Context, table string, rows []model.StagingSale) error {
	logging.Info().Int("count", len(rows)).Msg("Loading " + table)
	batch := make([]string, 0, l.cfg.BatchSize)
	progress := NewProgressReporter(table, int64(len(rows)), l.cfg.ProgressInterval)

	for _, s := range rows {
		batch = append(batch, fmt.Sprintf("(%s, %s, %s, %s, %s, %s, %s)",
			sqlInt(s.SaleID),
			sqlInt(s.CustomerID),
			sqlInt(s.ProductID),
			sqlDate(s.SaleDate),
			sqlInt(s.QuantitySold),
			sqlFloat(s.UnitPrice),
			sqlFloat(s.TotalSale),
		))

		if len(batch) >= l.cfg.BatchSize {
			if err := l.executeBatchInsert(ctx, table,
				"(sale_id, customer_id, product_id, sale_date, quantity_sold, unit_price, total_sale)", batch); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := l.executeBatchInsert(ctx, table,
			"(sale_id, customer_id, product_id, sale_date, quantity_sold, unit_price, total_sale)", batch); err != nil {
			return err
		}
		progress.Update(int64(len(batch)))
	}
	progress.Done()
	return nil
}

func (l *Loader) loadDimProducts(ctx context.Context, rows []model.DimProduct) error {
	logging.Info().Int("count", len(rows)).Msg("Loading dim_products")
	batch := make([]string, 0, l.cfg.BatchSize)

	onConflict := ""
	if l.strategy == StrategyUpsert {
		onConflict = " ON CONFLICT (product_id) DO UPDATE SET" +
			" product_name = EXCLUDED.product_name," +
			" category = EXCLUDED.category," +
			" sub_category = EXCLUDED.sub_category," +
			" price = EXCLUDED.price"
	}

	for _, p := range rows {
		batch = append(batch, fmt.Sprintf("(%s, %s, '%s', '%s', %s)",
			sqlInt(p.ProductID),
			sqlStr(p.ProductName),
			escapeSingleQuote(p.Category),
			escapeSingleQuote(p.SubCategory),
			sqlFloat(p.Price),
		))

		if len(batch) >= l.cfg.BatchSize {
			if err := l.executeBatchUpsert(ctx, "dim_products",
				"(product_id, product_name, category, sub_category, price)", batch, onConflict); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	return l.executeBatchUpsert(ctx, "dim_products",
		"(product_id, product_name, category, sub_category, price)", batch, onConflict)
}

func (l *Loader) loadDimCustomers(ctx context.Context, rows []model.DimCustomer) error {
	logging.Info().Int("count", len(rows)).Msg("Loading dim_customers")
	batch := make([]string, 0, l.cfg.BatchSize)

	onConflict := ""
	if l.strategy == StrategyUpsert {
		onConflict = " ON CONFLICT (customer_id) DO UPDATE SET" +
			" customer_name = EXCLUDED.customer_name," +
			" country = EXCLUDED.country"
	}

	for _, c := range rows {
		batch = append(batch, fmt.Sprintf("(%s, '%s', %s)",
			sqlInt(c.CustomerID),
			escapeSingleQuote(c.CustomerName),
			sqlStr(c.Country),
		))

		if len(batch) >= l.cfg.BatchSize {
			if err := l.executeBatchUpsert(ctx, "dim_customers",
				"(customer_id, customer_name, country)", batch, onConflict); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	return l.executeBatchUpsert(ctx, "dim_customers",
		"(customer_id, customer_name, country)", batch, onConflict)
}

func (l *Loader) loadFactSales(ctx context.Context, rows []model.FactSale) error {
	logging.Info().Int("count", len(rows)).Msg("Loading fact_sales")

	// Upsert has no key to conflict on: fact_sales carries no primary
	// key. Rows with a known sale_id are replaced wholesale instead.
	if l.strategy == StrategyUpsert {
		ids := make([]int64, 0, len(rows))
		for _, f := range rows {
			if f.SaleID != nil {
				ids = append(ids, *f.SaleID)
			}
		}
		if len(ids) > 0 {
			if _, err := l.db.Exec(ctx, "DELETE FROM fact_sales WHERE sale_id = ANY($1)", ids); err != nil {
				return fmt.Errorf("failed to delete replaced facts: %w", err)
			}
		}
	}

	batch := make([]string, 0, l.cfg.BatchSize)
	progress := NewProgressReporter("fact_sales", int64(len(rows)), l.cfg.ProgressInterval)

	for _, f := range rows {
		batch = append(batch, fmt.Sprintf("(%s, %d, %d, %s, %s, %s, %s)",
			sqlInt(f.SaleID),
			f.CustomerID,
			f.ProductID,
			sqlDate(f.SaleDate),
			sqlInt(f.QuantitySold),
			sqlFloat(f.UnitPrice),
			sqlFloat(f.TotalSale),
		))

		if len(batch) >= l.cfg.BatchSize {
			if err := l.executeBatchInsert(ctx, "fact_sales",
				"(sale_id, customer_id, product_id, sale_date, quantity_sold, unit_price, total_sale)", batch); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := l.executeBatchInsert(ctx, "fact_sales",
			"(sale_id, customer_id, product_id, sale_date, quantity_sold, unit_price, total_sale)", batch); err != nil {
			return err
		}
		progress.Update(int64(len(batch)))
	}
	progress.Done()
	return nil
}

func (l *Loader) executeBatchInsert(ctx context.Context, table, columns string, values []string) error {
	return l.executeBatchUpsert(ctx, table, columns, values, "")
}

func (l *Loader) executeBatchUpsert(ctx context.Context, table, columns string, values []string, onConflict string) error {
	if len(values) == 0 {
		return nil
	}
	sql := fmt.Sprintf("INSERT INTO %s %s VALUES %s%s", table, columns, strings.Join(values, ", "), onConflict)
	_, err := l.db.Exec(ctx, sql)
	return err
}

func sqlInt(v *int64) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%d", *v)
}

func sqlFloat(v *float64) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%.2f", *v)
}

func sqlStr(s *string) string {
	if s == nil {
		return "NULL"
	}
	return fmt.Sprintf("'%s'", escapeSingleQuote(*s))
}

func sqlDate(t *time.Time) string {
	if t == nil {
		return "NULL"
	}
	return fmt.Sprintf("'%s'", t.Format("2006-01-02"))
}

func escapeSingleQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
