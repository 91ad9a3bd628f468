//-------------------------------------------------------------------------
//
// Sales Performance Analysis
//
// Copyright (c) 2025 - 2026, MBMer22
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// End-to-end tests for the pipeline.
// Run with: go test -tags=integration ./internal/pipeline/...
// Requires PostgreSQL to be available.
// Set SALESPERF_TEST_CONN environment variable to override connection string.

package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MBMer22/Sales-Performance-Analysis/internal/db"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/pipeline"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/report"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/testutil"
	"github.com/MBMer22/Sales-Performance-Analysis/internal/warehouse"
)

const productsCSV = `product_id,product_name,category,sub_category,price
1,Widget,Tools,Hand Tools,10.00
2,Gadget,Tools,,20.00
3,Gizmo,,,5.00
`

const customersCSV = `customer_id,first_name,last_name,email,phone,city,state,country
10,Ada,Lovelace,ada@example.com,555-0100,London,,UK
20,Grace,Hopper,grace@example.com,555-0101,Arlington,VA,USA
`

// Sale 103 has no customer and is dropped by cleaning. Sale 105 names
// product 99, which no product extract row defines, so it survives as
// an orphaned fact.
const salesCSV = `sale_id,customer_id,product_id,sale_date,quantity_sold,unit_price,total_sale
100,10,1,2024-01-05,2,10.00,20.00
101,10,2,2024-01-15,1,20.00,20.00
102,20,2,2024-02-10,3,20.00,60.00
103,,1,2024-02-20,1,10.00,10.00
104,10,3,2024-03-01,3,5.00,15.00
105,20,99,2024-03-02,1,1.00,1.00
`

func writeExtracts(t *testing.T) (productsPath, customersPath, salesPath string) {
	t.Helper()
	dir := t.TempDir()

	productsPath = filepath.Join(dir, "products.csv")
	customersPath = filepath.Join(dir, "customers.csv")
	salesPath = filepath.Join(dir, "sales.csv")

	for path, content := range map[string]string{
		productsPath:  productsCSV,
		customersPath: customersCSV,
		salesPath:     salesCSV,
	} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
	return productsPath, customersPath, salesPath
}

func setupTestDB(t *testing.T, name string) *pgxpool.Pool {
	t.Helper()

	baseConnStr := testutil.SkipIfNoPostgres(t)
	testConnStr := testutil.CreateTestDB(t, baseConnStr, name)
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	t.Cleanup(cleanup.Cleanup)

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)
	return pool
}

func countRows(t *testing.T, pool *pgxpool.Pool, table string) int64 {
	t.Helper()
	var n int64
	if err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

func TestPipelineEndToEnd(t *testing.T) {
	pool := setupTestDB(t, "pipeline")
	productsPath, customersPath, salesPath := writeExtracts(t)
	ctx := context.Background()

	p := pipeline.New(pool, pipeline.Config{
		ProductsPath:  productsPath,
		CustomersPath: customersPath,
		SalesPath:     salesPath,
		Strategy:      warehouse.StrategyReplaceAll,
	})

	stats, err := p.Run(ctx)
	if err != nil {
		t.Fatalf("Pipeline run failed: %v", err)
	}

	if stats.StagedProducts != 3 || stats.StagedCustomers != 2 || stats.StagedSales != 6 {
		t.Errorf("Staged counts: expected 3/2/6, got %d/%d/%d",
			stats.StagedProducts, stats.StagedCustomers, stats.StagedSales)
	}
	if len(stats.Violations) != 1 {
		t.Errorf("Expected 1 quality violation (null sale customer), got %v", stats.Violations)
	}
	if stats.DroppedSales != 1 {
		t.Errorf("Expected 1 dropped sale, got %d", stats.DroppedSales)
	}
	if stats.CleanedSales != 5 {
		t.Errorf("Expected 5 cleaned sales, got %d", stats.CleanedSales)
	}
	if stats.OrphanedFacts != 1 {
		t.Errorf("Expected 1 orphaned fact, got %d", stats.OrphanedFacts)
	}

	t.Run("TableCounts", func(t *testing.T) {
		if got := countRows(t, pool, "stg_products"); got != 3 {
			t.Errorf("Expected 3 staged products, got %d", got)
		}
		if got := countRows(t, pool, "stg_sales"); got != 6 {
			t.Errorf("Expected 6 staged sales, got %d", got)
		}
		if got := countRows(t, pool, "stg_sales_cleaned"); got != 5 {
			t.Errorf("Expected 5 cleaned sales, got %d", got)
		}
		if got := countRows(t, pool, "dim_products"); got != 3 {
			t.Errorf("Expected 3 products, got %d", got)
		}
		if got := countRows(t, pool, "dim_customers"); got != 2 {
			t.Errorf("Expected 2 customers, got %d", got)
		}
		if got := countRows(t, pool, "fact_sales"); got != 5 {
			t.Errorf("Expected 5 facts, got %d", got)
		}
	})

	t.Run("CleaningDefaults", func(t *testing.T) {
		var category, subCategory string
		err := pool.QueryRow(ctx,
			"SELECT category, sub_category FROM dim_products WHERE product_id = 3").
			Scan(&category, &subCategory)
		if err != nil {
			t.Fatalf("Failed to read product 3: %v", err)
		}
		if category != "Unknown" {
			t.Errorf("Expected category Unknown, got %q", category)
		}
		if subCategory != "Miscellaneous" {
			t.Errorf("Expected sub-category Miscellaneous, got %q", subCategory)
		}

		err = pool.QueryRow(ctx,
			"SELECT sub_category FROM dim_products WHERE product_id = 2").Scan(&subCategory)
		if err != nil {
			t.Fatalf("Failed to read product 2: %v", err)
		}
		if subCategory != "Miscellaneous" {
			t.Errorf("Expected defaulted sub-category, got %q", subCategory)
		}
	})

	t.Run("CustomerNames", func(t *testing.T) {
		var name string
		err := pool.QueryRow(ctx,
			"SELECT customer_name FROM dim_customers WHERE customer_id = 10").Scan(&name)
		if err != nil {
			t.Fatalf("Failed to read customer 10: %v", err)
		}
		if name != "Ada Lovelace" {
			t.Errorf("Expected 'Ada Lovelace', got %q", name)
		}
	})

	t.Run("Reports", func(t *testing.T) {
		products, err := report.TopProducts(ctx, pool, 10)
		if err != nil {
			t.Fatalf("TopProducts failed: %v", err)
		}
		if len(products) != 3 {
			t.Fatalf("Expected 3 report rows (orphan excluded), got %d", len(products))
		}
		if products[0].ProductID != 2 || products[0].TotalRevenue != 80.00 {
			t.Errorf("Expected product 2 at 80.00 first, got %+v", products[0])
		}

		months, err := report.MonthlyTrend(ctx, pool)
		if err != nil {
			t.Fatalf("MonthlyTrend failed: %v", err)
		}
		wantRevenues := []float64{40.00, 60.00, 16.00}
		if len(months) != 3 {
			t.Fatalf("Expected 3 months, got %d", len(months))
		}
		for i, want := range wantRevenues {
			if months[i].TotalRevenue != want {
				t.Errorf("Month %d: expected %.2f, got %.2f", i, want, months[i].TotalRevenue)
			}
		}

		customers, err := report.TopCustomers(ctx, pool, 5)
		if err != nil {
			t.Fatalf("TopCustomers failed: %v", err)
		}
		// The orphaned sale still counts toward Grace: only the
		// product key is missing, her customer row exists.
		if customers[0].CustomerID != 10 || customers[0].TotalQuantity != 6 {
			t.Errorf("Expected Ada first with 6 units, got %+v", customers[0])
		}
		if customers[1].CustomerID != 20 || customers[1].TotalQuantity != 4 {
			t.Errorf("Expected Grace second with 4 units, got %+v", customers[1])
		}
	})

	t.Run("RunMetadata", func(t *testing.T) {
		runID, err := db.GetMetadataValue(ctx, pool, "last_run_id")
		if err != nil {
			t.Fatalf("Failed to read last_run_id: %v", err)
		}
		if runID != stats.RunID {
			t.Errorf("Expected run id %s, got %s", stats.RunID, runID)
		}

		factRows, err := db.GetMetadataValue(ctx, pool, "fact_rows_loaded")
		if err != nil {
			t.Fatalf("Failed to read fact_rows_loaded: %v", err)
		}
		if factRows != "5" {
			t.Errorf("Expected 5 fact rows recorded, got %s", factRows)
		}

		strategy, err := db.GetMetadataValue(ctx, pool, "load_strategy")
		if err != nil {
			t.Fatalf("Failed to read load_strategy: %v", err)
		}
		if strategy != "replace-all" {
			t.Errorf("Expected replace-all, got %s", strategy)
		}
	})
}

func TestPipelineRerunReplaceAll(t *testing.T) {
	pool := setupTestDB(t, "rerun")
	productsPath, customersPath, salesPath := writeExtracts(t)
	ctx := context.Background()

	cfg := pipeline.Config{
		ProductsPath:  productsPath,
		CustomersPath: customersPath,
		SalesPath:     salesPath,
		Strategy:      warehouse.StrategyReplaceAll,
	}

	for run := 0; run < 2; run++ {
		p := pipeline.New(pool, cfg)
		if _, err := p.Run(ctx); err != nil {
			t.Fatalf("Run %d failed: %v", run+1, err)
		}
	}

	if got := countRows(t, pool, "fact_sales"); got != 5 {
		t.Errorf("Expected 5 facts after re-run, got %d", got)
	}
	if got := countRows(t, pool, "dim_products"); got != 3 {
		t.Errorf("Expected 3 products after re-run, got %d", got)
	}
}

func TestPipelineEnforceQuality(t *testing.T) {
	pool := setupTestDB(t, "enforce")
	productsPath, customersPath, salesPath := writeExtracts(t)
	ctx := context.Background()

	p := pipeline.New(pool, pipeline.Config{
		ProductsPath:   productsPath,
		CustomersPath:  customersPath,
		SalesPath:      salesPath,
		Strategy:       warehouse.StrategyReplaceAll,
		EnforceQuality: true,
	})

	stats, err := p.Run(ctx)
	if err == nil {
		t.Fatal("Expected enforcement failure, got nil")
	}
	if !strings.Contains(err.Error(), "quality") {
		t.Errorf("Expected quality failure, got: %v", err)
	}
	if len(stats.Violations) == 0 {
		t.Error("Expected violations in stats")
	}

	// The run aborts after staging, before anything dimensional.
	if got := countRows(t, pool, "stg_sales"); got != 6 {
		t.Errorf("Expected staging populated before abort, got %d rows", got)
	}
	if got := countRows(t, pool, "fact_sales"); got != 0 {
		t.Errorf("Expected no facts after abort, got %d", got)
	}
}

func TestPipelineMissingFile(t *testing.T) {
	pool := setupTestDB(t, "missing")
	_, customersPath, salesPath := writeExtracts(t)

	p := pipeline.New(pool, pipeline.Config{
		ProductsPath:  filepath.Join(t.TempDir(), "nope.csv"),
		CustomersPath: customersPath,
		SalesPath:     salesPath,
		Strategy:      warehouse.StrategyReplaceAll,
	})

	_, err := p.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error for missing products file, got nil")
	}
	if !strings.Contains(err.Error(), "products") {
		t.Errorf("Expected products in error, got: %v", err)
	}
}

func TestPipelineUpsertRerun(t *testing.T) {
	pool := setupTestDB(t, "upsert_rerun")
	productsPath, customersPath, salesPath := writeExtracts(t)
	ctx := context.Background()

	cfg := pipeline.Config{
		ProductsPath:  productsPath,
		CustomersPath: customersPath,
		SalesPath:     salesPath,
		Strategy:      warehouse.StrategyUpsert,
	}

	for run := 0; run < 2; run++ {
		p := pipeline.New(pool, cfg)
		if _, err := p.Run(ctx); err != nil {
			t.Fatalf("Run %d failed: %v", run+1, err)
		}
	}

	// Same extract twice: every sale_id repeats, so upsert replaces
	// rather than duplicates.
	if got := countRows(t, pool, "fact_sales"); got != 5 {
		t.Errorf("Expected 5 facts after upsert re-run, got %d", got)
	}
	if got := countRows(t, pool, "dim_customers"); got != 2 {
		t.Errorf("Expected 2 customers after upsert re-run, got %d", got)
	}
}
