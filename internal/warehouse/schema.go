//-------------------------------------------------------------------------
//
// Sales Performance Analysis
//
// Copyright (c) 2025 - 2026, MBMer22
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import "context"

// Staging tables hold the raw and cleaned CSV extracts. They are
// ephemeral: every run drops and recreates them, so every column is
// nullable on purpose.
const createStagingSQL = `
-- Raw staging
CREATE TABLE IF NOT EXISTS stg_products (
    product_id   BIGINT,
    product_name TEXT,
    category     TEXT,
    sub_category TEXT,
    price        NUMERIC(12,2)
);

CREATE TABLE IF NOT EXISTS stg_customers (
    customer_id BIGINT,
    first_name  TEXT,
    last_name   TEXT,
    email       TEXT,
    phone       TEXT,
    city        TEXT,
    state       TEXT,
    country     TEXT
);

CREATE TABLE IF NOT EXISTS stg_sales (
    sale_id       BIGINT,
    customer_id   BIGINT,
    product_id    BIGINT,
    sale_date     DATE,
    quantity_sold INTEGER,
    unit_price    NUMERIC(12,2),
    total_sale    NUMERIC(14,2)
);

-- Cleaned staging
CREATE TABLE IF NOT EXISTS stg_products_cleaned (
    product_id   BIGINT,
    product_name TEXT,
    category     TEXT,
    sub_category TEXT,
    price        NUMERIC(12,2)
);

CREATE TABLE IF NOT EXISTS stg_sales_cleaned (
    sale_id       BIGINT,
    customer_id   BIGINT,
    product_id    BIGINT,
    sale_date     DATE,
    quantity_sold INTEGER,
    unit_price    NUMERIC(12,2),
    total_sale    NUMERIC(14,2)
);
`

const dropStagingSQL = `
DROP TABLE IF EXISTS stg_sales_cleaned;
DROP TABLE IF EXISTS stg_products_cleaned;
DROP TABLE IF EXISTS stg_sales;
DROP TABLE IF EXISTS stg_customers;
DROP TABLE IF EXISTS stg_products;
`

// Dimensional model plus the reporting views. The fact table carries
// no primary or foreign key: referential integrity is checked after
// load, not enforced by the engine.
const createWarehouseSQL = `
-- Product Dimension
CREATE TABLE IF NOT EXISTS dim_products (
    product_id   BIGINT PRIMARY KEY,
    product_name TEXT,
    category     TEXT NOT NULL,
    sub_category TEXT NOT NULL,
    price        NUMERIC(12,2)
);

-- Customer Dimension
CREATE TABLE IF NOT EXISTS dim_customers (
    customer_id   BIGINT PRIMARY KEY,
    customer_name TEXT,
    country       TEXT
);

-- Sales Fact
CREATE TABLE IF NOT EXISTS fact_sales (
    sale_id       BIGINT,
    customer_id   BIGINT NOT NULL,
    product_id    BIGINT NOT NULL,
    sale_date     DATE,
    quantity_sold INTEGER,
    unit_price    NUMERIC(12,2),
    total_sale    NUMERIC(14,2)
);

-- Create indexes for the reporting aggregates
CREATE INDEX IF NOT EXISTS idx_fact_sales_product ON fact_sales(product_id);
CREATE INDEX IF NOT EXISTS idx_fact_sales_customer ON fact_sales(customer_id);
CREATE INDEX IF NOT EXISTS idx_fact_sales_date ON fact_sales(sale_date);

-- Reporting views: saved query definitions, re-executed on every read
CREATE OR REPLACE VIEW top_products_by_revenue AS
SELECT p.product_id,
       p.product_name,
       SUM(f.total_sale) AS total_revenue
FROM fact_sales f
JOIN dim_products p ON p.product_id = f.product_id
GROUP BY p.product_id, p.product_name
ORDER BY total_revenue DESC
LIMIT 10;

CREATE OR REPLACE VIEW monthly_revenue_trend AS
SELECT DATE_TRUNC('month', f.sale_date)::date AS sale_month,
       SUM(f.total_sale) AS total_revenue
FROM fact_sales f
WHERE f.sale_date IS NOT NULL
GROUP BY sale_month
ORDER BY sale_month;

CREATE OR REPLACE VIEW top_customers_by_volume AS
SELECT c.customer_id,
       c.customer_name,
       SUM(f.quantity_sold) AS total_quantity,
       SUM(f.total_sale) AS total_revenue
FROM fact_sales f
JOIN dim_customers c ON c.customer_id = f.customer_id
GROUP BY c.customer_id, c.customer_name
ORDER BY total_quantity DESC
LIMIT 5;
`

// Drop schema SQL
const dropSchemaSQL = `
DROP VIEW IF EXISTS top_customers_by_volume;
DROP VIEW IF EXISTS monthly_revenue_trend;
DROP VIEW IF EXISTS top_products_by_revenue;
DROP TABLE IF EXISTS fact_sales CASCADE;
DROP TABLE IF EXISTS dim_customers CASCADE;
DROP TABLE IF EXISTS dim_products CASCADE;
DROP TABLE IF EXISTS stg_sales_cleaned;
DROP TABLE IF EXISTS stg_products_cleaned;
DROP TABLE IF EXISTS stg_sales;
DROP TABLE IF EXISTS stg_customers;
DROP TABLE IF EXISTS stg_products;
`

// CreateSchema creates the staging tables, the dimensional tables and
// the reporting views. Idempotent.
func CreateSchema(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, createStagingSQL); err != nil {
		return err
	}
	_, err := db.Exec(ctx, createWarehouseSQL)
	return err
}

// DropSchema drops everything CreateSchema creates.
func DropSchema(ctx context.Context, db DB) error {
	_, err := db.Exec(ctx, dropSchemaSQL)
	return err
}

// ResetStaging drops and recreates the staging tables. Runs call this
// before loading so staging always holds exactly the current extract.
func ResetStaging(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, dropStagingSQL); err != nil {
		return err
	}
	_, err := db.Exec(ctx, createStagingSQL)
	return err
}
