//-------------------------------------------------------------------------
//
// Sales Performance Analysis
//
// Copyright (c) 2025 - 2026, MBMer22
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package report runs the saved warehouse analyses. Each report
// restates the body of one reporting view so callers can page or
// re-limit without redefining the view.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/MBMer22/Sales-Performance-Analysis/internal/warehouse"
)

// ProductRevenue is one row of the product revenue ranking.
type ProductRevenue struct {
	ProductID    int64
	ProductName  string
	TotalRevenue float64
}

// MonthRevenue is one month of the revenue trend.
type MonthRevenue struct {
	Month        time.Time
	TotalRevenue float64
}

// CustomerVolume is one row of the customer volume ranking.
type CustomerVolume struct {
	CustomerID    int64
	CustomerName  string
	TotalQuantity int64
	TotalRevenue  float64
}

// TopProducts ranks products by total revenue, highest first.
func TopProducts(ctx context.Context, db warehouse.DB, limit int) ([]ProductRevenue, error) {
	rows, err := db.Query(ctx, `
        SELECT p.product_id,
               COALESCE(p.product_name, '') AS product_name,
               COALESCE(SUM(f.total_sale), 0)::float8 AS total_revenue
        FROM fact_sales f
        JOIN dim_products p ON p.product_id = f.product_id
        GROUP BY p.product_id, p.product_name
        ORDER BY total_revenue DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProductRevenue
	for rows.Next() {
		var r ProductRevenue
		if err := rows.Scan(&r.ProductID, &r.ProductName, &r.TotalRevenue); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MonthlyTrend returns revenue per calendar month in ascending month
// order. Facts without a sale date have no month to land in and are
// left out.
func MonthlyTrend(ctx context.Context, db warehouse.DB) ([]MonthRevenue, error) {
	rows, err := db.Query(ctx, `
        SELECT DATE_TRUNC('month', f.sale_date)::date AS sale_month,
               COALESCE(SUM(f.total_sale), 0)::float8 AS total_revenue
        FROM fact_sales f
        WHERE f.sale_date IS NOT NULL
        GROUP BY sale_month
        ORDER BY sale_month
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthRevenue
	for rows.Next() {
		var r MonthRevenue
		if err := rows.Scan(&r.Month, &r.TotalRevenue); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// TopCustomers ranks customers by units bought, highest first. Revenue
// rides along for display but does not affect the order.
func TopCustomers(ctx context.Context, db warehouse.DB, limit int) ([]CustomerVolume, error) {
	rows, err := db.Query(ctx, `
        SELECT c.customer_id,
               COALESCE(c.customer_name, '') AS customer_name,
               COALESCE(SUM(f.quantity_sold), 0)::bigint AS total_quantity,
               COALESCE(SUM(f.total_sale), 0)::float8 AS total_revenue
        FROM fact_sales f
        JOIN dim_customers c ON c.customer_id = f.customer_id
        GROUP BY c.customer_id, c.customer_name
        ORDER BY total_quantity DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CustomerVolume
	for rows.Next() {
		var r CustomerVolume
		if err := rows.Scan(&r.CustomerID, &r.CustomerName, &r.TotalQuantity, &r.TotalRevenue); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Result is a rendered report: column headers plus formatted rows.
type Result struct {
	Columns []string
	Rows    [][]string
}

// RunFunc executes a report. Ranking reports honor limit; the monthly
// trend returns every month regardless.
type RunFunc func(ctx context.Context, db warehouse.DB, limit int) (*Result, error)

// Report is a named analysis backed by one of the reporting views.
type Report struct {
	Name        string
	Description string
	View        string
	Run         RunFunc
}

func init() {
	Register(Report{
		Name:        "top-products",
		Description: "Products ranked by total sales revenue",
		View:        "top_products_by_revenue",
		Run:         runTopProducts,
	})
	Register(Report{
		Name:        "monthly-trend",
		Description: "Total revenue per calendar month",
		View:        "monthly_revenue_trend",
		Run:         runMonthlyTrend,
	})
	Register(Report{
		Name:        "top-customers",
		Description: "Customers ranked by units purchased",
		View:        "top_customers_by_volume",
		Run:         runTopCustomers,
	})
}

func runTopProducts(ctx context.Context, db warehouse.DB, limit int) (*Result, error) {
	products, err := TopProducts(ctx, db, limit)
	if err != nil {
		return nil, err
	}

	res := &Result{Columns: []string{"Product ID", "Product Name", "Total Revenue"}}
	for _, p := range products {
		res.Rows = append(res.Rows, []string{
			fmt.Sprintf("%d", p.ProductID),
			p.ProductName,
			fmt.Sprintf("%.2f", p.TotalRevenue),
		})
	}
	return res, nil
}

func runMonthlyTrend(ctx context.Context, db warehouse.DB, _ int) (*Result, error) {
	months, err := MonthlyTrend(ctx, db)
	if err != nil {
		return nil, err
	}

	res := &Result{Columns: []string{"Month", "Total Revenue"}}
	for _, m := range months {
		res.Rows = append(res.Rows, []string{
			m.Month.Format("2006-01"),
			fmt.Sprintf("%.2f", m.TotalRevenue),
		})
	}
	return res, nil
}

func runTopCustomers(ctx context.Context, db warehouse.DB, limit int) (*Result, error) {
	customers, err := TopCustomers(ctx, db, limit)
	if err != nil {
		return nil, err
	}

	res := &Result{Columns: []string{"Customer ID", "Customer Name", "Units", "Total Revenue"}}
	for _, c := range customers {
		res.Rows = append(res.Rows, []string{
			fmt.Sprintf("%d", c.CustomerID),
			c.CustomerName,
			fmt.Sprintf("%d", c.TotalQuantity),
			fmt.Sprintf("%.2f", c.TotalRevenue),
		})
	}
	return res, nil
}
