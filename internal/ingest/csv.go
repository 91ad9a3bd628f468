//-------------------------------------------------------------------------
//
// Sales Performance Analysis
//
// Copyright (c) 2025 - 2026, MBMer22
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package ingest reads the raw CSV extracts into staging records.
// Files are comma-delimited with exactly one header row, which is
// skipped positionally. An empty cell becomes a nil field; a row with
// the wrong width or an unparseable value fails the whole file.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/MBMer22/Sales-Performance-Analysis/internal/model"
)

const dateLayout = "2006-01-02"

// Column counts for each extract, matching the staging record layout.
const (
	productFields  = 5
	customerFields = 8
	saleFields     = 7
)

// ReadProducts reads the products CSV at path.
// Columns: product_id, product_name, category, sub_category, price.
func ReadProducts(path string) ([]model.StagingProduct, error) {
	rows, err := readRows(path, productFields)
	if err != nil {
		return nil, err
	}

	out := make([]model.StagingProduct, 0, len(rows))
	for i, row := range rows {
		p := model.StagingProduct{
			ProductName: optString(row[1]),
			Category:    optString(row[2]),
			SubCategory: optString(row[3]),
		}
		if p.ProductID, err = optInt(row[0]); err != nil {
			return nil, rowError(path, i, "product_id", err)
		}
		if p.Price, err = optFloat(row[4]); err != nil {
			return nil, rowError(path, i, "price", err)
		}
		out = append(out, p)
	}
	return out, nil
}

// ReadCustomers reads the customers CSV at path.
// Columns: customer_id, first_name, last_name, email, phone, city, state, country.
func ReadCustomers(path string) ([]model.StagingCustomer, error) {
	rows, err := readRows(path, customerFields)
	if err != nil {
		return nil, err
	}

	out := make([]model.StagingCustomer, 0, len(rows))
	for i, row := range rows {
		c := model.StagingCustomer{
			FirstName: optString(row[1]),
			LastName:  optString(row[2]),
			Email:     optString(row[3]),
			Phone:     optString(row[4]),
			City:      optString(row[5]),
			State:     optString(row[6]),
			Country:   optString(row[7]),
		}
		if c.CustomerID, err = optInt(row[0]); err != nil {
			return nil, rowError(path, i, "customer_id", err)
		}
		out = append(out, c)
	}
	return out, nil
}

// ReadSales reads the sales CSV at path.
// Columns: sale_id, customer_id, product_id, sale_date, quantity_sold,
// unit_price, total_sale.
func ReadSales(path string) ([]model.StagingSale, error) {
	rows, err := readRows(path, saleFields)
	if err != nil {
		return nil, err
	}

	out := make([]model.StagingSale, 0, len(rows))
	for i, row := range rows {
		var s model.StagingSale
		if s.SaleID, err = optInt(row[0]); err != nil {
			return nil, rowError(path, i, "sale_id", err)
		}
		if s.CustomerID, err = optInt(row[1]); err != nil {
			return nil, rowError(path, i, "customer_id", err)
		}
		if s.ProductID, err = optInt(row[2]); err != nil {
			return nil, rowError(path, i, "product_id", err)
		}
		if s.SaleDate, err = optDate(row[3]); err != nil {
			return nil, rowError(path, i, "sale_date", err)
		}
		if s.QuantitySold, err = optInt(row[4]); err != nil {
			return nil, rowError(path, i, "quantity_sold", err)
		}
		if s.UnitPrice, err = optFloat(row[5]); err != nil {
			return nil, rowError(path, i, "unit_price", err)
		}
		if s.TotalSale, err = optFloat(row[6]); err != nil {
			return nil, rowError(path, i, "total_sale", err)
		}
		out = append(out, s)
	}
	return out, nil
}

// readRows reads every data row of the file, enforcing the field count
// and discarding the header row.
func readRows(path string, fields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = fields

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("failed to read %s: missing header row", path)
		}
		return nil, fmt.Errorf("failed to read %s header: %w", path, err)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}

// rowError wraps a field parse failure with the file and data row it
// occurred on. Row numbers are 1-based and exclude the header.
func rowError(path string, row int, column string, err error) error {
	return fmt.Errorf("%s row %d: invalid %s: %w", path, row+1, column, err)
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optInt(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	v, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
