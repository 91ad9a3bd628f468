//-------------------------------------------------------------------------
//
// Sales Performance Analysis
//
// Copyright (c) 2025 - 2026, MBMer22
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package quality runs read-only diagnostics over staging record sets:
// row counts, rows with required fields null, and duplicated natural
// keys. Checks never mutate their input and never decide anything on
// their own; callers choose whether a failed report aborts the run.
package quality

import (
	"fmt"
	"sort"

	"github.com/MBMer22/Sales-Performance-Analysis/internal/model"
)

// DuplicateKey records a natural key appearing on more than one row.
type DuplicateKey struct {
	Key   int64
	Count int
}

// Report holds the findings for one staging record set.
type Report[T any] struct {
	// Table names the record set the report describes.
	Table string

	// RowCount is the total number of rows inspected.
	RowCount int

	// NullRows is the subset of rows with any required field null.
	NullRows []T

	// Duplicates lists every natural key shared by more than one row,
	// ascending by key. Rows with a null key are not grouped.
	Duplicates []DuplicateKey
}

// Passed reports whether the record set is free of findings.
func (r Report[T]) Passed() bool {
	return len(r.NullRows) == 0 && len(r.Duplicates) == 0
}

// Violations renders the findings as human-readable strings, empty when
// the report passed.
func (r Report[T]) Violations() []string {
	var v []string
	if n := len(r.NullRows); n > 0 {
		v = append(v, fmt.Sprintf("%s: %d rows with null required fields", r.Table, n))
	}
	for _, d := range r.Duplicates {
		v = append(v, fmt.Sprintf("%s: duplicate key %d appears %d times", r.Table, d.Key, d.Count))
	}
	return v
}

// CheckProducts inspects raw staging products.
// Required fields: product_id, product_name. Natural key: product_id.
func CheckProducts(rows []model.StagingProduct) Report[model.StagingProduct] {
	r := Report[model.StagingProduct]{Table: "stg_products", RowCount: len(rows)}
	for _, p := range rows {
		if p.ProductID == nil || p.ProductName == nil {
			r.NullRows = append(r.NullRows, p)
		}
	}
	r.Duplicates = duplicateKeys(rows, func(p model.StagingProduct) *int64 { return p.ProductID })
	return r
}

// CheckCustomers inspects raw staging customers.
// Required fields: customer_id, first_name, last_name. Natural key: customer_id.
func CheckCustomers(rows []model.StagingCustomer) Report[model.StagingCustomer] {
	r := Report[model.StagingCustomer]{Table: "stg_customers", RowCount: len(rows)}
	for _, c := range rows {
		if c.CustomerID == nil || c.FirstName == nil || c.LastName == nil {
			r.NullRows = append(r.NullRows, c)
		}
	}
	r.Duplicates = duplicateKeys(rows, func(c model.StagingCustomer) *int64 { return c.CustomerID })
	return r
}

// CheckSales inspects raw staging sales.
// Required fields: sale_id, product_id, customer_id. Natural key: sale_id.
func CheckSales(rows []model.StagingSale) Report[model.StagingSale] {
	r := Report[model.StagingSale]{Table: "stg_sales", RowCount: len(rows)}
	for _, s := range rows {
		if s.SaleID == nil || s.ProductID == nil || s.CustomerID == nil {
			r.NullRows = append(r.NullRows, s)
		}
	}
	r.Duplicates = duplicateKeys(rows, func(s model.StagingSale) *int64 { return s.SaleID })
	return r
}

// duplicateKeys groups rows by natural key and reports every key with
// multiplicity above one. Rows with a nil key are skipped; they are
// already surfaced by the null check.
func duplicateKeys[T any](rows []T, key func(T) *int64) []DuplicateKey {
	counts := make(map[int64]int)
	for _, row := range rows {
		if k := key(row); k != nil {
			counts[*k]++
		}
	}

	var dups []DuplicateKey
	for k, n := range counts {
		if n > 1 {
			dups = append(dups, DuplicateKey{Key: k, Count: n})
		}
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i].Key < dups[j].Key })
	return dups
}
