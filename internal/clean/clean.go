//-------------------------------------------------------------------------
//
// Sales Performance Analysis
//
// Copyright (c) 2025 - 2026, MBMer22
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package clean applies the deterministic repair and filter rules that
// turn raw staging records into cleaned ones. Customers have no
// cleaning stage; they flow straight from staging into the loader.
package clean

import "github.com/MBMer22/Sales-Performance-Analysis/internal/model"

// Defaults substituted for null product classification fields.
const (
	DefaultCategory    = "Unknown"
	DefaultSubCategory = "Miscellaneous"
)

// Products returns a cleaned copy of the raw product rows. A null
// category or sub_category is replaced with its default; every other
// field passes through unchanged. No rows are dropped: the output is
// always the same length as the input.
func Products(rows []model.StagingProduct) []model.StagingProduct {
	out := make([]model.StagingProduct, len(rows))
	for i, p := range rows {
		if p.Category == nil {
			p.Category = ptr(DefaultCategory)
		}
		if p.SubCategory == nil {
			p.SubCategory = ptr(DefaultSubCategory)
		}
		out[i] = p
	}
	return out
}

// Sales returns the raw sale rows with both customer_id and product_id
// present. Rows missing either key are dropped, not repaired; retained
// rows pass through unchanged.
func Sales(rows []model.StagingSale) []model.StagingSale {
	out := make([]model.StagingSale, 0, len(rows))
	for _, s := range rows {
		if s.CustomerID == nil || s.ProductID == nil {
			continue
		}
		out = append(out, s)
	}
	return out
}

func ptr(s string) *string { return &s }
