//-------------------------------------------------------------------------
//
// Sales Performance Analysis
//
// Copyright (c) 2025 - 2026, MBMer22
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package conform maps cleaned staging records into the dimensional
// model. Pure field mapping: renames, one derived field, and the
// intentional drop of raw customer contact fields. No filtering
// happens here; that is the cleaner's job.
package conform

import "github.com/MBMer22/Sales-Performance-Analysis/internal/model"

// Products maps cleaned product rows into the product dimension,
// field for field. Rows are expected to have passed cleaning, so the
// classification fields are never null; a null anyway conforms to the
// empty string rather than panicking.
func Products(rows []model.StagingProduct) []model.DimProduct {
	out := make([]model.DimProduct, len(rows))
	for i, p := range rows {
		out[i] = model.DimProduct{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Category:    derefStr(p.Category),
			SubCategory: derefStr(p.SubCategory),
			Price:       p.Price,
		}
	}
	return out
}

// Customers maps raw customer rows into the customer dimension.
// CustomerName is the first name, a single ASCII space, and the last
// name; a null name part contributes an empty string. Email, phone,
// city and state are dropped.
func Customers(rows []model.StagingCustomer) []model.DimCustomer {
	out := make([]model.DimCustomer, len(rows))
	for i, c := range rows {
		out[i] = model.DimCustomer{
			CustomerID:   c.CustomerID,
			CustomerName: derefStr(c.FirstName) + " " + derefStr(c.LastName),
			Country:      c.Country,
		}
	}
	return out
}

// Sales maps cleaned sale rows into the fact table, field for field.
// Rows are expected to have passed cleaning, so both keys are present;
// a null key anyway conforms to zero and will surface in the
// referential check.
func Sales(rows []model.StagingSale) []model.FactSale {
	out := make([]model.FactSale, len(rows))
	for i, s := range rows {
		out[i] = model.FactSale{
			SaleID:       s.SaleID,
			CustomerID:   derefInt(s.CustomerID),
			ProductID:    derefInt(s.ProductID),
			SaleDate:     s.SaleDate,
			QuantitySold: s.QuantitySold,
			UnitPrice:    s.UnitPrice,
			TotalSale:    s.TotalSale,
		}
	}
	return out
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
