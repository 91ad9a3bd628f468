//-------------------------------------------------------------------------
//
// Sales Performance Analysis
//
// Copyright (c) 2025 - 2026, MBMer22
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package model defines the staging and dimensional record types that
// flow through the pipeline. Staging fields are pointers so that a
// missing CSV value survives as nil until the cleaning stage decides
// what to do with it.
package model

import "time"

// StagingProduct is a raw product row as ingested, unvalidated.
type StagingProduct struct {
	ProductID   *int64
	ProductName *string
	Category    *string
	SubCategory *string
	Price       *float64
}

// StagingCustomer is a raw customer row as ingested, unvalidated.
type StagingCustomer struct {
	CustomerID *int64
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	City       *string
	State      *string
	Country    *string
}

// StagingSale is a raw sales transaction row as ingested, unvalidated.
type StagingSale struct {
	SaleID       *int64
	CustomerID   *int64
	ProductID    *int64
	SaleDate     *time.Time
	QuantitySold *int64
	UnitPrice    *float64
	TotalSale    *float64
}

// DimProduct is a conformed product dimension row. Category and
// SubCategory are plain strings: the cleaning stage guarantees they
// are never null.
type DimProduct struct {
	ProductID   *int64
	ProductName *string
	Category    string
	SubCategory string
	Price       *float64
}

// DimCustomer is a conformed customer dimension row. CustomerName is
// derived from the raw first and last names; the remaining raw fields
// (email, phone, city, state) are dropped during conformance.
type DimCustomer struct {
	CustomerID   *int64
	CustomerName string
	Country      *string
}

// FactSale is a conformed sales fact row. CustomerID and ProductID are
// plain values: the cleaning stage drops rows missing either key.
type FactSale struct {
	SaleID       *int64
	CustomerID   int64
	ProductID    int64
	SaleDate     *time.Time
	QuantitySold *int64
	UnitPrice    *float64
	TotalSale    *float64
}
