//-------------------------------------------------------------------------
//
// Sales Performance Analysis
//
// Copyright (c) 2025 - 2026, MBMer22
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/MBMer22/Sales-Performance-Analysis/internal/logging"
)

// ExtractConfig controls how many rows each generated extract carries
// and how dirty the data is.
type ExtractConfig struct {
	Products  int
	Customers int
	Sales     int

	// NullRate is the probability an optional field is left blank.
	// Key and required-name fields go blank at half this rate so most
	// rows stay loadable.
	NullRate float64

	// DuplicateRate is the probability a row repeats an earlier key.
	DuplicateRate float64

	// Seed makes generation reproducible. Zero seeds from the clock.
	Seed uint64
}

// Product sub-categories keyed by parent category so generated rows
// stay coherent.
var productTaxonomy = map[string][]string{
	"Electronics": {"Audio", "Computers", "Wearables", "Cameras"},
	"Home":        {"Kitchen", "Furniture", "Decor"},
	"Outdoors":    {"Camping", "Garden", "Sports"},
	"Toys":        {"Games", "Puzzles", "Models"},
	"Clothing":    {"Shirts", "Shoes", "Accessories"},
}

var categoryNames = func() []string {
	names := make([]string, 0, len(productTaxonomy))
	for name := range productTaxonomy {
		names = append(names, name)
	}
	return names
}()

// ExtractGenerator writes sample CSV extracts for the pipeline to
// ingest. The generated data is deliberately imperfect: blank fields
// and duplicate keys appear at the configured rates so the quality
// checks and the cleaner have something to find.
type ExtractGenerator struct {
	faker *Faker
	cfg   ExtractConfig
}

// NewExtractGenerator creates a generator for the given configuration.
func NewExtractGenerator(cfg ExtractConfig) *ExtractGenerator {
	faker := NewFaker()
	if cfg.Seed != 0 {
		faker = NewFakerWithSeed(cfg.Seed)
	}
	return &ExtractGenerator{
		faker: faker,
		cfg:   cfg,
	}
}

// WriteProducts writes the product extract to path.
func (g *ExtractGenerator) WriteProducts(path string) error {
	header := []string{"product_id", "product_name", "category", "sub_category", "price"}

	return g.writeExtract(path, header, g.cfg.Products, func(i int) []string {
		id := g.keyFor(i)
		name := g.faker.NullableString(g.faker.ProductName(), g.cfg.NullRate/2)

		category := ""
		subCategory := ""
		if g.faker.Float64(0, 1) >= g.cfg.NullRate {
			category = Choose(g.faker, categoryNames)
			subCategory = g.faker.NullableString(Choose(g.faker, productTaxonomy[category]), g.cfg.NullRate)
		}

		price := g.faker.NullableString(money(g.faker.Price(1, 500)), g.cfg.NullRate)
		return []string{id, name, category, subCategory, price}
	})
}

// WriteCustomers writes the customer extract to path.
func (g *ExtractGenerator) WriteCustomers(path string) error {
	header := []string{"customer_id", "first_name", "last_name", "email", "phone", "city", "state", "country"}

	return g.writeExtract(path, header, g.cfg.Customers, func(i int) []string {
		id := g.keyFor(i)
		first := g.faker.NullableString(g.faker.FirstName(), g.cfg.NullRate/2)
		last := g.faker.NullableString(g.faker.LastName(), g.cfg.NullRate/2)
		email := g.faker.NullableString(g.faker.Email(), g.cfg.NullRate)
		phone := g.faker.NullableString(g.faker.Phone(), g.cfg.NullRate)
		city := g.faker.NullableString(g.faker.City(), g.cfg.NullRate)
		state := g.faker.NullableString(g.faker.State(), g.cfg.NullRate)
		country := g.faker.NullableString(g.faker.Country(), g.cfg.NullRate)
		return []string{id, first, last, email, phone, city, state, country}
	})
}

// WriteSales writes the sales extract to path. Purchases skew toward a
// hot subset of the catalog so the revenue ranking has a clear shape.
func (g *ExtractGenerator) WriteSales(path string) error {
	header := []string{"sale_id", "customer_id", "product_id", "sale_date", "quantity_sold", "unit_price", "total_sale"}

	numProducts := max(1, g.cfg.Products)
	numCustomers := max(1, g.cfg.Customers)
	hotProducts := max(1, numProducts/5)

	now := time.Now()
	earliest := now.AddDate(-2, 0, 0)

	return g.writeExtract(path, header, g.cfg.Sales, func(i int) []string {
		id := g.keyFor(i)

		customerID := g.faker.Int64(1, int64(numCustomers))
		customer := g.nullableKey(strconv.FormatInt(customerID, 10))

		var productID int64
		if ChooseWeighted(g.faker, []string{"hot", "cold"}, []int{7, 3}) == "hot" {
			productID = g.faker.Int64(1, int64(hotProducts))
		} else {
			productID = g.faker.Int64(1, int64(numProducts))
		}
		product := g.nullableKey(strconv.FormatInt(productID, 10))

		saleDate := g.faker.NullableString(
			g.faker.DateRange(earliest, now).Format("2006-01-02"), g.cfg.NullRate)

		quantity := g.faker.Int(1, 10)
		unitPrice := g.faker.Price(1, 500)
		total := math.Round(float64(quantity)*unitPrice*100) / 100

		quantityStr := g.faker.NullableString(strconv.Itoa(quantity), g.cfg.NullRate)
		unitStr := g.faker.NullableString(money(unitPrice), g.cfg.NullRate)
		totalStr := g.faker.NullableString(money(total), g.cfg.NullRate)

		return []string{id, customer, product, saleDate, quantityStr, unitStr, totalStr}
	})
}

// keyFor returns the key for the i-th row (1-based), repeating an
// earlier key at the duplicate rate and blanking at half the null rate.
func (g *ExtractGenerator) keyFor(i int) string {
	id := int64(i)
	if i > 1 && g.faker.Float64(0, 1) < g.cfg.DuplicateRate {
		id = g.faker.Int64(1, int64(i-1))
	}
	return g.nullableKey(strconv.FormatInt(id, 10))
}

func (g *ExtractGenerator) nullableKey(s string) string {
	return g.faker.NullableString(s, g.cfg.NullRate/2)
}

func (g *ExtractGenerator) writeExtract(path string, header []string, rows int, rowFunc func(i int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := 1; i <= rows; i++ {
		if err := w.Write(rowFunc(i)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	logging.Info().
		Str("path", path).
		Int("rows", rows).
		Str("size", FormatSize(info.Size())).
		Msg("Extract written")
	return nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatSize formats a byte size as human-readable string.
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %siB", float64(bytes)/float64(div), "KMGTPE"[exp:exp+1])
}
