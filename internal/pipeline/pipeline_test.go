package pipeline

import (
	"strings"
	"testing"

	"github.com/MBMer22/Sales-Performance-Analysis/internal/model"
)

func i64(v int64) *int64 {
	return &v
}

func str(s string) *string {
	return &s
}

func TestCheckQualityClean(t *testing.T) {
	p := New(nil, Config{})

	products := []model.StagingProduct{
		{ProductID: i64(1), ProductName: str("Widget")},
	}
	customers := []model.StagingCustomer{
		{CustomerID: i64(10), FirstName: str("Ada"), LastName: str("Lovelace")},
	}
	sales := []model.StagingSale{
		{SaleID: i64(100), CustomerID: i64(10), ProductID: i64(1)},
	}

	violations := p.checkQuality(products, customers, sales)
	if len(violations) != 0 {
		t.Errorf("Expected no violations, got %v", violations)
	}
}

func TestCheckQualityCollectsAllTables(t *testing.T) {
	p := New(nil, Config{})

	products := []model.StagingProduct{
		{ProductID: i64(1), ProductName: nil}, // null name
	}
	customers := []model.StagingCustomer{
		{CustomerID: i64(10), FirstName: str("Ada"), LastName: str("Lovelace")},
		{CustomerID: i64(10), FirstName: str("Ada"), LastName: str("Lovelace")}, // duplicate key
	}
	sales := []model.StagingSale{
		{SaleID: i64(100), CustomerID: nil, ProductID: i64(1)}, // null customer
	}

	violations := p.checkQuality(products, customers, sales)
	if len(violations) != 3 {
		t.Fatalf("Expected 3 violations, got %d: %v", len(violations), violations)
	}

	joined := strings.Join(violations, "\n")
	for _, table := range []string{"stg_products", "stg_customers", "stg_sales"} {
		if !strings.Contains(joined, table) {
			t.Errorf("Expected a violation naming %s, got:\n%s", table, joined)
		}
	}
}

func TestStatsLogSummary(t *testing.T) {
	// Just verify it does not panic on a zero-value stats.
	s := &Stats{}
	s.LogSummary()
}
