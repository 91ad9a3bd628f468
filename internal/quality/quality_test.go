package quality

import (
	"testing"

	"github.com/MBMer22/Sales-Performance-Analysis/internal/model"
)

func i64(v int64) *int64 { return &v }

func str(v string) *string { return &v }

func f64(v float64) *float64 { return &v }

func product(id int64, name string) model.StagingProduct {
	return model.StagingProduct{
		ProductID:   i64(id),
		ProductName: str(name),
		Category:    str("Electronics"),
		SubCategory: str("Gadgets"),
		Price:       f64(9.99),
	}
}

func customer(id int64, first, last string) model.StagingCustomer {
	return model.StagingCustomer{
		CustomerID: i64(id),
		FirstName:  str(first),
		LastName:   str(last),
		Country:    str("USA"),
	}
}

func sale(id, customerID, productID int64) model.StagingSale {
	return model.StagingSale{
		SaleID:       i64(id),
		CustomerID:   i64(customerID),
		ProductID:    i64(productID),
		QuantitySold: i64(1),
		UnitPrice:    f64(9.99),
		TotalSale:    f64(9.99),
	}
}

func TestCheckProductsClean(t *testing.T) {
	rows := []model.StagingProduct{product(1, "Widget"), product(2, "Gizmo")}

	report := CheckProducts(rows)

	if report.Table != "stg_products" {
		t.Errorf("Expected table 'stg_products', got '%s'", report.Table)
	}
	if report.RowCount != 2 {
		t.Errorf("Expected RowCount 2, got %d", report.RowCount)
	}
	if !report.Passed() {
		t.Errorf("Expected clean report to pass, violations: %v", report.Violations())
	}
}

func TestCheckProductsNullFields(t *testing.T) {
	noID := product(0, "Widget")
	noID.ProductID = nil
	noName := product(2, "")
	noName.ProductName = nil

	report := CheckProducts([]model.StagingProduct{noID, noName, product(3, "Doohickey")})

	if len(report.NullRows) != 2 {
		t.Fatalf("Expected 2 null rows, got %d", len(report.NullRows))
	}
	if report.Passed() {
		t.Error("Expected report with null rows to fail")
	}
}

func TestCheckProductsNullOptionalFieldsPass(t *testing.T) {
	// Category, sub_category and price are not required fields
	p := product(1, "Widget")
	p.Category = nil
	p.SubCategory = nil
	p.Price = nil

	report := CheckProducts([]model.StagingProduct{p})

	if !report.Passed() {
		t.Errorf("Expected nulls in optional fields to pass, violations: %v", report.Violations())
	}
}

func TestCheckProductsDuplicates(t *testing.T) {
	rows := []model.StagingProduct{
		product(2, "Gizmo"),
		product(1, "Widget"),
		product(2, "Gizmo again"),
		product(2, "Gizmo once more"),
		product(1, "Widget again"),
		product(3, "Doohickey"),
	}

	report := CheckProducts(rows)

	if len(report.Duplicates) != 2 {
		t.Fatalf("Expected 2 duplicate keys, got %d", len(report.Duplicates))
	}
	if report.Duplicates[0].Key != 1 || report.Duplicates[0].Count != 2 {
		t.Errorf("Expected (1, 2), got (%d, %d)", report.Duplicates[0].Key, report.Duplicates[0].Count)
	}
	if report.Duplicates[1].Key != 2 || report.Duplicates[1].Count != 3 {
		t.Errorf("Expected (2, 3), got (%d, %d)", report.Duplicates[1].Key, report.Duplicates[1].Count)
	}
}

func TestCheckProductsNullKeysNotGrouped(t *testing.T) {
	a := product(0, "First")
	a.ProductID = nil
	b := product(0, "Second")
	b.ProductID = nil

	report := CheckProducts([]model.StagingProduct{a, b})

	if len(report.Duplicates) != 0 {
		t.Errorf("Expected no duplicate groups for null keys, got %v", report.Duplicates)
	}
	if len(report.NullRows) != 2 {
		t.Errorf("Expected both rows flagged as null, got %d", len(report.NullRows))
	}
}

func TestCheckCustomersDuplicateKey(t *testing.T) {
	rows := []model.StagingCustomer{
		customer(7, "Ada", "Lovelace"),
		customer(8, "Grace", "Hopper"),
		customer(7, "Ada", "Byron"),
	}

	report := CheckCustomers(rows)

	if len(report.Duplicates) != 1 {
		t.Fatalf("Expected 1 duplicate key, got %d", len(report.Duplicates))
	}
	if report.Duplicates[0].Key != 7 || report.Duplicates[0].Count != 2 {
		t.Errorf("Expected (7, 2), got (%d, %d)", report.Duplicates[0].Key, report.Duplicates[0].Count)
	}
}

func TestCheckCustomersNullFields(t *testing.T) {
	noFirst := customer(1, "", "Lovelace")
	noFirst.FirstName = nil
	noLast := customer(2, "Grace", "")
	noLast.LastName = nil
	noEmail := customer(3, "Alan", "Turing")
	noEmail.Email = nil

	report := CheckCustomers([]model.StagingCustomer{noFirst, noLast, noEmail})

	// Email is not a required field
	if len(report.NullRows) != 2 {
		t.Errorf("Expected 2 null rows, got %d", len(report.NullRows))
	}
}

func TestCheckSalesNullFields(t *testing.T) {
	noProduct := sale(100, 5, 0)
	noProduct.ProductID = nil
	noCustomer := sale(101, 0, 1)
	noCustomer.CustomerID = nil
	noDate := sale(102, 5, 1)
	noDate.SaleDate = nil

	report := CheckSales([]model.StagingSale{noProduct, noCustomer, noDate, sale(103, 5, 1)})

	// Sale date is not a required field
	if len(report.NullRows) != 2 {
		t.Errorf("Expected 2 null rows, got %d", len(report.NullRows))
	}
	if report.RowCount != 4 {
		t.Errorf("Expected RowCount 4, got %d", report.RowCount)
	}
}

func TestViolations(t *testing.T) {
	noID := product(0, "Widget")
	noID.ProductID = nil
	rows := []model.StagingProduct{noID, product(2, "Gizmo"), product(2, "Gizmo again")}

	report := CheckProducts(rows)

	violations := report.Violations()
	if len(violations) != 2 {
		t.Fatalf("Expected 2 violations, got %d: %v", len(violations), violations)
	}

	clean := CheckProducts([]model.StagingProduct{product(1, "Widget")})
	if len(clean.Violations()) != 0 {
		t.Errorf("Expected no violations on clean report, got %v", clean.Violations())
	}
}
