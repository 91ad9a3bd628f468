package quality

import "github.com/MBMer22/Sales-Performance-Analysis/internal/model"

// ReferentialReport lists conformed fact rows whose keys have no
// matching dimension row. The load itself never enforces this; the
// check exists so a run can surface the gap after the fact.
type ReferentialReport struct {
	// MissingProducts are facts whose product_id is absent from the
	// product dimension.
	MissingProducts []model.FactSale

	// MissingCustomers are facts whose customer_id is absent from the
	// customer dimension.
	MissingCustomers []model.FactSale
}

// Passed reports whether every fact row resolved both of its keys.
func (r ReferentialReport) Passed() bool {
	return len(r.MissingProducts) == 0 && len(r.MissingCustomers) == 0
}

// CheckReferential scans conformed fact rows against the dimension rows
// they should reference. Pure and read-only.
func CheckReferential(facts []model.FactSale, products []model.DimProduct, customers []model.DimCustomer) ReferentialReport {
	productKeys := make(map[int64]struct{}, len(products))
	for _, p := range products {
		if p.ProductID != nil {
			productKeys[*p.ProductID] = struct{}{}
		}
	}
	customerKeys := make(map[int64]struct{}, len(customers))
	for _, c := range customers {
		if c.CustomerID != nil {
			customerKeys[*c.CustomerID] = struct{}{}
		}
	}

	var r ReferentialReport
	for _, f := range facts {
		if _, ok := productKeys[f.ProductID]; !ok {
			r.MissingProducts = append(r.MissingProducts, f)
		}
		if _, ok := customerKeys[f.CustomerID]; !ok {
			r.MissingCustomers = append(r.MissingCustomers, f)
		}
	}
	return r
}
