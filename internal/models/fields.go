package models

import "strings"

// The *Fields structs hold the editable values of an entity in normalized form.
// An update whose request Fields equal the stored row's Fields changes nothing.

type CategoryFields struct {
	Name string
}

type SupplierFields struct {
	Name  string
	Phone string
}

type ProductFields struct {
	Name       string
	Price      string
	CategoryID uint
	SupplierID uint
}

type SaleFields struct {
	ProductID    uint
	QuantitySold int
}

type StockAdjustmentFields struct {
	ProductID        uint
	AdjustmentAmount int
	Reason           string
}

func (c Category) Fields() CategoryFields { return CategoryFields{Name: fold(c.Name)} }

func (r CategoryRequest) Fields() CategoryFields { return CategoryFields{Name: fold(r.Name)} }

func (s Supplier) Fields() SupplierFields {
	return SupplierFields{Name: fold(s.Name), Phone: strings.TrimSpace(s.Phone)}
}

func (r SupplierRequest) Fields() SupplierFields {
	return SupplierFields{Name: fold(r.Name), Phone: strings.TrimSpace(r.Phone)}
}

func (p Product) Fields() ProductFields {
	return ProductFields{
		Name:       fold(p.Name),
		Price:      p.Price.StringFixed(2),
		CategoryID: p.CategoryID,
		SupplierID: p.SupplierID,
	}
}

func (r ProductUpdateRequest) Fields() ProductFields {
	return ProductFields{
		Name:       fold(r.Name),
		Price:      r.Price.StringFixed(2),
		CategoryID: r.CategoryID,
		SupplierID: r.SupplierID,
	}
}

func (s Sale) Fields() SaleFields {
	return SaleFields{ProductID: s.ProductID, QuantitySold: s.QuantitySold}
}

func (r SaleRequest) Fields() SaleFields {
	return SaleFields{ProductID: r.ProductID, QuantitySold: r.QuantitySold}
}

func (a StockAdjustment) Fields() StockAdjustmentFields {
	return StockAdjustmentFields{ProductID: a.ProductID, AdjustmentAmount: a.AdjustmentAmount, Reason: fold(a.Reason)}
}

func (r StockAdjustmentRequest) Fields() StockAdjustmentFields {
	return StockAdjustmentFields{ProductID: r.ProductID, AdjustmentAmount: r.AdjustmentAmount, Reason: fold(r.Reason)}
}

// fold trims and lower-cases s for case-insensitive comparison.
func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
