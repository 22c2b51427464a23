package models

import "time"

// Supplier provides products.
type Supplier struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(150);not null;uniqueIndex"`
	Phone     string    `json:"phone" gorm:"type:varchar(11);not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SupplierRequest is the body of supplier create and update calls.
type SupplierRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=150"`
	Phone string `json:"phone" validate:"required,min=7,max=11"`
}

// SupplierResponse is the public view of a supplier.
type SupplierResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// SupplierWithProducts lists a supplier with the names of the products it provides.
type SupplierWithProducts struct {
	SupplierID   uint     `json:"supplierId"`
	SupplierName string   `json:"supplierName"`
	ProductNames []string `json:"productNames"`
}
