package models

import "time"

// Category groups products. Names are unique regardless of case.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryRequest is the body of category create and update calls.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CategoryResponse is the public view of a category.
type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CategoryWithProducts lists a category together with its products.
type CategoryWithProducts struct {
	ID       uint             `json:"id"`
	Name     string           `json:"name"`
	Products []ProductSummary `json:"products"`
}
