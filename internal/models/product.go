package models

import "time"

// Product represents a product in the catalog.
type Product struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null" validate:"required"`
	Price        float64   `json:"price" gorm:"not null;check:price > 0" validate:"required,gt=0"`
	Availability bool      `json:"availability" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProductSummary is the list view of a Product, without timestamps.
type ProductSummary struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Availability bool    `json:"availability"`
}

// Summary strips the storage timestamps from p.
func (p Product) Summary() ProductSummary {
	return ProductSummary{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Availability: p.Availability,
	}
}
