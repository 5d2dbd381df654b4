package repositories

import (
	"errors"

	"productos/internal/models"
)

// ErrProductNotFound is returned when no product has the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product, newest first.
	GetAll() ([]models.ProductSummary, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	// Update persists every field of an existing product.
	Update(product *models.Product) error
	Delete(id uint) error
	Ping() error
}
