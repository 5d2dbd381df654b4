package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"productos/internal/models"
	"productos/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ErrInvalidProduct is returned when a product breaks its model constraints.
// The wrapped error is a validator.ValidationErrors keyed by JSON field name.
var ErrInvalidProduct = errors.New("invalid product")

// Product event types published after each successful mutation.
const (
	EventProductCreated             = "product.created"
	EventProductUpdated             = "product.updated"
	EventProductAvailabilityToggled = "product.availability_toggled"
	EventProductDeleted             = "product.deleted"
)

// ProductEvent is the payload published for a product mutation.
type ProductEvent struct {
	Type       string          `json:"type"`
	ProductID  uint            `json:"productId"`
	Product    *models.Product `json:"product,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// EventPublisher delivers product events to a broker.
type EventPublisher interface {
	Publish(eventType string, payload interface{}) error
}

// ProductInput holds the writable fields of a product.
type ProductInput struct {
	Name         string
	Price        float64
	Availability bool
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	validate  *validator.Validate
	log       zerolog.Logger
	now       func() time.Time
}

func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are sent.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log zerolog.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  newStructValidator(),
		log:       log,
		now:       time.Now,
	}
}

// GetAllProducts retrieves all products, newest first.
func (s *ProductService) GetAllProducts() ([]models.ProductSummary, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct stores a new, available product.
func (s *ProductService) CreateProduct(name string, price float64) (*models.Product, error) {
	product := &models.Product{
		Name:         name,
		Price:        price,
		Availability: true,
	}
	if err := s.check(product); err != nil {
		return nil, err
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.publish(EventProductCreated, product.ID, product)
	return product, nil
}

// UpdateProduct replaces every writable field of an existing product.
func (s *ProductService) UpdateProduct(id uint, in ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Price = in.Price
	product.Availability = in.Availability
	if err := s.check(product); err != nil {
		return nil, err
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish(EventProductUpdated, product.ID, product)
	return product, nil
}

// ToggleAvailability flips the availability flag of an existing product.
func (s *ProductService) ToggleAvailability(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Availability = !product.Availability
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish(EventProductAvailabilityToggled, product.ID, product)
	return product, nil
}

// DeleteProduct permanently removes an existing product.
func (s *ProductService) DeleteProduct(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	s.publish(EventProductDeleted, id, nil)
	return nil
}

// check enforces the model's validate tags before a write.
func (s *ProductService) check(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, err)
	}
	return nil
}

// Ping reports whether the product storage is reachable.
func (s *ProductService) Ping() error {
	return s.repo.Ping()
}

// publish sends an event if a publisher is configured. Failures are logged
// and never returned: the mutation has already been committed.
func (s *ProductService) publish(eventType string, id uint, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := ProductEvent{
		Type:       eventType,
		ProductID:  id,
		Product:    product,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(eventType, event); err != nil {
		s.log.Warn().Err(err).Str("event", eventType).Uint("product_id", id).Msg("failed to publish product event")
		return
	}
	s.log.Debug().Str("event", eventType).Uint("product_id", id).Msg("published product event")
}
