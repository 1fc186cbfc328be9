// Package service provides the implementation of catalog business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/productcatalog/internal/catalog/events"
	"github.com/abgdnv/productcatalog/internal/catalog/store"
	"github.com/abgdnv/productcatalog/internal/platform/messaging"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// CatalogService defines the methods for managing and querying the product catalog.
type CatalogService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int) (*ProductDto, error)

	// Create validates the draft and adds a new product.
	// Returns a *ValidationError naming the first violated constraint.
	Create(ctx context.Context, draft ProductDraft) (*ProductDto, error)

	// Update applies the supplied fields of patch to an existing product.
	// Returns ErrProductNotFound before any validation takes place.
	Update(ctx context.Context, id int, patch ProductPatch) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int) error

	// List returns products filtered by price range and sorted per query.
	List(ctx context.Context, query ListQuery) ([]ProductDto, error)

	// Search returns products whose name contains query.Q, optionally restricted to a category.
	Search(ctx context.Context, query SearchQuery) ([]ProductDto, error)

	// ListByCategory returns the products of one category, matched case-insensitively.
	ListByCategory(ctx context.Context, category string) ([]ProductDto, error)

	// Categories returns the category enumeration.
	Categories() []string

	// GroupByCategory partitions products by category, omitting empty categories.
	GroupByCategory(ctx context.Context) ([]CategoryGroup, error)

	// Stats computes catalog-wide statistics.
	Stats(ctx context.Context) (*Stats, error)

	// Count returns the number of products currently stored.
	Count(ctx context.Context) (int, error)
}

// Service implements CatalogService on top of a ProductStore.
type Service struct {
	store     store.ProductStore
	publisher messaging.Publisher
	logger    *slog.Logger
	now       func() time.Time

	createdCounter metric.Int64Counter
	updatedCounter metric.Int64Counter
	deletedCounter metric.Int64Counter
}

var _ CatalogService = (*Service)(nil)

// NewService creates a new instance of CatalogService.
func NewService(productStore store.ProductStore, publisher messaging.Publisher, logger *slog.Logger) *Service {
	meter := otel.Meter("catalog-service")
	return &Service{
		store:          productStore,
		publisher:      publisher,
		logger:         logger.With("component", "catalog_service"),
		now:            time.Now,
		createdCounter: mustCounter(meter, "catalog_products_created", "Total number of created products"),
		updatedCounter: mustCounter(meter, "catalog_products_updated", "Total number of updated products"),
		deletedCounter: mustCounter(meter, "catalog_products_deleted", "Total number of deleted products"),
	}
}

func mustCounter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		panic(fmt.Sprintf("failed to create %s counter: %v", name, err))
	}
	return counter
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	Rating      float64         `json:"rating"`
	CreatedAt   store.Date      `json:"created_at"`
}

// ProductDraft is the input of Create. Pointer fields tell an absent field from a zero value.
type ProductDraft struct {
	Name        *string          `json:"name"        validate:"required,notblank"`
	Category    *string          `json:"category"    validate:"required,category"`
	Price       *decimal.Decimal `json:"price"       validate:"required,gte=0"`
	Stock       *int             `json:"stock"       validate:"required,gte=0"`
	Description *string          `json:"description"`
	Rating      *float64         `json:"rating"`
}

// ProductPatch is the input of Update. Only non-nil fields are applied.
type ProductPatch struct {
	Name        *string          `json:"name"        validate:"omitempty,notblank"`
	Category    *string          `json:"category"    validate:"omitempty,category"`
	Price       *decimal.Decimal `json:"price"       validate:"omitempty,gte=0"`
	Stock       *int             `json:"stock"       validate:"omitempty,gte=0"`
	Description *string          `json:"description"`
	Rating      *float64         `json:"rating"`
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int) (*ProductDto, error) {
	product, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return toDto(product), nil
}

// Create validates the draft, stores a new product and returns it as a ProductDto.
func (s *Service) Create(ctx context.Context, draft ProductDraft) (*ProductDto, error) {
	if err := validateInput(draft); err != nil {
		return nil, err
	}

	product, err := s.store.Create(ctx, draft.toNewProduct())
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publish(ctx, events.ProductCreatedEvent{
		Product:    events.NewProductSnapshot(*product),
		OccurredAt: s.now().UTC(),
	})
	s.createdCounter.Add(ctx, 1)

	return toDto(product), nil
}

// Update validates patch against an existing product and applies it all-or-nothing.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, id int, patch ProductPatch) (*ProductDto, error) {
	updated, err := s.store.Update(ctx, id, func(p *store.Product) error {
		if err := validateInput(patch); err != nil {
			return err
		}
		patch.applyTo(p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}

	s.publish(ctx, events.ProductUpdatedEvent{
		Product:    events.NewProductSnapshot(*updated),
		OccurredAt: s.now().UTC(),
	})
	s.updatedCounter.Add(ctx, 1)

	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id int) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}

	s.publish(ctx, events.ProductDeletedEvent{
		ProductID:  id,
		OccurredAt: s.now().UTC(),
	})
	s.deletedCounter.Add(ctx, 1)

	return nil
}

// Categories returns the category enumeration in declaration order.
func (s *Service) Categories() []string {
	return store.Categories()
}

// Count returns the number of stored products.
func (s *Service) Count(ctx context.Context) (int, error) {
	products, err := s.snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return len(products), nil
}

// publish sends the event and logs a failure; catalog mutations do not depend on delivery.
func (s *Service) publish(ctx context.Context, event messaging.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event", "subject", event.Subject(), "error", err)
	}
}

func (s *Service) snapshot(ctx context.Context) ([]store.Product, error) {
	products, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (d ProductDraft) toNewProduct() store.NewProduct {
	np := store.NewProduct{
		Name:     *d.Name,
		Category: *d.Category,
		Price:    *d.Price,
		Stock:    *d.Stock,
	}
	if d.Description != nil {
		np.Description = *d.Description
	}
	if d.Rating != nil {
		np.Rating = *d.Rating
	}
	return np
}

func (p ProductPatch) applyTo(product *store.Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Rating != nil {
		product.Rating = *p.Rating
	}
}

func toDto(p *store.Product) *ProductDto {
	return &ProductDto{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		Description: p.Description,
		Rating:      p.Rating,
		CreatedAt:   p.CreatedAt,
	}
}

func toDtos(products []store.Product) []ProductDto {
	dtos := make([]ProductDto, len(products))
	for i := range products {
		dtos[i] = *toDto(&products[i])
	}
	return dtos
}
