package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/abgdnv/productcatalog/internal/catalog/errors"
)

var _ ProductStore = (*InMemory)(nil)

// InMemory implements ProductStore using an insertion-ordered slice guarded by a single RWMutex.
type InMemory struct {
	mu       sync.RWMutex
	products []Product
	nextID   int
	now      func() time.Time
}

// Option configures an InMemory store.
type Option func(*InMemory)

// WithClock overrides the clock used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *InMemory) {
		s.now = now
	}
}

// WithProducts preloads the store. The ID counter is positioned after the highest preloaded ID.
func WithProducts(products ...Product) Option {
	return func(s *InMemory) {
		s.products = append(s.products, products...)
		for _, p := range products {
			if p.ID >= s.nextID {
				s.nextID = p.ID + 1
			}
		}
	}
}

// NewInMemoryStore creates a new instance of the in-memory ProductStore.
func NewInMemoryStore(opts ...Option) *InMemory {
	s := &InMemory{
		products: make([]Product, 0),
		nextID:   1,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindByID retrieves a product by its ID.
func (s *InMemory) FindByID(_ context.Context, id int) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

// FindAll returns a copy of all products in insertion order.
func (s *InMemory) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.products), nil
}

// Create creates a new product and returns it.
func (s *InMemory) Create(_ context.Context, np NewProduct) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := Product{
		ID:          s.nextID,
		Name:        np.Name,
		Category:    np.Category,
		Price:       np.Price,
		Stock:       np.Stock,
		Description: np.Description,
		Rating:      np.Rating,
		CreatedAt:   NewDate(s.now()),
	}
	s.nextID++
	s.products = append(s.products, product)

	return &product, nil
}

// Update applies fn to a copy of the stored product and commits it when fn succeeds.
func (s *InMemory) Update(_ context.Context, id int, fn func(p *Product) error) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	updated := s.products[i]
	if err := fn(&updated); err != nil {
		return nil, err
	}
	updated.ID = s.products[i].ID
	updated.CreatedAt = s.products[i].CreatedAt
	s.products[i] = updated

	return &updated, nil
}

// DeleteByID deletes a product by its ID.
func (s *InMemory) DeleteByID(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.ErrProductNotFound
	}
	s.products = slices.Delete(s.products, i, i+1)
	return nil
}

// indexOf returns the slice position of id, or -1. Callers must hold the lock.
func (s *InMemory) indexOf(id int) int {
	return slices.IndexFunc(s.products, func(p Product) bool {
		return p.ID == id
	})
}
