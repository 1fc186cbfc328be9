// Package store provides an interface for product storage operations.
package store

import (
	"context"
)

// ProductStore is an interface for product storage operations.
// Implementations keep products in insertion order and never reuse an ID.
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int) (*Product, error)

	// FindAll returns a snapshot of all products in insertion order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// Create assigns the next ID and the creation date, then appends the product.
	Create(ctx context.Context, product NewProduct) (*Product, error)

	// Update applies fn to a copy of the product and stores the copy only if fn returns nil.
	// ID and CreatedAt are kept regardless of what fn does.
	// Returns ErrProductNotFound if no product exists with the given ID, or the error returned by fn.
	Update(ctx context.Context, id int, fn func(p *Product) error) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int) error
}
