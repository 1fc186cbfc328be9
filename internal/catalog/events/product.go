// Package events defines the product lifecycle events published by the catalog.
package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/productcatalog/internal/catalog/store"
	"github.com/abgdnv/productcatalog/internal/platform/messaging"
	"github.com/shopspring/decimal"
)

// ProductSnapshot is the product state carried by created and updated events.
type ProductSnapshot struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	Rating      float64         `json:"rating"`
	CreatedAt   store.Date      `json:"created_at"`
}

// NewProductSnapshot copies p into an event snapshot.
func NewProductSnapshot(p store.Product) ProductSnapshot {
	return ProductSnapshot{
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

type ProductCreatedEvent struct {
	Product    ProductSnapshot `json:"product"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func (e ProductCreatedEvent) Subject() string {
	return messaging.ProductCreatedSubject
}

func (e ProductCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type ProductUpdatedEvent struct {
	Product    ProductSnapshot `json:"product"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func (e ProductUpdatedEvent) Subject() string {
	return messaging.ProductUpdatedSubject
}

func (e ProductUpdatedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type ProductDeletedEvent struct {
	ProductID  int       `json:"product_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e ProductDeletedEvent) Subject() string {
	return messaging.ProductDeletedSubject
}

func (e ProductDeletedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
