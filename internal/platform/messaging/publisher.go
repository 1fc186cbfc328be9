// Package messaging defines the event publishing contract used by the catalog.
package messaging

import (
	"context"
)

const (
	ProductCreatedSubject = "catalog.product.created"
	ProductUpdatedSubject = "catalog.product.updated"
	ProductDeletedSubject = "catalog.product.deleted"

	// CatalogSubjects matches every subject published by the catalog.
	CatalogSubjects = "catalog.>"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, _ Event) error {
	return nil
}
