package simpleshop

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Store persists one kind of record.
type Store[T any] interface {
	Create(ctx context.Context, record *T) error
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Update(ctx context.Context, record *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns every record, newest first.
	List(ctx context.Context) ([]T, error)
}

// Repository groups the stores the service reads and writes.
type Repository interface {
	Customers() Store[Customer]
	WorkOrders() Store[WorkOrder]
	Inventory() Store[InventoryItem]
	Team() Store[TeamMember]
	Deliveries() Store[Delivery]
	Payments() Store[Payment]
	SavedFilters() Store[SavedFilter]
	Activity() Store[AuditEntry]
}

// ReportStore holds rendered export files.
type ReportStore interface {
	Put(ctx context.Context, key, contentType string, reader io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// URL returns a link clients can fetch the file from, or "" when the
	// backend cannot serve files directly.
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
