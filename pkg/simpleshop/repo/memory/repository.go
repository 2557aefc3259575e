package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-shop/pkg/simpleshop"
)

// Repository implements simpleshop.Repository using in-memory storage
type Repository struct {
	customers    *table[simpleshop.Customer]
	workOrders   *table[simpleshop.WorkOrder]
	inventory    *table[simpleshop.InventoryItem]
	team         *table[simpleshop.TeamMember]
	deliveries   *table[simpleshop.Delivery]
	payments     *table[simpleshop.Payment]
	savedFilters *table[simpleshop.SavedFilter]
	activity     *table[simpleshop.AuditEntry]
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		customers:    newTable(func(c *simpleshop.Customer) (uuid.UUID, time.Time) { return c.ID, c.CreatedAt }),
		workOrders:   newTable(func(w *simpleshop.WorkOrder) (uuid.UUID, time.Time) { return w.ID, w.CreatedAt }),
		inventory:    newTable(func(i *simpleshop.InventoryItem) (uuid.UUID, time.Time) { return i.ID, i.CreatedAt }),
		team:         newTable(func(m *simpleshop.TeamMember) (uuid.UUID, time.Time) { return m.ID, m.CreatedAt }),
		deliveries:   newTable(func(d *simpleshop.Delivery) (uuid.UUID, time.Time) { return d.ID, d.CreatedAt }),
		payments:     newTable(func(p *simpleshop.Payment) (uuid.UUID, time.Time) { return p.ID, p.CreatedAt }),
		savedFilters: newTable(func(f *simpleshop.SavedFilter) (uuid.UUID, time.Time) { return f.ID, f.CreatedAt }),
		activity:     newTable(func(e *simpleshop.AuditEntry) (uuid.UUID, time.Time) { return e.ID, e.CreatedAt }),
	}
}

func (r *Repository) Customers() simpleshop.Store[simpleshop.Customer]       { return r.customers }
func (r *Repository) WorkOrders() simpleshop.Store[simpleshop.WorkOrder]     { return r.workOrders }
func (r *Repository) Inventory() simpleshop.Store[simpleshop.InventoryItem]  { return r.inventory }
func (r *Repository) Team() simpleshop.Store[simpleshop.TeamMember]          { return r.team }
func (r *Repository) Deliveries() simpleshop.Store[simpleshop.Delivery]      { return r.deliveries }
func (r *Repository) Payments() simpleshop.Store[simpleshop.Payment]         { return r.payments }
func (r *Repository) SavedFilters() simpleshop.Store[simpleshop.SavedFilter] { return r.savedFilters }
func (r *Repository) Activity() simpleshop.Store[simpleshop.AuditEntry]      { return r.activity }

// table stores copies of records keyed by id.
type table[T any] struct {
	mu       sync.RWMutex
	rows     map[uuid.UUID]*T
	identify func(*T) (uuid.UUID, time.Time)
}

func newTable[T any](identify func(*T) (uuid.UUID, time.Time)) *table[T] {
	return &table[T]{
		rows:     make(map[uuid.UUID]*T),
		identify: identify,
	}
}

func (t *table[T]) Create(ctx context.Context, record *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id, _ := t.identify(record)
	if _, exists := t.rows[id]; exists {
		return simpleshop.ErrAlreadyExists
	}
	// Create a copy to avoid external modifications
	recordCopy := *record
	t.rows[id] = &recordCopy
	return nil
}

func (t *table[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	record, exists := t.rows[id]
	if !exists {
		return nil, simpleshop.ErrNotFound
	}
	recordCopy := *record
	return &recordCopy, nil
}

func (t *table[T]) Update(ctx context.Context, record *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id, _ := t.identify(record)
	if _, exists := t.rows[id]; !exists {
		return simpleshop.ErrNotFound
	}
	recordCopy := *record
	t.rows[id] = &recordCopy
	return nil
}

func (t *table[T]) Delete(ctx context.Context, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.rows[id]; !exists {
		return simpleshop.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

func (t *table[T]) List(ctx context.Context) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.rows))
	for _, record := range t.rows {
		out = append(out, *record)
	}
	// Newest first; ids break ties so the order is stable
	sort.Slice(out, func(i, j int) bool {
		idI, createdI := t.identify(&out[i])
		idJ, createdJ := t.identify(&out[j])
		if !createdI.Equal(createdJ) {
			return createdI.After(createdJ)
		}
		return idI.String() < idJ.String()
	})
	return out, nil
}
