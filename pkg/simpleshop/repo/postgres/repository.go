package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-shop/pkg/simpleshop"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements simpleshop.Repository using PostgreSQL
type Repository struct {
	db           DBTX
	customers    *table[simpleshop.Customer]
	workOrders   *table[simpleshop.WorkOrder]
	inventory    *table[simpleshop.InventoryItem]
	team         *table[simpleshop.TeamMember]
	deliveries   *table[simpleshop.Delivery]
	payments     *table[simpleshop.Payment]
	savedFilters *table[simpleshop.SavedFilter]
	activity     *table[simpleshop.AuditEntry]
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{
		db:           db,
		customers:    &table[simpleshop.Customer]{db: db, def: customerTable},
		workOrders:   &table[simpleshop.WorkOrder]{db: db, def: workOrderTable},
		inventory:    &table[simpleshop.InventoryItem]{db: db, def: inventoryTable},
		team:         &table[simpleshop.TeamMember]{db: db, def: teamTable},
		deliveries:   &table[simpleshop.Delivery]{db: db, def: deliveryTable},
		payments:     &table[simpleshop.Payment]{db: db, def: paymentTable},
		savedFilters: &table[simpleshop.SavedFilter]{db: db, def: savedFilterTable},
		activity:     &table[simpleshop.AuditEntry]{db: db, def: auditTable},
	}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return New(pool)
}

func (r *Repository) Customers() simpleshop.Store[simpleshop.Customer]       { return r.customers }
func (r *Repository) WorkOrders() simpleshop.Store[simpleshop.WorkOrder]     { return r.workOrders }
func (r *Repository) Inventory() simpleshop.Store[simpleshop.InventoryItem]  { return r.inventory }
func (r *Repository) Team() simpleshop.Store[simpleshop.TeamMember]          { return r.team }
func (r *Repository) Deliveries() simpleshop.Store[simpleshop.Delivery]      { return r.deliveries }
func (r *Repository) Payments() simpleshop.Store[simpleshop.Payment]         { return r.payments }
func (r *Repository) SavedFilters() simpleshop.Store[simpleshop.SavedFilter] { return r.savedFilters }
func (r *Repository) Activity() simpleshop.Store[simpleshop.AuditEntry]      { return r.activity }

// Error handling helper
func handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w", operation, simpleshop.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: referenced record: %w", operation, simpleshop.ErrNotFound)
		case "23502": // not_null_violation
			return fmt.Errorf("%s: required field %s is missing: %w", operation, pgErr.ColumnName, simpleshop.ErrInvalidInput)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", operation, simpleshop.ErrNotFound)
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// tableDef describes how one record type maps onto a table. The first
// column is always the id, and values returns arguments in column order.
type tableDef[T any] struct {
	name    string
	columns []string
	values  func(*T) []any
	scan    func(scanner) (*T, error)
	// immutable columns are left out of UPDATE statements
	immutable map[string]bool
}

type table[T any] struct {
	db  DBTX
	def tableDef[T]
}

func (t *table[T]) selectSQL() string {
	return "SELECT " + strings.Join(t.def.columns, ", ") + " FROM " + t.def.name
}

func (t *table[T]) Create(ctx context.Context, record *T) error {
	placeholders := make([]string, len(t.def.columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.def.name, strings.Join(t.def.columns, ", "), strings.Join(placeholders, ", "))

	if _, err := t.db.Exec(ctx, query, t.def.values(record)...); err != nil {
		return handlePostgresError("create "+t.def.name, err)
	}
	return nil
}

func (t *table[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	record, err := t.def.scan(t.db.QueryRow(ctx, t.selectSQL()+" WHERE id = $1", id))
	if err != nil {
		return nil, handlePostgresError("get "+t.def.name, err)
	}
	return record, nil
}

func (t *table[T]) Update(ctx context.Context, record *T) error {
	values := t.def.values(record)
	sets := make([]string, 0, len(t.def.columns))
	args := []any{values[0]}
	for i, column := range t.def.columns[1:] {
		if t.def.immutable[column] {
			continue
		}
		args = append(args, values[i+1])
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $1", t.def.name, strings.Join(sets, ", "))

	tag, err := t.db.Exec(ctx, query, args...)
	if err != nil {
		return handlePostgresError("update "+t.def.name, err)
	}
	if tag.RowsAffected() == 0 {
		return simpleshop.ErrNotFound
	}
	return nil
}

func (t *table[T]) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := t.db.Exec(ctx, "DELETE FROM "+t.def.name+" WHERE id = $1", id)
	if err != nil {
		return handlePostgresError("delete "+t.def.name, err)
	}
	if tag.RowsAffected() == 0 {
		return simpleshop.ErrNotFound
	}
	return nil
}

func (t *table[T]) List(ctx context.Context) ([]T, error) {
	rows, err := t.db.Query(ctx, t.selectSQL()+" ORDER BY created_at DESC, id")
	if err != nil {
		return nil, handlePostgresError("list "+t.def.name, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		record, err := t.def.scan(rows)
		if err != nil {
			return nil, handlePostgresError("list "+t.def.name, err)
		}
		out = append(out, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, handlePostgresError("list "+t.def.name, err)
	}
	return out, nil
}
