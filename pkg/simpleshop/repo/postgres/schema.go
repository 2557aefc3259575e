package postgres

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL DEFAULT '',
		phone VARCHAR(64) NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		city VARCHAR(128) NOT NULL DEFAULT '',
		type VARCHAR(32) NOT NULL,
		status VARCHAR(32) NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS team_members (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(64) NOT NULL DEFAULT '',
		role VARCHAR(32) NOT NULL,
		status VARCHAR(32) NOT NULL,
		joined_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS work_orders (
		id UUID PRIMARY KEY,
		number VARCHAR(32) NOT NULL UNIQUE,
		customer_id UUID NOT NULL,
		customer_name VARCHAR(255) NOT NULL,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status VARCHAR(32) NOT NULL,
		priority VARCHAR(32) NOT NULL,
		assignee_id UUID,
		assignee_name VARCHAR(255) NOT NULL DEFAULT '',
		scheduled_for TIMESTAMPTZ,
		completed_at TIMESTAMPTZ,
		estimated_hours DOUBLE PRECISION,
		lines JSONB,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id UUID PRIMARY KEY,
		sku VARCHAR(64) NOT NULL,
		name VARCHAR(255) NOT NULL,
		category VARCHAR(128) NOT NULL DEFAULT '',
		supplier VARCHAR(255) NOT NULL DEFAULT '',
		location VARCHAR(128) NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL,
		reorder_level INTEGER NOT NULL DEFAULT 0,
		unit_cost NUMERIC(12, 2) NOT NULL DEFAULT 0,
		last_restocked_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS deliveries (
		id UUID PRIMARY KEY,
		customer_id UUID NOT NULL,
		customer_name VARCHAR(255) NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		route VARCHAR(128) NOT NULL DEFAULT '',
		driver_name VARCHAR(255) NOT NULL DEFAULT '',
		status VARCHAR(32) NOT NULL,
		scheduled_for TIMESTAMPTZ,
		delivered_at TIMESTAMPTZ,
		gallons_delivered DOUBLE PRECISION,
		bottles_returned INTEGER,
		sequence INTEGER NOT NULL DEFAULT 0,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY,
		customer_id UUID NOT NULL,
		customer_name VARCHAR(255) NOT NULL,
		work_order_id UUID,
		amount NUMERIC(12, 2) NOT NULL,
		method VARCHAR(32) NOT NULL,
		status VARCHAR(32) NOT NULL,
		reference VARCHAR(255) NOT NULL DEFAULT '',
		paid_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS saved_filters (
		id UUID PRIMARY KEY,
		view VARCHAR(64) NOT NULL,
		name VARCHAR(255) NOT NULL,
		filter JSONB NOT NULL,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS saved_filters_view_name_idx ON saved_filters (view, lower(name))`,
	`CREATE TABLE IF NOT EXISTS audit_entries (
		id UUID PRIMARY KEY,
		entity_type VARCHAR(64) NOT NULL,
		entity_id UUID NOT NULL,
		action VARCHAR(32) NOT NULL,
		changes JSONB,
		summary TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS audit_entries_entity_idx ON audit_entries (entity_type, entity_id)`,
}

// Migrate creates the shop tables in the connection's search_path if they do
// not exist yet.
func (r *Repository) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
