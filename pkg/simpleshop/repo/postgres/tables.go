package postgres

import (
	"github.com/tendant/simple-shop/pkg/simpleshop"
)

var createdOnly = map[string]bool{"created_at": true}

var customerTable = tableDef[simpleshop.Customer]{
	name: "customers",
	columns: []string{
		"id", "name", "email", "phone", "address", "city", "type", "status",
		"notes", "latitude", "longitude", "created_at", "updated_at",
	},
	values: func(c *simpleshop.Customer) []any {
		return []any{
			c.ID, c.Name, c.Email, c.Phone, c.Address, c.City, c.Type, c.Status,
			c.Notes, c.Latitude, c.Longitude, c.CreatedAt, c.UpdatedAt,
		}
	},
	scan: func(row scanner) (*simpleshop.Customer, error) {
		var c simpleshop.Customer
		err := row.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.City, &c.Type, &c.Status,
			&c.Notes, &c.Latitude, &c.Longitude, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		return &c, nil
	},
	immutable: createdOnly,
}

var workOrderTable = tableDef[simpleshop.WorkOrder]{
	name: "work_orders",
	columns: []string{
		"id", "number", "customer_id", "customer_name", "title", "description",
		"status", "priority", "assignee_id", "assignee_name", "scheduled_for",
		"completed_at", "estimated_hours", "lines", "created_at", "updated_at",
	},
	values: func(w *simpleshop.WorkOrder) []any {
		return []any{
			w.ID, w.Number, w.CustomerID, w.CustomerName, w.Title, w.Description,
			w.Status, w.Priority, w.AssigneeID, w.AssigneeName, w.ScheduledFor,
			w.CompletedAt, w.EstimatedHours, w.Lines, w.CreatedAt, w.UpdatedAt,
		}
	},
	scan: func(row scanner) (*simpleshop.WorkOrder, error) {
		var w simpleshop.WorkOrder
		err := row.Scan(
			&w.ID, &w.Number, &w.CustomerID, &w.CustomerName, &w.Title, &w.Description,
			&w.Status, &w.Priority, &w.AssigneeID, &w.AssigneeName, &w.ScheduledFor,
			&w.CompletedAt, &w.EstimatedHours, &w.Lines, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			return nil, err
		}
		return &w, nil
	},
	immutable: map[string]bool{"created_at": true, "number": true},
}

var inventoryTable = tableDef[simpleshop.InventoryItem]{
	name: "inventory_items",
	columns: []string{
		"id", "sku", "name", "category", "supplier", "location", "quantity",
		"reorder_level", "unit_cost", "last_restocked_at", "created_at", "updated_at",
	},
	values: func(i *simpleshop.InventoryItem) []any {
		return []any{
			i.ID, i.SKU, i.Name, i.Category, i.Supplier, i.Location, i.Quantity,
			i.ReorderLevel, i.UnitCost, i.LastRestockedAt, i.CreatedAt, i.UpdatedAt,
		}
	},
	scan: func(row scanner) (*simpleshop.InventoryItem, error) {
		var i simpleshop.InventoryItem
		err := row.Scan(
			&i.ID, &i.SKU, &i.Name, &i.Category, &i.Supplier, &i.Location, &i.Quantity,
			&i.ReorderLevel, &i.UnitCost, &i.LastRestockedAt, &i.CreatedAt, &i.UpdatedAt)
		if err != nil {
			return nil, err
		}
		return &i, nil
	},
	immutable: createdOnly,
}

var teamTable = tableDef[simpleshop.TeamMember]{
	name: "team_members",
	columns: []string{
		"id", "name", "email", "phone", "role", "status", "joined_at", "created_at", "updated_at",
	},
	values: func(m *simpleshop.TeamMember) []any {
		return []any{m.ID, m.Name, m.Email, m.Phone, m.Role, m.Status, m.JoinedAt, m.CreatedAt, m.UpdatedAt}
	},
	scan: func(row scanner) (*simpleshop.TeamMember, error) {
		var m simpleshop.TeamMember
		err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Role, &m.Status, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, err
		}
		return &m, nil
	},
	immutable: createdOnly,
}

var deliveryTable = tableDef[simpleshop.Delivery]{
	name: "deliveries",
	columns: []string{
		"id", "customer_id", "customer_name", "address", "route", "driver_name",
		"status", "scheduled_for", "delivered_at", "gallons_delivered",
		"bottles_returned", "sequence", "latitude", "longitude", "notes", "created_at",
	},
	values: func(d *simpleshop.Delivery) []any {
		return []any{
			d.ID, d.CustomerID, d.CustomerName, d.Address, d.Route, d.DriverName,
			d.Status, d.ScheduledFor, d.DeliveredAt, d.GallonsDelivered,
			d.BottlesReturned, d.Sequence, d.Latitude, d.Longitude, d.Notes, d.CreatedAt,
		}
	},
	scan: func(row scanner) (*simpleshop.Delivery, error) {
		var d simpleshop.Delivery
		err := row.Scan(
			&d.ID, &d.CustomerID, &d.CustomerName, &d.Address, &d.Route, &d.DriverName,
			&d.Status, &d.ScheduledFor, &d.DeliveredAt, &d.GallonsDelivered,
			&d.BottlesReturned, &d.Sequence, &d.Latitude, &d.Longitude, &d.Notes, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		return &d, nil
	},
	immutable: createdOnly,
}

var paymentTable = tableDef[simpleshop.Payment]{
	name: "payments",
	columns: []string{
		"id", "customer_id", "customer_name", "work_order_id", "amount", "method",
		"status", "reference", "paid_at", "created_at",
	},
	values: func(p *simpleshop.Payment) []any {
		return []any{
			p.ID, p.CustomerID, p.CustomerName, p.WorkOrderID, p.Amount, p.Method,
			p.Status, p.Reference, p.PaidAt, p.CreatedAt,
		}
	},
	scan: func(row scanner) (*simpleshop.Payment, error) {
		var p simpleshop.Payment
		err := row.Scan(
			&p.ID, &p.CustomerID, &p.CustomerName, &p.WorkOrderID, &p.Amount, &p.Method,
			&p.Status, &p.Reference, &p.PaidAt, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		return &p, nil
	},
	immutable: createdOnly,
}

var savedFilterTable = tableDef[simpleshop.SavedFilter]{
	name:    "saved_filters",
	columns: []string{"id", "view", "name", "filter", "is_default", "created_at", "updated_at"},
	values: func(f *simpleshop.SavedFilter) []any {
		return []any{f.ID, f.View, f.Name, f.Filter, f.IsDefault, f.CreatedAt, f.UpdatedAt}
	},
	scan: func(row scanner) (*simpleshop.SavedFilter, error) {
		var f simpleshop.SavedFilter
		if err := row.Scan(&f.ID, &f.View, &f.Name, &f.Filter, &f.IsDefault, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		return &f, nil
	},
	immutable: map[string]bool{"created_at": true, "view": true},
}

var auditTable = tableDef[simpleshop.AuditEntry]{
	name:    "audit_entries",
	columns: []string{"id", "entity_type", "entity_id", "action", "changes", "summary", "created_at"},
	values: func(e *simpleshop.AuditEntry) []any {
		return []any{e.ID, e.EntityType, e.EntityID, e.Action, e.Changes, e.Summary, e.CreatedAt}
	},
	scan: func(row scanner) (*simpleshop.AuditEntry, error) {
		var e simpleshop.AuditEntry
		if err := row.Scan(&e.ID, &e.EntityType, &e.EntityID, &e.Action, &e.Changes, &e.Summary, &e.CreatedAt); err != nil {
			return nil, err
		}
		return &e, nil
	},
	immutable: createdOnly,
}
