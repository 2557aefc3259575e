package simpleshop

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-shop/pkg/listview"
)

// ViewName identifies a list view.
type ViewName string

const (
	ViewCustomers  ViewName = "customers"
	ViewWorkOrders ViewName = "work_orders"
	ViewInventory  ViewName = "inventory"
	ViewTeam       ViewName = "team"
	ViewDeliveries ViewName = "deliveries"
	ViewPayments   ViewName = "payments"
	ViewActivity   ViewName = "activity"
)

// Views returns every list view name.
func Views() []ViewName {
	return []ViewName{ViewCustomers, ViewWorkOrders, ViewInventory, ViewTeam, ViewDeliveries, ViewPayments, ViewActivity}
}

// ParseView checks that name is a known view.
func ParseView(name string) (ViewName, error) {
	for _, v := range Views() {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, name)
}

// View binds a schema, the statistics computed for it and the collection
// those statistics cover.
type View[T any] struct {
	Name       ViewName
	Schema     *listview.Schema[T]
	Aggregator *listview.Aggregator[T]
	Scope      listview.StatsScope
}

func newView[T any](name ViewName, schema *listview.Schema[T], cfg listview.Config, scope listview.StatsScope) (*View[T], error) {
	agg, err := listview.NewAggregator(schema, cfg)
	if err != nil {
		return nil, fmt.Errorf("view %s: %w", name, err)
	}
	return &View[T]{Name: name, Schema: schema, Aggregator: agg, Scope: scope}, nil
}

// Controller returns a fresh controller for one request.
func (v *View[T]) Controller(now func() time.Time) *listview.Controller[T] {
	return listview.NewController(v.Schema, v.Aggregator,
		listview.WithStatsScope(v.Scope),
		listview.WithClock(now),
	)
}

type views struct {
	customers  *View[Customer]
	workOrders *View[WorkOrder]
	inventory  *View[InventoryItem]
	team       *View[TeamMember]
	deliveries *View[Delivery]
	payments   *View[Payment]
	activity   *View[AuditEntry]
}

func newViews(settings Settings) (*views, error) {
	var (
		v   views
		err error
	)
	if v.customers, err = customerView(); err != nil {
		return nil, err
	}
	if v.workOrders, err = workOrderView(); err != nil {
		return nil, err
	}
	if v.inventory, err = inventoryView(settings.LowStockThreshold); err != nil {
		return nil, err
	}
	if v.team, err = teamView(); err != nil {
		return nil, err
	}
	if v.deliveries, err = deliveryView(); err != nil {
		return nil, err
	}
	if v.payments, err = paymentView(); err != nil {
		return nil, err
	}
	if v.activity, err = activityView(); err != nil {
		return nil, err
	}
	return &v, nil
}

// validate checks a filter state against the schema of the named view.
func (v *views) validate(name ViewName, state listview.FilterState) error {
	var err error
	switch name {
	case ViewCustomers:
		err = v.customers.Schema.Validate(state)
	case ViewWorkOrders:
		err = v.workOrders.Schema.Validate(state)
	case ViewInventory:
		err = v.inventory.Schema.Validate(state)
	case ViewTeam:
		err = v.team.Schema.Validate(state)
	case ViewDeliveries:
		err = v.deliveries.Schema.Validate(state)
	case ViewPayments:
		err = v.payments.Schema.Validate(state)
	case ViewActivity:
		err = v.activity.Schema.Validate(state)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	return nil
}

func uuidText(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func customerView() (*View[Customer], error) {
	schema := listview.NewSchema[Customer]().
		Text("name", listview.Str(func(c Customer) string { return c.Name })).
		Text("email", listview.Str(func(c Customer) string { return c.Email })).
		Text("phone", listview.Str(func(c Customer) string { return c.Phone })).
		Text("address", listview.Str(func(c Customer) string { return c.Address })).
		Text("city", listview.Str(func(c Customer) string { return c.City })).
		Category("status", listview.Str(func(c Customer) string { return string(c.Status) })).
		Category("type", listview.Str(func(c Customer) string { return string(c.Type) })).
		Category("city", listview.Str(func(c Customer) string { return c.City })).
		Date("created_at", listview.Time(func(c Customer) time.Time { return c.CreatedAt })).
		RangeOn("created_at")

	return newView(ViewCustomers, schema, listview.Config{
		OrderBy: "created_at",
		Series:  &listview.SeriesConfig{Period: listview.Month, Count: 12},
		Compare: &listview.CompareConfig{Period: listview.Year},
		GroupBy: []string{"status", "type"},
	}, listview.ScopeFiltered)
}

func workOrderView() (*View[WorkOrder], error) {
	schema := listview.NewSchema[WorkOrder]().
		Text("number", listview.Str(func(w WorkOrder) string { return w.Number })).
		Text("title", listview.Str(func(w WorkOrder) string { return w.Title })).
		Text("customer", listview.Str(func(w WorkOrder) string { return w.CustomerName })).
		Text("assignee", listview.Str(func(w WorkOrder) string { return w.AssigneeName })).
		Category("status", listview.Str(func(w WorkOrder) string { return string(w.Status) })).
		Category("priority", listview.Str(func(w WorkOrder) string { return string(w.Priority) })).
		Category("assignee", listview.Str(func(w WorkOrder) string { return uuidText(w.AssigneeID) })).
		Date("scheduled_for", listview.TimePtr(func(w WorkOrder) *time.Time { return w.ScheduledFor })).
		Date("completed_at", listview.TimePtr(func(w WorkOrder) *time.Time { return w.CompletedAt })).
		Date("created_at", listview.Time(func(w WorkOrder) time.Time { return w.CreatedAt })).
		Number("total", func(w WorkOrder) (float64, bool) { return w.Total().InexactFloat64(), true }).
		Number("estimated_hours", listview.NumPtr(func(w WorkOrder) *float64 { return w.EstimatedHours })).
		RangeOn("scheduled_for")

	return newView(ViewWorkOrders, schema, listview.Config{
		Sum:     []string{"total", "estimated_hours"},
		OrderBy: "created_at",
		Series:  &listview.SeriesConfig{Field: "total", DateField: "completed_at", Period: listview.Month, Count: 12},
		GroupBy: []string{"status", "priority"},
	}, listview.ScopeFiltered)
}

func inventoryView(lowStockThreshold int) (*View[InventoryItem], error) {
	schema := listview.NewSchema[InventoryItem]().
		Text("name", listview.Str(func(i InventoryItem) string { return i.Name })).
		Text("sku", listview.Str(func(i InventoryItem) string { return i.SKU })).
		Text("supplier", listview.Str(func(i InventoryItem) string { return i.Supplier })).
		Text("location", listview.Str(func(i InventoryItem) string { return i.Location })).
		Category("category", listview.Str(func(i InventoryItem) string { return i.Category })).
		Category("supplier", listview.Str(func(i InventoryItem) string { return i.Supplier })).
		Category("stock", listview.Str(func(i InventoryItem) string { return string(i.StockStatus(lowStockThreshold)) })).
		Date("last_restocked_at", listview.TimePtr(func(i InventoryItem) *time.Time { return i.LastRestockedAt })).
		Number("quantity", listview.Num(func(i InventoryItem) int { return i.Quantity })).
		Number("value", func(i InventoryItem) (float64, bool) { return i.Value().InexactFloat64(), true }).
		RangeOn("last_restocked_at")

	return newView(ViewInventory, schema, listview.Config{
		Sum:     []string{"quantity", "value"},
		OrderBy: "last_restocked_at",
		GroupBy: []string{"category", "stock"},
	}, listview.ScopeFiltered)
}

func teamView() (*View[TeamMember], error) {
	schema := listview.NewSchema[TeamMember]().
		Text("name", listview.Str(func(m TeamMember) string { return m.Name })).
		Text("email", listview.Str(func(m TeamMember) string { return m.Email })).
		Text("role", listview.Str(func(m TeamMember) string { return string(m.Role) })).
		Category("role", listview.Str(func(m TeamMember) string { return string(m.Role) })).
		Category("status", listview.Str(func(m TeamMember) string { return string(m.Status) })).
		Date("joined_at", listview.TimePtr(func(m TeamMember) *time.Time { return m.JoinedAt })).
		RangeOn("joined_at")

	return newView(ViewTeam, schema, listview.Config{
		OrderBy: "joined_at",
		GroupBy: []string{"role", "status"},
	}, listview.ScopeFiltered)
}

func deliveryView() (*View[Delivery], error) {
	schema := listview.NewSchema[Delivery]().
		Text("customer", listview.Str(func(d Delivery) string { return d.CustomerName })).
		Text("address", listview.Str(func(d Delivery) string { return d.Address })).
		Text("driver", listview.Str(func(d Delivery) string { return d.DriverName })).
		Text("route", listview.Str(func(d Delivery) string { return d.Route })).
		Text("notes", listview.Str(func(d Delivery) string { return d.Notes })).
		Category("status", listview.Str(func(d Delivery) string { return string(d.Status) })).
		Category("route", listview.Str(func(d Delivery) string { return d.Route })).
		Category("driver", listview.Str(func(d Delivery) string { return d.DriverName })).
		Category("customer", listview.Str(func(d Delivery) string { return d.CustomerID.String() })).
		Date("delivered_at", listview.TimePtr(func(d Delivery) *time.Time { return d.DeliveredAt })).
		Date("scheduled_for", listview.TimePtr(func(d Delivery) *time.Time { return d.ScheduledFor })).
		Number("gallons", listview.NumPtr(func(d Delivery) *float64 { return d.GallonsDelivered })).
		Number("bottles", listview.NumPtr(func(d Delivery) *int { return d.BottlesReturned })).
		RangeOn("delivered_at")

	return newView(ViewDeliveries, schema, listview.Config{
		Sum:     []string{"gallons", "bottles"},
		OrderBy: "delivered_at",
		Series:  &listview.SeriesConfig{Field: "gallons", Period: listview.Month, Count: 12},
		Compare: &listview.CompareConfig{Field: "gallons", Period: listview.Year},
		GroupBy: []string{"status", "route"},
	}, listview.ScopeAll)
}

func paymentView() (*View[Payment], error) {
	schema := listview.NewSchema[Payment]().
		Text("customer", listview.Str(func(p Payment) string { return p.CustomerName })).
		Text("reference", listview.Str(func(p Payment) string { return p.Reference })).
		Text("method", listview.Str(func(p Payment) string { return string(p.Method) })).
		Category("status", listview.Str(func(p Payment) string { return string(p.Status) })).
		Category("method", listview.Str(func(p Payment) string { return string(p.Method) })).
		Date("paid_at", listview.TimePtr(func(p Payment) *time.Time { return p.PaidAt })).
		Number("amount", func(p Payment) (float64, bool) { return p.Amount.InexactFloat64(), true }).
		RangeOn("paid_at")

	return newView(ViewPayments, schema, listview.Config{
		Sum:     []string{"amount"},
		OrderBy: "paid_at",
		Series:  &listview.SeriesConfig{Field: "amount", Period: listview.Month, Count: 12},
		Compare: &listview.CompareConfig{Field: "amount", Period: listview.Year},
		GroupBy: []string{"status", "method"},
	}, listview.ScopeFiltered)
}

func activityView() (*View[AuditEntry], error) {
	schema := listview.NewSchema[AuditEntry]().
		Text("summary", listview.Str(func(e AuditEntry) string { return e.Summary })).
		Text("entity_type", listview.Str(func(e AuditEntry) string { return e.EntityType })).
		Category("entity_type", listview.Str(func(e AuditEntry) string { return e.EntityType })).
		Category("action", listview.Str(func(e AuditEntry) string { return string(e.Action) })).
		Category("entity_id", listview.Str(func(e AuditEntry) string { return e.EntityID.String() })).
		Date("created_at", listview.Time(func(e AuditEntry) time.Time { return e.CreatedAt })).
		RangeOn("created_at")

	return newView(ViewActivity, schema, listview.Config{
		OrderBy: "created_at",
		Series:  &listview.SeriesConfig{Period: listview.Day, Count: 30},
		GroupBy: []string{"entity_type", "action"},
	}, listview.ScopeFiltered)
}
