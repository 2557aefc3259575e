package simpleshop_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-shop/pkg/listview"
	"github.com/tendant/simple-shop/pkg/simpleshop"
	"github.com/tendant/simple-shop/pkg/simpleshop/repo/memory"
	memorystorage "github.com/tendant/simple-shop/pkg/simpleshop/storage/memory"
	"github.com/tendant/simple-shop/pkg/simpleshop/urlstrategy"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// tickingClock advances one minute per reading so records get distinct
// creation times.
type tickingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *tickingClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Minute)
	return c.t
}

func setupService(t *testing.T, opts ...simpleshop.Option) simpleshop.Service {
	t.Helper()
	clock := &tickingClock{t: testNow}
	options := append([]simpleshop.Option{
		simpleshop.WithRepository(memory.New()),
		simpleshop.WithReportStore(memorystorage.New()),
		simpleshop.WithClock(clock.now),
		simpleshop.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	service, err := simpleshop.New(options...)
	require.NoError(t, err)
	return service
}

func ptr[T any](v T) *T { return &v }

func TestNew_RequiresRepository(t *testing.T) {
	_, err := simpleshop.New()
	assert.Error(t, err)
}

func TestCustomerLifecycle(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)

	customer, err := service.CreateCustomer(ctx, simpleshop.CreateCustomerRequest{
		Name: "  Ada Lovelace ",
		City: "London",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", customer.Name)
	assert.Equal(t, simpleshop.CustomerTypeResidential, customer.Type)
	assert.Equal(t, simpleshop.CustomerStatusActive, customer.Status)

	got, err := service.GetCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.Name, got.Name)

	got.Email = "ada@example.com"
	updated, err := service.UpdateCustomer(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, customer.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(customer.UpdatedAt))

	// Saving the same values records nothing
	_, err = service.UpdateCustomer(ctx, updated)
	require.NoError(t, err)

	require.NoError(t, service.DeleteCustomer(ctx, customer.ID))

	_, err = service.GetCustomer(ctx, customer.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, simpleshop.ErrNotFound)
	var recErr *simpleshop.RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, simpleshop.KindCustomer, recErr.Kind)
	assert.Equal(t, "get", recErr.Op)

	activity, err := service.ListActivity(ctx, listview.FilterState{
		Categories: map[string][]string{"entity_id": {customer.ID.String()}},
	})
	require.NoError(t, err)
	require.Len(t, activity.Items, 3)

	// newest first
	assert.Equal(t, simpleshop.AuditDeleted, activity.Items[0].Action)
	assert.Equal(t, "deleted customer Ada Lovelace", activity.Items[0].Summary)
	assert.Equal(t, simpleshop.AuditUpdated, activity.Items[1].Action)
	require.Len(t, activity.Items[1].Changes, 1)
	assert.Equal(t, "email", activity.Items[1].Changes[0].Field)
	assert.Equal(t, `set email to "ada@example.com"`, activity.Items[1].Summary)
	assert.Equal(t, simpleshop.AuditCreated, activity.Items[2].Action)
}

func TestCreateCustomer_Validation(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)

	tests := []struct {
		name string
		req  simpleshop.CreateCustomerRequest
	}{
		{"missing name", simpleshop.CreateCustomerRequest{Name: "   "}},
		{"unknown type", simpleshop.CreateCustomerRequest{Name: "Ada", Type: "wholesale"}},
		{"latitude without longitude", simpleshop.CreateCustomerRequest{Name: "Ada", Latitude: ptr(51.5)}},
		{"latitude out of range", simpleshop.CreateCustomerRequest{Name: "Ada", Latitude: ptr(91.0), Longitude: ptr(0.0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateCustomer(ctx, tt.req)
			assert.ErrorIs(t, err, simpleshop.ErrInvalidInput)
		})
	}
}

func TestWorkOrders(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)

	customer, err := service.CreateCustomer(ctx, simpleshop.CreateCustomerRequest{Name: "Grace Hopper"})
	require.NoError(t, err)
	tech, err := service.CreateTeamMember(ctx, simpleshop.CreateTeamMemberRequest{
		Name: "Linus", Email: "linus@example.com", Role: simpleshop.RoleTechnician,
	})
	require.NoError(t, err)

	_, err = service.CreateWorkOrder(ctx, simpleshop.CreateWorkOrderRequest{Title: "Fix softener"})
	assert.ErrorIs(t, err, simpleshop.ErrInvalidInput)

	_, err = service.CreateWorkOrder(ctx, simpleshop.CreateWorkOrderRequest{
		CustomerID: customer.ID,
		Title:      "Fix softener",
		AssigneeID: ptr(uuid.New()),
	})
	assert.ErrorIs(t, err, simpleshop.ErrInvalidInput)

	order, err := service.CreateWorkOrder(ctx, simpleshop.CreateWorkOrderRequest{
		CustomerID: customer.ID,
		Title:      "Fix softener",
		AssigneeID: &tech.ID,
		Lines: []simpleshop.LineItem{
			{Description: "Labor", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("45.00")},
			{Description: "Resin", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("19.99")},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, order.Number, "WO-20240615-")
	assert.Equal(t, "Grace Hopper", order.CustomerName)
	assert.Equal(t, "Linus", order.AssigneeName)
	assert.Equal(t, simpleshop.WorkOrderStatusPending, order.Status)
	assert.Equal(t, simpleshop.PriorityNormal, order.Priority)
	assert.Equal(t, "109.99", order.Total().StringFixed(2))

	order.Status = simpleshop.WorkOrderStatusCompleted
	order.Number = ""
	completed, err := service.UpdateWorkOrder(ctx, order)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)
	assert.NotEmpty(t, completed.Number)

	list, err := service.ListWorkOrders(ctx, listview.FilterState{
		Categories: map[string][]string{"status": {"completed"}},
	})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.InDelta(t, 109.99, list.Stats.Sums["total"], 0.001)
}

func TestListCustomers_Filters(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)

	for _, req := range []simpleshop.CreateCustomerRequest{
		{Name: "Ada Lovelace", City: "London"},
		{Name: "Charles Babbage", City: "London", Status: simpleshop.CustomerStatusInactive},
		{Name: "Grace Hopper", City: "Arlington", Type: simpleshop.CustomerTypeCommercial},
	} {
		_, err := service.CreateCustomer(ctx, req)
		require.NoError(t, err)
	}

	all, err := service.ListCustomers(ctx, listview.FilterState{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	require.Len(t, all.Items, 3)
	assert.Equal(t, "Grace Hopper", all.Items[0].Name)
	assert.Equal(t, 3, all.Stats.Count)

	search, err := service.ListCustomers(ctx, listview.FilterState{Search: "LOVE"})
	require.NoError(t, err)
	require.Len(t, search.Items, 1)
	assert.Equal(t, "Ada Lovelace", search.Items[0].Name)
	assert.Equal(t, 3, search.Total)

	london, err := service.ListCustomers(ctx, listview.FilterState{
		Categories: map[string][]string{"city": {"London"}, "status": {"active"}},
	})
	require.NoError(t, err)
	require.Len(t, london.Items, 1)
	assert.Equal(t, "Ada Lovelace", london.Items[0].Name)

	day := testNow.AddDate(0, 0, 1)
	future, err := service.ListCustomers(ctx, listview.FilterState{
		Range: &listview.DateRange{Start: day, End: day},
	})
	require.NoError(t, err)
	assert.Empty(t, future.Items)

	_, err = service.ListCustomers(ctx, listview.FilterState{
		Categories: map[string][]string{"colour": {"red"}},
	})
	assert.ErrorIs(t, err, simpleshop.ErrInvalidFilter)
}

func TestInventory_Restock(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)

	_, err := service.CreateInventoryItem(ctx, simpleshop.CreateInventoryItemRequest{Name: "Valve"})
	assert.ErrorIs(t, err, simpleshop.ErrInvalidInput)

	item, err := service.CreateInventoryItem(ctx, simpleshop.CreateInventoryItemRequest{
		SKU: "VLV-1", Name: "Valve", Quantity: 2, UnitCost: decimal.RequireFromString("7.25"),
	})
	require.NoError(t, err)
	assert.Nil(t, item.LastRestockedAt)

	item.Quantity = 10
	restocked, err := service.UpdateInventoryItem(ctx, item)
	require.NoError(t, err)
	require.NotNil(t, restocked.LastRestockedAt)
	assert.Equal(t, restocked.UpdatedAt, *restocked.LastRestockedAt)

	restocked.Quantity = 4
	used, err := service.UpdateInventoryItem(ctx, restocked)
	require.NoError(t, err)
	assert.Equal(t, *restocked.LastRestockedAt, *used.LastRestockedAt)

	low, err := service.ListInventory(ctx, listview.FilterState{
		Categories: map[string][]string{"stock": {string(simpleshop.StockLow)}},
	})
	require.NoError(t, err)
	assert.Len(t, low.Items, 1)
}

func TestTeamMember_ActivationStampsJoinDate(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)

	_, err := service.CreateTeamMember(ctx, simpleshop.CreateTeamMemberRequest{
		Name: "Kim", Email: "not-an-email", Role: simpleshop.RoleDriver,
	})
	assert.ErrorIs(t, err, simpleshop.ErrInvalidInput)

	member, err := service.CreateTeamMember(ctx, simpleshop.CreateTeamMemberRequest{
		Name: "Kim", Email: "kim@example.com", Role: simpleshop.RoleDriver,
	})
	require.NoError(t, err)
	assert.Equal(t, simpleshop.MemberStatusInvited, member.Status)
	assert.Nil(t, member.JoinedAt)

	member.Status = simpleshop.MemberStatusActive
	active, err := service.UpdateTeamMember(ctx, member)
	require.NoError(t, err)
	assert.NotNil(t, active.JoinedAt)
}

func TestDeliveriesAndPayments(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)

	customer, err := service.CreateCustomer(ctx, simpleshop.CreateCustomerRequest{
		Name: "Ada", Address: "12 High St", City: "London",
	})
	require.NoError(t, err)

	_, err = service.RecordDelivery(ctx, simpleshop.RecordDeliveryRequest{CustomerID: customer.ID})
	assert.ErrorIs(t, err, simpleshop.ErrInvalidInput)

	_, err = service.RecordDelivery(ctx, simpleshop.RecordDeliveryRequest{CustomerID: uuid.New(), ScheduledFor: ptr(testNow)})
	assert.ErrorIs(t, err, simpleshop.ErrInvalidInput)

	delivered, err := service.RecordDelivery(ctx, simpleshop.RecordDeliveryRequest{
		CustomerID:       customer.ID,
		DeliveredAt:      ptr(testNow),
		GallonsDelivered: ptr(15.0),
	})
	require.NoError(t, err)
	assert.Equal(t, simpleshop.DeliveryStatusCompleted, delivered.Status)
	assert.Equal(t, "12 High St, London", delivered.Address)

	_, err = service.RecordPayment(ctx, simpleshop.RecordPaymentRequest{
		CustomerID: customer.ID, Amount: decimal.Zero, Method: simpleshop.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, simpleshop.ErrInvalidInput)

	_, err = service.RecordPayment(ctx, simpleshop.RecordPaymentRequest{
		CustomerID:  customer.ID,
		WorkOrderID: ptr(uuid.New()),
		Amount:      decimal.NewFromInt(20),
		Method:      simpleshop.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, simpleshop.ErrInvalidInput)

	payment, err := service.RecordPayment(ctx, simpleshop.RecordPaymentRequest{
		CustomerID: customer.ID,
		Amount:     decimal.RequireFromString("12.345"),
		Method:     simpleshop.PaymentMethodCard,
	})
	require.NoError(t, err)
	assert.Equal(t, simpleshop.PaymentStatusPaid, payment.Status)
	require.NotNil(t, payment.PaidAt)
	assert.Equal(t, "12.35", payment.Amount.StringFixed(2))
	assert.Equal(t, "Ada", payment.CustomerName)

	payments, err := service.ListPayments(ctx, listview.FilterState{})
	require.NoError(t, err)
	assert.InDelta(t, 12.35, payments.Stats.Sums["amount"], 0.001)

	require.NoError(t, service.DeleteDelivery(ctx, delivered.ID))
	assert.ErrorIs(t, service.DeleteDelivery(ctx, delivered.ID), simpleshop.ErrNotFound)
}

func TestPlanRoutes(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)

	ada, err := service.CreateCustomer(ctx, simpleshop.CreateCustomerRequest{
		Name: "Ada", Latitude: ptr(51.50), Longitude: ptr(-0.12),
	})
	require.NoError(t, err)
	bea, err := service.CreateCustomer(ctx, simpleshop.CreateCustomerRequest{Name: "Bea"})
	require.NoError(t, err)
	cy, err := service.CreateCustomer(ctx, simpleshop.CreateCustomerRequest{Name: "Cy"})
	require.NoError(t, err)

	morning := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	for _, req := range []simpleshop.RecordDeliveryRequest{
		{CustomerID: bea.ID, Route: "north", DriverName: "Kim", Sequence: 2, ScheduledFor: &morning, Latitude: ptr(51.60), Longitude: ptr(-0.20)},
		{CustomerID: ada.ID, Route: "north", Sequence: 1, ScheduledFor: &morning},
		{CustomerID: cy.ID, ScheduledFor: &morning},
		{CustomerID: cy.ID, Route: "north", ScheduledFor: ptr(morning.AddDate(0, 0, 1))},
		{CustomerID: ada.ID, Route: "north", DeliveredAt: &morning},
	} {
		_, err := service.RecordDelivery(ctx, req)
		require.NoError(t, err)
	}

	plan, err := service.PlanRoutes(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", plan.Date)
	assert.Equal(t, 3, plan.Stops)
	require.Len(t, plan.Routes, 2)

	north := plan.Routes[0]
	assert.Equal(t, "north", north.Name)
	assert.Equal(t, "Kim", north.Driver)
	require.Len(t, north.Stops, 2)
	assert.Equal(t, "Ada", north.Stops[0].CustomerName)
	assert.True(t, north.Stops[0].FromCustomer)
	assert.Equal(t, "Bea", north.Stops[1].CustomerName)
	require.NotNil(t, north.Bounds)
	assert.Equal(t, 51.50, north.Bounds.MinLatitude)
	assert.Equal(t, 51.60, north.Bounds.MaxLatitude)
	assert.Equal(t, -0.20, north.Bounds.MinLongitude)

	unassigned := plan.Routes[1]
	assert.Equal(t, simpleshop.UnassignedRoute, unassigned.Name)
	assert.Empty(t, unassigned.Stops)
	require.Len(t, unassigned.Unplaced, 1)
	assert.Equal(t, "Cy", unassigned.Unplaced[0].CustomerName)
	assert.Nil(t, unassigned.Bounds)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)

	for _, req := range []simpleshop.CreateInventoryItemRequest{
		{SKU: "P-1", Name: "Pipe", Quantity: 50},
		{SKU: "V-1", Name: "Valve", Quantity: 2, ReorderLevel: 3},
		{SKU: "F-1", Name: "Filter cartridge", Quantity: 0},
	} {
		_, err := service.CreateInventoryItem(ctx, req)
		require.NoError(t, err)
	}
	_, err := service.CreateCustomer(ctx, simpleshop.CreateCustomerRequest{Name: "Ada"})
	require.NoError(t, err)

	dash, err := service.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.Customers.Count)
	assert.Equal(t, 3, dash.Inventory.Count)
	assert.Equal(t, 52.0, dash.Inventory.Sums["quantity"])
	assert.Equal(t, 0, dash.Payments.Count)
	require.Len(t, dash.LowStock, 2)
	assert.Equal(t, "Filter cartridge", dash.LowStock[0].Name)
	assert.Equal(t, "Valve", dash.LowStock[1].Name)
}

func TestSaveFilter(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)

	active := listview.FilterState{Categories: map[string][]string{"status": {"active"}}}
	first, err := service.SaveFilter(ctx, simpleshop.SaveFilterRequest{
		View: simpleshop.ViewCustomers, Name: "Active", Filter: active, IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	_, err = service.SaveFilter(ctx, simpleshop.SaveFilterRequest{View: simpleshop.ViewCustomers, Name: "active "})
	assert.ErrorIs(t, err, simpleshop.ErrDuplicateName)

	// the same name in another view is fine
	_, err = service.SaveFilter(ctx, simpleshop.SaveFilterRequest{View: simpleshop.ViewTeam, Name: "Active"})
	require.NoError(t, err)

	_, err = service.SaveFilter(ctx, simpleshop.SaveFilterRequest{
		View: simpleshop.ViewCustomers, Name: "Bad", Filter: listview.FilterState{Categories: map[string][]string{"colour": {"red"}}},
	})
	assert.ErrorIs(t, err, simpleshop.ErrInvalidFilter)

	_, err = service.SaveFilter(ctx, simpleshop.SaveFilterRequest{View: "widgets", Name: "Any"})
	assert.ErrorIs(t, err, simpleshop.ErrUnknownView)

	_, err = service.SaveFilter(ctx, simpleshop.SaveFilterRequest{View: simpleshop.ViewCustomers, Name: " "})
	assert.ErrorIs(t, err, simpleshop.ErrInvalidInput)

	second, err := service.SaveFilter(ctx, simpleshop.SaveFilterRequest{
		View: simpleshop.ViewCustomers, Name: "Commercial", IsDefault: true,
		Filter: listview.FilterState{Categories: map[string][]string{"type": {"commercial"}}},
	})
	require.NoError(t, err)

	filters, err := service.ListSavedFilters(ctx, simpleshop.ViewCustomers)
	require.NoError(t, err)
	require.Len(t, filters, 2)
	assert.Equal(t, second.ID, filters[0].ID)
	assert.True(t, filters[0].IsDefault)
	assert.Equal(t, first.ID, filters[1].ID)
	assert.False(t, filters[1].IsDefault)

	// the stored filter is a copy
	active.Categories["status"][0] = "inactive"
	got, err := service.GetSavedFilter(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"active"}, got.Filter.Selected("status"))

	require.NoError(t, service.DeleteSavedFilter(ctx, first.ID))
	_, err = service.GetSavedFilter(ctx, first.ID)
	assert.ErrorIs(t, err, simpleshop.ErrNotFound)
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)

	for _, name := range []string{"Ada Lovelace", "Grace Hopper"} {
		_, err := service.CreateCustomer(ctx, simpleshop.CreateCustomerRequest{Name: name})
		require.NoError(t, err)
	}

	result, err := service.Export(ctx, simpleshop.ExportRequest{
		View:   simpleshop.ViewCustomers,
		Filter: listview.FilterState{Search: "grace"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Rows)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Contains(t, result.Key, "customers")
	assert.Positive(t, result.Size)
	assert.Equal(t, "/api/v1/exports/"+result.Key, result.URL)

	reader, err := service.OpenExport(ctx, result.Key)
	require.NoError(t, err)
	defer reader.Close()
	var buf bytes.Buffer
	_, err = io.Copy(&buf, reader)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "name,email")
	assert.Contains(t, buf.String(), "Grace Hopper")
	assert.NotContains(t, buf.String(), "Ada Lovelace")

	xlsx, err := service.Export(ctx, simpleshop.ExportRequest{View: simpleshop.ViewCustomers, Format: simpleshop.FormatXLSX})
	require.NoError(t, err)
	assert.Equal(t, 2, xlsx.Rows)
	assert.NotEqual(t, result.Key, xlsx.Key)

	_, err = service.Export(ctx, simpleshop.ExportRequest{View: simpleshop.ViewCustomers, Format: "pdf"})
	assert.ErrorIs(t, err, simpleshop.ErrUnsupportedFormat)

	_, err = service.Export(ctx, simpleshop.ExportRequest{View: "widgets"})
	assert.ErrorIs(t, err, simpleshop.ErrUnknownView)
}

func TestExport_URLStrategy(t *testing.T) {
	service := setupService(t, simpleshop.WithURLStrategy(urlstrategy.NewCDNStrategy("https://cdn.example.com/")))

	result, err := service.Export(context.Background(), simpleshop.ExportRequest{View: simpleshop.ViewCustomers})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+result.Key, result.URL)
}

func TestExport_NoReportStore(t *testing.T) {
	service := setupService(t, simpleshop.WithReportStore(nil))

	_, err := service.Export(context.Background(), simpleshop.ExportRequest{View: simpleshop.ViewCustomers})
	assert.ErrorIs(t, err, simpleshop.ErrNoReportStore)
}

type failingActivityRepository struct {
	simpleshop.Repository
}

func (r failingActivityRepository) Activity() simpleshop.Store[simpleshop.AuditEntry] {
	return failingAuditStore{Store: r.Repository.Activity()}
}

type failingAuditStore struct {
	simpleshop.Store[simpleshop.AuditEntry]
}

func (failingAuditStore) Create(context.Context, *simpleshop.AuditEntry) error {
	return errors.New("activity store offline")
}

func TestAuditFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	service := setupService(t,
		simpleshop.WithRepository(failingActivityRepository{Repository: memory.New()}),
		simpleshop.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)

	customer, err := service.CreateCustomer(ctx, simpleshop.CreateCustomerRequest{Name: "Ada Lovelace"})
	require.NoError(t, err)

	customer.Email = "ada@example.com"
	updated, err := service.UpdateCustomer(ctx, customer)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", updated.Email)

	stored, err := service.GetCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", stored.Email)

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "failed to record activity")
	assert.Contains(t, logs.String(), "activity store offline")

	activity, err := service.ListActivity(ctx, listview.FilterState{})
	require.NoError(t, err)
	assert.Empty(t, activity.Items)
}

func TestListDeliveries_GapDaysInShopZone(t *testing.T) {
	ctx := context.Background()
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	settings := simpleshop.DefaultSettings()
	settings.Location = ny
	service := setupService(t, simpleshop.WithSettings(settings))

	customer, err := service.CreateCustomer(ctx, simpleshop.CreateCustomerRequest{Name: "Ada"})
	require.NoError(t, err)
	for _, at := range []time.Time{
		time.Date(2024, 1, 11, 1, 0, 0, 0, time.UTC),  // Jan 10 evening in New York
		time.Date(2024, 1, 20, 13, 0, 0, 0, time.UTC), // Jan 20 morning in New York
	} {
		_, err := service.RecordDelivery(ctx, simpleshop.RecordDeliveryRequest{
			CustomerID:  customer.ID,
			DeliveredAt: ptr(at),
		})
		require.NoError(t, err)
	}

	result, err := service.ListDeliveries(ctx, listview.FilterState{})
	require.NoError(t, err)
	assert.Equal(t, 10.0, result.Stats.AverageGapDays)
}
