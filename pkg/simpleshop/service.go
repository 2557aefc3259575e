package simpleshop

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-shop/pkg/listview"
)

// Service defines the operations of the shop
type Service interface {
	// Customer operations
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	UpdateCustomer(ctx context.Context, customer *Customer) (*Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	ListCustomers(ctx context.Context, filter listview.FilterState) (*ListResult[Customer], error)

	// Work order operations
	CreateWorkOrder(ctx context.Context, req CreateWorkOrderRequest) (*WorkOrder, error)
	GetWorkOrder(ctx context.Context, id uuid.UUID) (*WorkOrder, error)
	UpdateWorkOrder(ctx context.Context, order *WorkOrder) (*WorkOrder, error)
	DeleteWorkOrder(ctx context.Context, id uuid.UUID) error
	ListWorkOrders(ctx context.Context, filter listview.FilterState) (*ListResult[WorkOrder], error)

	// Inventory operations
	CreateInventoryItem(ctx context.Context, req CreateInventoryItemRequest) (*InventoryItem, error)
	GetInventoryItem(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, item *InventoryItem) (*InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id uuid.UUID) error
	ListInventory(ctx context.Context, filter listview.FilterState) (*ListResult[InventoryItem], error)

	// Team operations
	CreateTeamMember(ctx context.Context, req CreateTeamMemberRequest) (*TeamMember, error)
	GetTeamMember(ctx context.Context, id uuid.UUID) (*TeamMember, error)
	UpdateTeamMember(ctx context.Context, member *TeamMember) (*TeamMember, error)
	DeleteTeamMember(ctx context.Context, id uuid.UUID) error
	ListTeam(ctx context.Context, filter listview.FilterState) (*ListResult[TeamMember], error)

	// Delivery operations
	RecordDelivery(ctx context.Context, req RecordDeliveryRequest) (*Delivery, error)
	GetDelivery(ctx context.Context, id uuid.UUID) (*Delivery, error)
	DeleteDelivery(ctx context.Context, id uuid.UUID) error
	ListDeliveries(ctx context.Context, filter listview.FilterState) (*ListResult[Delivery], error)
	PlanRoutes(ctx context.Context, day time.Time) (*RoutePlan, error)

	// Billing operations
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (*Payment, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error)
	ListPayments(ctx context.Context, filter listview.FilterState) (*ListResult[Payment], error)

	// Activity log
	ListActivity(ctx context.Context, filter listview.FilterState) (*ListResult[AuditEntry], error)

	// Dashboard
	Dashboard(ctx context.Context) (*Dashboard, error)

	// Saved filter operations
	SaveFilter(ctx context.Context, req SaveFilterRequest) (*SavedFilter, error)
	GetSavedFilter(ctx context.Context, id uuid.UUID) (*SavedFilter, error)
	ListSavedFilters(ctx context.Context, view ViewName) ([]SavedFilter, error)
	DeleteSavedFilter(ctx context.Context, id uuid.UUID) error

	// Export operations
	Export(ctx context.Context, req ExportRequest) (*ExportResult, error)
	OpenExport(ctx context.Context, key string) (io.ReadCloser, error)

	// Settings returns the shop settings the service was built with
	Settings() Settings
}
