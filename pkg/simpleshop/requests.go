package simpleshop

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tendant/simple-shop/pkg/listview"
)

// CreateCustomerRequest contains parameters for creating a customer
type CreateCustomerRequest struct {
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Address   string         `json:"address"`
	City      string         `json:"city"`
	Type      CustomerType   `json:"type"`
	Status    CustomerStatus `json:"status"`
	Notes     string         `json:"notes"`
	Latitude  *float64       `json:"latitude"`
	Longitude *float64       `json:"longitude"`
}

// CreateWorkOrderRequest contains parameters for creating a work order
type CreateWorkOrderRequest struct {
	Number         string     `json:"number"`
	CustomerID     uuid.UUID  `json:"customer_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Priority       Priority   `json:"priority"`
	AssigneeID     *uuid.UUID `json:"assignee_id"`
	ScheduledFor   *time.Time `json:"scheduled_for"`
	EstimatedHours *float64   `json:"estimated_hours"`
	Lines          []LineItem `json:"lines"`
}

// CreateInventoryItemRequest contains parameters for stocking a new item
type CreateInventoryItemRequest struct {
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Supplier        string          `json:"supplier"`
	Location        string          `json:"location"`
	Quantity        int             `json:"quantity"`
	ReorderLevel    int             `json:"reorder_level"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	LastRestockedAt *time.Time      `json:"last_restocked_at"`
}

// CreateTeamMemberRequest contains parameters for adding a team member
type CreateTeamMemberRequest struct {
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Phone    string       `json:"phone"`
	Role     Role         `json:"role"`
	Status   MemberStatus `json:"status"`
	JoinedAt *time.Time   `json:"joined_at"`
}

// RecordDeliveryRequest contains parameters for scheduling or logging a delivery
type RecordDeliveryRequest struct {
	CustomerID       uuid.UUID      `json:"customer_id"`
	Route            string         `json:"route"`
	DriverName       string         `json:"driver_name"`
	Status           DeliveryStatus `json:"status"`
	ScheduledFor     *time.Time     `json:"scheduled_for"`
	DeliveredAt      *time.Time     `json:"delivered_at"`
	GallonsDelivered *float64       `json:"gallons_delivered"`
	BottlesReturned  *int           `json:"bottles_returned"`
	Sequence         int            `json:"sequence"`
	Latitude         *float64       `json:"latitude"`
	Longitude        *float64       `json:"longitude"`
	Notes            string         `json:"notes"`
}

// RecordPaymentRequest contains parameters for recording a payment
type RecordPaymentRequest struct {
	CustomerID  uuid.UUID       `json:"customer_id"`
	WorkOrderID *uuid.UUID      `json:"work_order_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	Status      PaymentStatus   `json:"status"`
	Reference   string          `json:"reference"`
	PaidAt      *time.Time      `json:"paid_at"`
}

// SaveFilterRequest contains parameters for saving a named filter
type SaveFilterRequest struct {
	View      ViewName             `json:"view"`
	Name      string               `json:"name"`
	Filter    listview.FilterState `json:"filter"`
	IsDefault bool                 `json:"is_default"`
}

// ExportFormat is the file format of an export.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ExportRequest contains parameters for exporting a list view
type ExportRequest struct {
	View   ViewName             `json:"view"`
	Format ExportFormat         `json:"format"`
	Filter listview.FilterState `json:"filter"`
	// Snapshot marks scheduled exports, which are stored apart from
	// on-demand ones.
	Snapshot bool `json:"snapshot,omitempty"`
}

// ExportResult describes a stored export file
type ExportResult struct {
	Key         string    `json:"key"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Rows        int       `json:"rows"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListResult is the visible subset of a view together with the filter that
// produced it and its statistics.
type ListResult[T any] struct {
	Items  []T                  `json:"items"`
	Total  int                  `json:"total"`
	Filter listview.FilterState `json:"filter"`
	Stats  listview.Result      `json:"stats"`
}
