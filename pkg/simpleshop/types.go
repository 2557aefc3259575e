package simpleshop

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tendant/simple-shop/pkg/listview"
)

// CustomerType distinguishes household and business accounts.
type CustomerType string

const (
	CustomerTypeResidential CustomerType = "residential"
	CustomerTypeCommercial  CustomerType = "commercial"
)

// CustomerStatus is the lifecycle state of a customer account.
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// WorkOrderStatus is the lifecycle state of a work order.
type WorkOrderStatus string

const (
	WorkOrderStatusPending    WorkOrderStatus = "pending"
	WorkOrderStatusInProgress WorkOrderStatus = "in_progress"
	WorkOrderStatusCompleted  WorkOrderStatus = "completed"
	WorkOrderStatusCancelled  WorkOrderStatus = "cancelled"
)

// Priority orders work orders for scheduling.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// StockStatus is derived from an inventory item's quantity.
type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockLow        StockStatus = "low_stock"
	StockOutOfStock StockStatus = "out_of_stock"
)

// Role is a team member's function in the shop.
type Role string

const (
	RoleOwner      Role = "owner"
	RoleManager    Role = "manager"
	RoleTechnician Role = "technician"
	RoleDriver     Role = "driver"
)

// MemberStatus is the account state of a team member.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInvited  MemberStatus = "invited"
	MemberStatusDisabled MemberStatus = "disabled"
)

// DeliveryStatus is the state of a water delivery stop.
type DeliveryStatus string

const (
	DeliveryStatusScheduled DeliveryStatus = "scheduled"
	DeliveryStatusCompleted DeliveryStatus = "completed"
	DeliveryStatusSkipped   DeliveryStatus = "skipped"
)

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodCheck    PaymentMethod = "check"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// AuditAction is the kind of change an audit entry records.
type AuditAction string

const (
	AuditCreated AuditAction = "created"
	AuditUpdated AuditAction = "updated"
	AuditDeleted AuditAction = "deleted"
)

// Entity kinds, used in audit entries and errors.
const (
	KindCustomer    = "customer"
	KindWorkOrder   = "work_order"
	KindInventory   = "inventory_item"
	KindTeamMember  = "team_member"
	KindDelivery    = "delivery"
	KindPayment     = "payment"
	KindSavedFilter = "saved_filter"
)

// Customer is a shop customer account.
type Customer struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	Address   string         `json:"address,omitempty"`
	City      string         `json:"city,omitempty"`
	Type      CustomerType   `json:"type"`
	Status    CustomerStatus `json:"status"`
	Notes     string         `json:"notes,omitempty"`
	Latitude  *float64       `json:"latitude,omitempty"`
	Longitude *float64       `json:"longitude,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// LineItem is one billable line of a work order.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Amount is Quantity times UnitPrice.
func (l LineItem) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// WorkOrder is a job performed for a customer.
type WorkOrder struct {
	ID             uuid.UUID       `json:"id"`
	Number         string          `json:"number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Status         WorkOrderStatus `json:"status"`
	Priority       Priority        `json:"priority"`
	AssigneeID     *uuid.UUID      `json:"assignee_id,omitempty"`
	AssigneeName   string          `json:"assignee_name,omitempty"`
	ScheduledFor   *time.Time      `json:"scheduled_for,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	EstimatedHours *float64        `json:"estimated_hours,omitempty"`
	Lines          []LineItem      `json:"lines,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Total sums the line amounts, rounded to cents.
func (w WorkOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range w.Lines {
		total = total.Add(l.Amount())
	}
	return total.Round(2)
}

// InventoryItem is a stocked part or piece of equipment.
type InventoryItem struct {
	ID              uuid.UUID       `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Category        string          `json:"category,omitempty"`
	Supplier        string          `json:"supplier,omitempty"`
	Location        string          `json:"location,omitempty"`
	Quantity        int             `json:"quantity"`
	ReorderLevel    int             `json:"reorder_level"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	LastRestockedAt *time.Time      `json:"last_restocked_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// StockStatus classifies the item's quantity. Items without their own reorder
// level use defaultThreshold.
func (i InventoryItem) StockStatus(defaultThreshold int) StockStatus {
	threshold := i.ReorderLevel
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	switch {
	case i.Quantity <= 0:
		return StockOutOfStock
	case i.Quantity <= threshold:
		return StockLow
	default:
		return StockInStock
	}
}

// Value is the stock value at unit cost.
func (i InventoryItem) Value() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}

// TeamMember is a person working for the shop.
type TeamMember struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone,omitempty"`
	Role      Role         `json:"role"`
	Status    MemberStatus `json:"status"`
	JoinedAt  *time.Time   `json:"joined_at,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Delivery is one water delivery stop.
type Delivery struct {
	ID               uuid.UUID      `json:"id"`
	CustomerID       uuid.UUID      `json:"customer_id"`
	CustomerName     string         `json:"customer_name"`
	Address          string         `json:"address,omitempty"`
	Route            string         `json:"route,omitempty"`
	DriverName       string         `json:"driver_name,omitempty"`
	Status           DeliveryStatus `json:"status"`
	ScheduledFor     *time.Time     `json:"scheduled_for,omitempty"`
	DeliveredAt      *time.Time     `json:"delivered_at,omitempty"`
	GallonsDelivered *float64       `json:"gallons_delivered,omitempty"`
	BottlesReturned  *int           `json:"bottles_returned,omitempty"`
	Sequence         int            `json:"sequence"`
	Latitude         *float64       `json:"latitude,omitempty"`
	Longitude        *float64       `json:"longitude,omitempty"`
	Notes            string         `json:"notes,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

// Payment is money received from a customer.
type Payment struct {
	ID           uuid.UUID       `json:"id"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	WorkOrderID  *uuid.UUID      `json:"work_order_id,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Method       PaymentMethod   `json:"method"`
	Status       PaymentStatus   `json:"status"`
	Reference    string          `json:"reference,omitempty"`
	PaidAt       *time.Time      `json:"paid_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SavedFilter is a named filter state for one view.
type SavedFilter struct {
	ID        uuid.UUID            `json:"id"`
	View      ViewName             `json:"view"`
	Name      string               `json:"name"`
	Filter    listview.FilterState `json:"filter"`
	IsDefault bool                 `json:"is_default"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// Change is one field-level difference between two versions of a record.
type Change struct {
	Field       string `json:"field"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Description string `json:"description"`
}

// AuditEntry records a change to an entity.
type AuditEntry struct {
	ID         uuid.UUID   `json:"id"`
	EntityType string      `json:"entity_type"`
	EntityID   uuid.UUID   `json:"entity_id"`
	Action     AuditAction `json:"action"`
	Changes    []Change    `json:"changes,omitempty"`
	Summary    string      `json:"summary"`
	CreatedAt  time.Time   `json:"created_at"`
}
