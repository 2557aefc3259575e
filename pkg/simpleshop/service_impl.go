package simpleshop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-shop/pkg/listview"
	"github.com/tendant/simple-shop/pkg/simpleshop/export"
	"github.com/tendant/simple-shop/pkg/simpleshop/urlstrategy"
)

// service implements the Service interface
type service struct {
	repository  Repository
	reportStore ReportStore
	settings    Settings
	clock       func() time.Time
	logger      *slog.Logger
	keys        export.Generator
	urls        urlstrategy.URLStrategy
	views       *views
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithReportStore sets where exports are written
func WithReportStore(store ReportStore) Option {
	return func(s *service) {
		s.reportStore = store
	}
}

// WithSettings sets the shop settings
func WithSettings(settings Settings) Option {
	return func(s *service) {
		s.settings = settings
	}
}

// WithClock sets the time source
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.clock = now
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// WithKeyGenerator sets how export keys are named
func WithKeyGenerator(keys export.Generator) Option {
	return func(s *service) {
		s.keys = keys
	}
}

// WithURLStrategy sets how export download links are built
func WithURLStrategy(urls urlstrategy.URLStrategy) Option {
	return func(s *service) {
		s.urls = urls
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		settings: DefaultSettings(),
		clock:    time.Now,
		logger:   slog.Default(),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.keys == nil {
		s.keys = export.NewRecommendedGenerator()
	}
	if s.urls == nil && s.reportStore != nil {
		urls, err := urlstrategy.NewURLStrategy(urlstrategy.Config{Store: s.reportStore})
		if err != nil {
			return nil, err
		}
		s.urls = urls
	}

	v, err := newViews(s.settings)
	if err != nil {
		return nil, err
	}
	s.views = v

	return s, nil
}

func (s *service) Settings() Settings {
	return s.settings
}

// now is the current time in UTC, used for stored timestamps.
func (s *service) now() time.Time {
	return s.clock().UTC()
}

// localNow is the current time in the shop time zone, used to anchor
// calendar windows.
func (s *service) localNow() time.Time {
	return s.clock().In(s.settings.Zone())
}

func getRecord[T any](ctx context.Context, store Store[T], kind string, id uuid.UUID) (*T, error) {
	record, err := store.Get(ctx, id)
	if err != nil {
		return nil, &RecordError{Kind: kind, ID: id, Op: "get", Err: err}
	}
	return record, nil
}

func listView[T any](ctx context.Context, s *service, view *View[T], store Store[T], filter listview.FilterState) (*ListResult[T], error) {
	records, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", view.Name, err)
	}
	return runView(view, records, filter, s.localNow)
}

func runView[T any](view *View[T], records []T, filter listview.FilterState, now func() time.Time) (*ListResult[T], error) {
	ctrl := view.Controller(now)
	if err := ctrl.ApplyState(filter); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	ctrl.SetRecords(records)
	return &ListResult[T]{
		Items:  ctrl.Visible(),
		Total:  len(records),
		Filter: ctrl.State(),
		Stats:  ctrl.Stats(),
	}, nil
}

// Customer operations

func (s *service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	now := s.now()
	customer := &Customer{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
		Type:      req.Type,
		Status:    req.Status,
		Notes:     req.Notes,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if customer.Type == "" {
		customer.Type = CustomerTypeResidential
	}
	if customer.Status == "" {
		customer.Status = CustomerStatusActive
	}
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	if err := s.repository.Customers().Create(ctx, customer); err != nil {
		return nil, &RecordError{Kind: KindCustomer, ID: customer.ID, Op: "create", Err: err}
	}
	s.recordCreate(ctx, KindCustomer, customer.ID, customer.Name)
	return customer, nil
}

func (s *service) GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return getRecord(ctx, s.repository.Customers(), KindCustomer, id)
}

func (s *service) UpdateCustomer(ctx context.Context, customer *Customer) (*Customer, error) {
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	before, err := s.GetCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	updated := *customer
	updated.CreatedAt = before.CreatedAt
	updated.UpdatedAt = s.now()
	if err := s.repository.Customers().Update(ctx, &updated); err != nil {
		return nil, &RecordError{Kind: KindCustomer, ID: updated.ID, Op: "update", Err: err}
	}
	s.recordUpdate(ctx, KindCustomer, updated.ID, customerFields(*before), customerFields(updated))
	return &updated, nil
}

func (s *service) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repository.Customers().Delete(ctx, id); err != nil {
		return &RecordError{Kind: KindCustomer, ID: id, Op: "delete", Err: err}
	}
	s.recordDelete(ctx, KindCustomer, id, customer.Name)
	return nil
}

func (s *service) ListCustomers(ctx context.Context, filter listview.FilterState) (*ListResult[Customer], error) {
	return listView(ctx, s, s.views.customers, s.repository.Customers(), filter)
}

func validateCustomer(c *Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return required("name")
	}
	switch c.Type {
	case CustomerTypeResidential, CustomerTypeCommercial:
	default:
		return invalid("type", fmt.Sprintf("%q is not a customer type", c.Type))
	}
	switch c.Status {
	case CustomerStatusActive, CustomerStatusInactive:
	default:
		return invalid("status", fmt.Sprintf("%q is not a customer status", c.Status))
	}
	return validateCoordinates(c.Latitude, c.Longitude)
}

func validateCoordinates(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return invalid("latitude", "and longitude must be set together")
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		return invalid("latitude", "must be between -90 and 90")
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		return invalid("longitude", "must be between -180 and 180")
	}
	return nil
}

// Work order operations

func (s *service) CreateWorkOrder(ctx context.Context, req CreateWorkOrderRequest) (*WorkOrder, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, required("title")
	}
	customer, err := s.lookupCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := &WorkOrder{
		ID:             uuid.New(),
		Number:         req.Number,
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Status:         WorkOrderStatusPending,
		Priority:       req.Priority,
		AssigneeID:     req.AssigneeID,
		ScheduledFor:   req.ScheduledFor,
		EstimatedHours: req.EstimatedHours,
		Lines:          req.Lines,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if order.Number == "" {
		order.Number = workOrderNumber(now, order.ID)
	}
	if order.Priority == "" {
		order.Priority = PriorityNormal
	}
	if err := s.resolveAssignee(ctx, order); err != nil {
		return nil, err
	}
	if err := validateWorkOrder(order); err != nil {
		return nil, err
	}

	if err := s.repository.WorkOrders().Create(ctx, order); err != nil {
		return nil, &RecordError{Kind: KindWorkOrder, ID: order.ID, Op: "create", Err: err}
	}
	s.recordCreate(ctx, KindWorkOrder, order.ID, order.Number)
	return order, nil
}

func (s *service) GetWorkOrder(ctx context.Context, id uuid.UUID) (*WorkOrder, error) {
	return getRecord(ctx, s.repository.WorkOrders(), KindWorkOrder, id)
}

// UpdateWorkOrder stamps CompletedAt when an order first moves to completed
// and refreshes the denormalized customer and assignee names.
func (s *service) UpdateWorkOrder(ctx context.Context, order *WorkOrder) (*WorkOrder, error) {
	before, err := s.GetWorkOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	updated := *order
	updated.CreatedAt = before.CreatedAt
	updated.UpdatedAt = s.now()
	if updated.Number == "" {
		updated.Number = before.Number
	}
	if updated.CustomerID != before.CustomerID {
		customer, err := s.lookupCustomer(ctx, updated.CustomerID)
		if err != nil {
			return nil, err
		}
		updated.CustomerName = customer.Name
	} else {
		updated.CustomerName = before.CustomerName
	}
	if err := s.resolveAssignee(ctx, &updated); err != nil {
		return nil, err
	}
	if updated.Status == WorkOrderStatusCompleted && updated.CompletedAt == nil {
		completed := updated.UpdatedAt
		updated.CompletedAt = &completed
	}
	if err := validateWorkOrder(&updated); err != nil {
		return nil, err
	}

	if err := s.repository.WorkOrders().Update(ctx, &updated); err != nil {
		return nil, &RecordError{Kind: KindWorkOrder, ID: updated.ID, Op: "update", Err: err}
	}
	s.recordUpdate(ctx, KindWorkOrder, updated.ID, workOrderFields(*before), workOrderFields(updated))
	return &updated, nil
}

func (s *service) DeleteWorkOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.GetWorkOrder(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repository.WorkOrders().Delete(ctx, id); err != nil {
		return &RecordError{Kind: KindWorkOrder, ID: id, Op: "delete", Err: err}
	}
	s.recordDelete(ctx, KindWorkOrder, id, order.Number)
	return nil
}

func (s *service) ListWorkOrders(ctx context.Context, filter listview.FilterState) (*ListResult[WorkOrder], error) {
	return listView(ctx, s, s.views.workOrders, s.repository.WorkOrders(), filter)
}

func (s *service) resolveAssignee(ctx context.Context, order *WorkOrder) error {
	if order.AssigneeID == nil {
		order.AssigneeName = ""
		return nil
	}
	member, err := s.repository.Team().Get(ctx, *order.AssigneeID)
	if errors.Is(err, ErrNotFound) {
		return invalid("assignee_id", "does not refer to a team member")
	}
	if err != nil {
		return &RecordError{Kind: KindTeamMember, ID: *order.AssigneeID, Op: "get", Err: err}
	}
	order.AssigneeName = member.Name
	return nil
}

func validateWorkOrder(w *WorkOrder) error {
	if strings.TrimSpace(w.Title) == "" {
		return required("title")
	}
	switch w.Status {
	case WorkOrderStatusPending, WorkOrderStatusInProgress, WorkOrderStatusCompleted, WorkOrderStatusCancelled:
	default:
		return invalid("status", fmt.Sprintf("%q is not a work order status", w.Status))
	}
	switch w.Priority {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
	default:
		return invalid("priority", fmt.Sprintf("%q is not a priority", w.Priority))
	}
	if w.EstimatedHours != nil && *w.EstimatedHours < 0 {
		return invalid("estimated_hours", "must not be negative")
	}
	for i, l := range w.Lines {
		if l.Quantity.IsNegative() || l.UnitPrice.IsNegative() {
			return invalid(fmt.Sprintf("lines[%d]", i), "must not be negative")
		}
	}
	return nil
}

func workOrderNumber(at time.Time, id uuid.UUID) string {
	return fmt.Sprintf("WO-%s-%s", at.Format("20060102"), strings.ToUpper(id.String()[:4]))
}

// Inventory operations

func (s *service) CreateInventoryItem(ctx context.Context, req CreateInventoryItemRequest) (*InventoryItem, error) {
	now := s.now()
	item := &InventoryItem{
		ID:              uuid.New(),
		SKU:             strings.TrimSpace(req.SKU),
		Name:            strings.TrimSpace(req.Name),
		Category:        req.Category,
		Supplier:        req.Supplier,
		Location:        req.Location,
		Quantity:        req.Quantity,
		ReorderLevel:    req.ReorderLevel,
		UnitCost:        req.UnitCost,
		LastRestockedAt: req.LastRestockedAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := validateInventoryItem(item); err != nil {
		return nil, err
	}

	if err := s.repository.Inventory().Create(ctx, item); err != nil {
		return nil, &RecordError{Kind: KindInventory, ID: item.ID, Op: "create", Err: err}
	}
	s.recordCreate(ctx, KindInventory, item.ID, item.Name)
	return item, nil
}

func (s *service) GetInventoryItem(ctx context.Context, id uuid.UUID) (*InventoryItem, error) {
	return getRecord(ctx, s.repository.Inventory(), KindInventory, id)
}

// UpdateInventoryItem stamps LastRestockedAt when the quantity goes up
// without an explicit restock time.
func (s *service) UpdateInventoryItem(ctx context.Context, item *InventoryItem) (*InventoryItem, error) {
	if err := validateInventoryItem(item); err != nil {
		return nil, err
	}
	before, err := s.GetInventoryItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	updated := *item
	updated.CreatedAt = before.CreatedAt
	updated.UpdatedAt = s.now()
	if updated.Quantity > before.Quantity && timesEqual(updated.LastRestockedAt, before.LastRestockedAt) {
		restocked := updated.UpdatedAt
		updated.LastRestockedAt = &restocked
	}
	if err := s.repository.Inventory().Update(ctx, &updated); err != nil {
		return nil, &RecordError{Kind: KindInventory, ID: updated.ID, Op: "update", Err: err}
	}
	s.recordUpdate(ctx, KindInventory, updated.ID, inventoryFields(*before), inventoryFields(updated))
	return &updated, nil
}

func (s *service) DeleteInventoryItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.GetInventoryItem(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repository.Inventory().Delete(ctx, id); err != nil {
		return &RecordError{Kind: KindInventory, ID: id, Op: "delete", Err: err}
	}
	s.recordDelete(ctx, KindInventory, id, item.Name)
	return nil
}

func (s *service) ListInventory(ctx context.Context, filter listview.FilterState) (*ListResult[InventoryItem], error) {
	return listView(ctx, s, s.views.inventory, s.repository.Inventory(), filter)
}

func validateInventoryItem(i *InventoryItem) error {
	if i.Name == "" {
		return required("name")
	}
	if i.SKU == "" {
		return required("sku")
	}
	if i.Quantity < 0 {
		return invalid("quantity", "must not be negative")
	}
	if i.ReorderLevel < 0 {
		return invalid("reorder_level", "must not be negative")
	}
	if i.UnitCost.IsNegative() {
		return invalid("unit_cost", "must not be negative")
	}
	return nil
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Team operations

func (s *service) CreateTeamMember(ctx context.Context, req CreateTeamMemberRequest) (*TeamMember, error) {
	now := s.now()
	member := &TeamMember{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     req.Phone,
		Role:      req.Role,
		Status:    req.Status,
		JoinedAt:  req.JoinedAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if member.Status == "" {
		member.Status = MemberStatusInvited
	}
	if err := validateTeamMember(member); err != nil {
		return nil, err
	}

	if err := s.repository.Team().Create(ctx, member); err != nil {
		return nil, &RecordError{Kind: KindTeamMember, ID: member.ID, Op: "create", Err: err}
	}
	s.recordCreate(ctx, KindTeamMember, member.ID, member.Name)
	return member, nil
}

func (s *service) GetTeamMember(ctx context.Context, id uuid.UUID) (*TeamMember, error) {
	return getRecord(ctx, s.repository.Team(), KindTeamMember, id)
}

func (s *service) UpdateTeamMember(ctx context.Context, member *TeamMember) (*TeamMember, error) {
	if err := validateTeamMember(member); err != nil {
		return nil, err
	}
	before, err := s.GetTeamMember(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	updated := *member
	updated.CreatedAt = before.CreatedAt
	updated.UpdatedAt = s.now()
	if updated.Status == MemberStatusActive && updated.JoinedAt == nil {
		joined := updated.UpdatedAt
		updated.JoinedAt = &joined
	}
	if err := s.repository.Team().Update(ctx, &updated); err != nil {
		return nil, &RecordError{Kind: KindTeamMember, ID: updated.ID, Op: "update", Err: err}
	}
	s.recordUpdate(ctx, KindTeamMember, updated.ID, teamMemberFields(*before), teamMemberFields(updated))
	return &updated, nil
}

func (s *service) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	member, err := s.GetTeamMember(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repository.Team().Delete(ctx, id); err != nil {
		return &RecordError{Kind: KindTeamMember, ID: id, Op: "delete", Err: err}
	}
	s.recordDelete(ctx, KindTeamMember, id, member.Name)
	return nil
}

func (s *service) ListTeam(ctx context.Context, filter listview.FilterState) (*ListResult[TeamMember], error) {
	return listView(ctx, s, s.views.team, s.repository.Team(), filter)
}

func validateTeamMember(m *TeamMember) error {
	if m.Name == "" {
		return required("name")
	}
	if m.Email == "" {
		return required("email")
	}
	if !strings.Contains(m.Email, "@") {
		return invalid("email", "is not an email address")
	}
	switch m.Role {
	case RoleOwner, RoleManager, RoleTechnician, RoleDriver:
	default:
		return invalid("role", fmt.Sprintf("%q is not a role", m.Role))
	}
	switch m.Status {
	case MemberStatusActive, MemberStatusInvited, MemberStatusDisabled:
	default:
		return invalid("status", fmt.Sprintf("%q is not a member status", m.Status))
	}
	return nil
}

// Delivery operations

func (s *service) RecordDelivery(ctx context.Context, req RecordDeliveryRequest) (*Delivery, error) {
	customer, err := s.lookupCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	delivery := &Delivery{
		ID:               uuid.New(),
		CustomerID:       customer.ID,
		CustomerName:     customer.Name,
		Address:          joinAddress(customer.Address, customer.City),
		Route:            req.Route,
		DriverName:       req.DriverName,
		Status:           req.Status,
		ScheduledFor:     req.ScheduledFor,
		DeliveredAt:      req.DeliveredAt,
		GallonsDelivered: req.GallonsDelivered,
		BottlesReturned:  req.BottlesReturned,
		Sequence:         req.Sequence,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Notes:            req.Notes,
		CreatedAt:        s.now(),
	}
	if delivery.Status == "" {
		delivery.Status = DeliveryStatusScheduled
		if delivery.DeliveredAt != nil {
			delivery.Status = DeliveryStatusCompleted
		}
	}
	if err := validateDelivery(delivery); err != nil {
		return nil, err
	}

	if err := s.repository.Deliveries().Create(ctx, delivery); err != nil {
		return nil, &RecordError{Kind: KindDelivery, ID: delivery.ID, Op: "create", Err: err}
	}
	return delivery, nil
}

func (s *service) GetDelivery(ctx context.Context, id uuid.UUID) (*Delivery, error) {
	return getRecord(ctx, s.repository.Deliveries(), KindDelivery, id)
}

func (s *service) DeleteDelivery(ctx context.Context, id uuid.UUID) error {
	if err := s.repository.Deliveries().Delete(ctx, id); err != nil {
		return &RecordError{Kind: KindDelivery, ID: id, Op: "delete", Err: err}
	}
	return nil
}

func (s *service) ListDeliveries(ctx context.Context, filter listview.FilterState) (*ListResult[Delivery], error) {
	return listView(ctx, s, s.views.deliveries, s.repository.Deliveries(), filter)
}

func validateDelivery(d *Delivery) error {
	switch d.Status {
	case DeliveryStatusScheduled:
		if d.ScheduledFor == nil {
			return required("scheduled_for")
		}
	case DeliveryStatusCompleted:
		if d.DeliveredAt == nil {
			return required("delivered_at")
		}
	case DeliveryStatusSkipped:
	default:
		return invalid("status", fmt.Sprintf("%q is not a delivery status", d.Status))
	}
	if d.GallonsDelivered != nil && *d.GallonsDelivered < 0 {
		return invalid("gallons_delivered", "must not be negative")
	}
	if d.BottlesReturned != nil && *d.BottlesReturned < 0 {
		return invalid("bottles_returned", "must not be negative")
	}
	return validateCoordinates(d.Latitude, d.Longitude)
}

func joinAddress(street, city string) string {
	switch {
	case street == "":
		return city
	case city == "":
		return street
	default:
		return street + ", " + city
	}
}

// Billing operations

func (s *service) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, invalid("amount", "must be positive")
	}
	customer, err := s.lookupCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if req.WorkOrderID != nil {
		if _, err := s.repository.WorkOrders().Get(ctx, *req.WorkOrderID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, invalid("work_order_id", "does not refer to a work order")
			}
			return nil, &RecordError{Kind: KindWorkOrder, ID: *req.WorkOrderID, Op: "get", Err: err}
		}
	}

	payment := &Payment{
		ID:           uuid.New(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		WorkOrderID:  req.WorkOrderID,
		Amount:       req.Amount.Round(2),
		Method:       req.Method,
		Status:       req.Status,
		Reference:    req.Reference,
		PaidAt:       req.PaidAt,
		CreatedAt:    s.now(),
	}
	if payment.Status == "" {
		payment.Status = PaymentStatusPaid
	}
	if payment.Status == PaymentStatusPaid && payment.PaidAt == nil {
		paid := payment.CreatedAt
		payment.PaidAt = &paid
	}
	switch payment.Method {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodCheck, PaymentMethodTransfer:
	default:
		return nil, invalid("method", fmt.Sprintf("%q is not a payment method", payment.Method))
	}
	switch payment.Status {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded:
	default:
		return nil, invalid("status", fmt.Sprintf("%q is not a payment status", payment.Status))
	}

	if err := s.repository.Payments().Create(ctx, payment); err != nil {
		return nil, &RecordError{Kind: KindPayment, ID: payment.ID, Op: "create", Err: err}
	}
	return payment, nil
}

func (s *service) GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return getRecord(ctx, s.repository.Payments(), KindPayment, id)
}

func (s *service) ListPayments(ctx context.Context, filter listview.FilterState) (*ListResult[Payment], error) {
	return listView(ctx, s, s.views.payments, s.repository.Payments(), filter)
}

// Activity log

func (s *service) ListActivity(ctx context.Context, filter listview.FilterState) (*ListResult[AuditEntry], error) {
	return listView(ctx, s, s.views.activity, s.repository.Activity(), filter)
}

func (s *service) lookupCustomer(ctx context.Context, id uuid.UUID) (*Customer, error) {
	if id == uuid.Nil {
		return nil, required("customer_id")
	}
	customer, err := s.repository.Customers().Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, invalid("customer_id", "does not refer to a customer")
	}
	if err != nil {
		return nil, &RecordError{Kind: KindCustomer, ID: id, Op: "get", Err: err}
	}
	return customer, nil
}
