package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"github.com/tendant/simple-shop/pkg/simpleshop"
)

// Counts is how many records of each kind to create.
type Counts struct {
	Customers  int
	Team       int
	Inventory  int
	WorkOrders int
	// DeliveryDays is the number of past days with completed deliveries
	// before today. Today and tomorrow always get scheduled stops.
	DeliveryDays int
}

// DefaultCounts is a small shop with a quarter of history.
var DefaultCounts = Counts{
	Customers:    40,
	Team:         6,
	Inventory:    25,
	WorkOrders:   60,
	DeliveryDays: 90,
}

// Summary reports what a run created.
type Summary struct {
	Customers  int
	Team       int
	Inventory  int
	WorkOrders int
	Deliveries int
	Payments   int
}

var (
	cities     = []string{"Austin", "Round Rock", "Pflugerville", "Cedar Park"}
	routes     = map[string]string{"Austin": "central", "Round Rock": "north", "Pflugerville": "east", "Cedar Park": "west"}
	jobTitles  = []string{"Install water softener", "Replace RO membrane", "Annual filter service", "Repair leaking valve", "Well pump inspection", "Water test"}
	parts      = []string{"RO membrane", "Sediment filter", "Carbon block", "Softener resin", "Ball valve", "UV lamp", "5 gallon bottle", "Pump seal"}
	categories = []string{"filters", "valves", "bottles", "pumps", "chemicals"}
	priorities = []simpleshop.Priority{simpleshop.PriorityLow, simpleshop.PriorityNormal, simpleshop.PriorityNormal, simpleshop.PriorityHigh, simpleshop.PriorityUrgent}
	methods    = []simpleshop.PaymentMethod{simpleshop.PaymentMethodCash, simpleshop.PaymentMethodCard, simpleshop.PaymentMethodCheck, simpleshop.PaymentMethodTransfer}
)

// Generator fills a shop with fake but consistent records. The same seed
// produces the same names, quantities and dates.
type Generator struct {
	faker   *gofakeit.Faker
	service simpleshop.Service
	now     time.Time
	logger  *slog.Logger

	customers   []simpleshop.Customer
	technicians []simpleshop.TeamMember
	drivers     []simpleshop.TeamMember
}

// NewGenerator creates a generator writing through service
func NewGenerator(service simpleshop.Service, seed int64, now time.Time, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		faker:   gofakeit.New(seed),
		service: service,
		now:     now,
		logger:  logger,
	}
}

// Run creates the records. Work orders, deliveries and payments refer to
// the customers and team created earlier in the same run.
func (g *Generator) Run(ctx context.Context, counts Counts) (*Summary, error) {
	summary := &Summary{}

	for i := 0; i < counts.Team; i++ {
		if err := g.teamMember(ctx, i); err != nil {
			return summary, err
		}
		summary.Team++
	}
	for i := 0; i < counts.Customers; i++ {
		if err := g.customer(ctx); err != nil {
			return summary, err
		}
		summary.Customers++
	}
	for i := 0; i < counts.Inventory; i++ {
		if err := g.inventoryItem(ctx); err != nil {
			return summary, err
		}
		summary.Inventory++
	}
	if len(g.customers) == 0 {
		g.logger.Info("seed data created", "team", summary.Team, "inventory", summary.Inventory)
		return summary, nil
	}

	for i := 0; i < counts.WorkOrders; i++ {
		paid, err := g.workOrder(ctx)
		if err != nil {
			return summary, err
		}
		summary.WorkOrders++
		if paid {
			summary.Payments++
		}
	}

	deliveries, err := g.deliveries(ctx, counts.DeliveryDays)
	summary.Deliveries = deliveries
	if err != nil {
		return summary, err
	}

	g.logger.Info("seed data created",
		"customers", summary.Customers,
		"team", summary.Team,
		"inventory", summary.Inventory,
		"work_orders", summary.WorkOrders,
		"deliveries", summary.Deliveries,
		"payments", summary.Payments)
	return summary, nil
}

func (g *Generator) teamMember(ctx context.Context, i int) error {
	role := simpleshop.RoleTechnician
	switch {
	case i == 0:
		role = simpleshop.RoleOwner
	case i%3 == 0:
		role = simpleshop.RoleDriver
	case i%5 == 0:
		role = simpleshop.RoleManager
	}
	joined := g.pastDate(730)
	member, err := g.service.CreateTeamMember(ctx, simpleshop.CreateTeamMemberRequest{
		Name:     g.faker.Name(),
		Email:    g.faker.Email(),
		Phone:    g.faker.Phone(),
		Role:     role,
		Status:   simpleshop.MemberStatusActive,
		JoinedAt: &joined,
	})
	if err != nil {
		return fmt.Errorf("create team member: %w", err)
	}
	switch member.Role {
	case simpleshop.RoleTechnician:
		g.technicians = append(g.technicians, *member)
	case simpleshop.RoleDriver:
		g.drivers = append(g.drivers, *member)
	}
	return nil
}

func (g *Generator) customer(ctx context.Context) error {
	req := simpleshop.CreateCustomerRequest{
		Name:    g.faker.Name(),
		Email:   g.faker.Email(),
		Phone:   g.faker.Phone(),
		Address: g.faker.Street(),
		City:    g.faker.RandomString(cities),
	}
	if g.faker.Number(1, 4) == 1 {
		req.Type = simpleshop.CustomerTypeCommercial
		req.Name = g.faker.Company()
	}
	if g.faker.Number(1, 10) == 1 {
		req.Status = simpleshop.CustomerStatusInactive
	}
	// most customers are geocoded around Austin
	if g.faker.Number(1, 8) != 1 {
		lat := 30.27 + g.faker.Float64Range(-0.15, 0.25)
		lng := -97.74 + g.faker.Float64Range(-0.2, 0.2)
		req.Latitude, req.Longitude = &lat, &lng
	}

	customer, err := g.service.CreateCustomer(ctx, req)
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	g.customers = append(g.customers, *customer)
	return nil
}

func (g *Generator) inventoryItem(ctx context.Context) error {
	var restocked *time.Time
	if g.faker.Bool() {
		t := g.pastDate(120)
		restocked = &t
	}
	_, err := g.service.CreateInventoryItem(ctx, simpleshop.CreateInventoryItemRequest{
		SKU:             g.faker.Numerify("SKU-#####"),
		Name:            g.faker.RandomString(parts),
		Category:        g.faker.RandomString(categories),
		Supplier:        g.faker.Company(),
		Location:        fmt.Sprintf("Aisle %d", g.faker.Number(1, 6)),
		Quantity:        g.faker.Number(0, 60),
		ReorderLevel:    g.faker.Number(0, 8),
		UnitCost:        decimal.NewFromFloat(g.faker.Price(2, 250)).Round(2),
		LastRestockedAt: restocked,
	})
	if err != nil {
		return fmt.Errorf("create inventory item: %w", err)
	}
	return nil
}

// workOrder creates an order and moves past ones along. Completed orders
// are usually paid.
func (g *Generator) workOrder(ctx context.Context) (bool, error) {
	customer := g.customers[g.faker.Number(0, len(g.customers)-1)]
	scheduled := g.now.AddDate(0, 0, g.faker.Number(-90, 14))
	hours := float64(g.faker.Number(1, 8))

	req := simpleshop.CreateWorkOrderRequest{
		CustomerID:     customer.ID,
		Title:          g.faker.RandomString(jobTitles),
		Description:    g.faker.Sentence(8),
		Priority:       priorities[g.faker.Number(0, len(priorities)-1)],
		ScheduledFor:   &scheduled,
		EstimatedHours: &hours,
	}
	if len(g.technicians) > 0 {
		id := g.technicians[g.faker.Number(0, len(g.technicians)-1)].ID
		req.AssigneeID = &id
	}
	for n := g.faker.Number(1, 3); n > 0; n-- {
		req.Lines = append(req.Lines, simpleshop.LineItem{
			Description: g.faker.RandomString(parts),
			Quantity:    decimal.NewFromInt(int64(g.faker.Number(1, 4))),
			UnitPrice:   decimal.NewFromFloat(g.faker.Price(10, 400)).Round(2),
		})
	}

	order, err := g.service.CreateWorkOrder(ctx, req)
	if err != nil {
		return false, fmt.Errorf("create work order: %w", err)
	}

	switch {
	case scheduled.After(g.now):
		return false, nil
	case g.faker.Number(1, 10) == 1:
		order.Status = simpleshop.WorkOrderStatusCancelled
	case scheduled.After(g.now.AddDate(0, 0, -3)):
		order.Status = simpleshop.WorkOrderStatusInProgress
	default:
		order.Status = simpleshop.WorkOrderStatusCompleted
		completed := scheduled.Add(time.Duration(hours) * time.Hour)
		order.CompletedAt = &completed
	}
	if order, err = g.service.UpdateWorkOrder(ctx, order); err != nil {
		return false, fmt.Errorf("update work order: %w", err)
	}

	if order.Status != simpleshop.WorkOrderStatusCompleted || g.faker.Number(1, 5) == 1 {
		return false, nil
	}
	workOrderID := order.ID
	_, err = g.service.RecordPayment(ctx, simpleshop.RecordPaymentRequest{
		CustomerID:  order.CustomerID,
		WorkOrderID: &workOrderID,
		Amount:      order.Total(),
		Method:      methods[g.faker.Number(0, len(methods)-1)],
		Reference:   g.faker.Numerify("INV-######"),
		PaidAt:      order.CompletedAt,
	})
	if err != nil {
		return false, fmt.Errorf("record payment: %w", err)
	}
	return true, nil
}

// deliveries gives every active customer a weekly stop on the route of its
// city: completed in the past, scheduled today and tomorrow.
func (g *Generator) deliveries(ctx context.Context, days int) (int, error) {
	today := time.Date(g.now.Year(), g.now.Month(), g.now.Day(), 8, 0, 0, 0, g.now.Location())
	created := 0

	for offset := -days; offset <= 1; offset++ {
		day := today.AddDate(0, 0, offset)
		sequence := map[string]int{}
		for i, customer := range g.customers {
			if customer.Status != simpleshop.CustomerStatusActive || i%7 != int(day.Weekday()) {
				continue
			}
			route := routes[customer.City]
			sequence[route]++
			req := simpleshop.RecordDeliveryRequest{
				CustomerID:   customer.ID,
				Route:        route,
				DriverName:   g.driverFor(route),
				Sequence:     sequence[route],
				ScheduledFor: &day,
			}
			if offset < 0 {
				if g.faker.Number(1, 20) == 1 {
					req.Status = simpleshop.DeliveryStatusSkipped
					req.Notes = "customer not home"
				} else {
					delivered := day.Add(time.Duration(g.faker.Number(0, 480)) * time.Minute)
					gallons := float64(g.faker.Number(1, 6) * 5)
					bottles := g.faker.Number(0, 5)
					req.DeliveredAt = &delivered
					req.GallonsDelivered = &gallons
					req.BottlesReturned = &bottles
				}
			}
			if _, err := g.service.RecordDelivery(ctx, req); err != nil {
				return created, fmt.Errorf("record delivery: %w", err)
			}
			created++
		}
	}
	return created, nil
}

func (g *Generator) driverFor(route string) string {
	if len(g.drivers) == 0 {
		return ""
	}
	var sum int
	for _, r := range route {
		sum += int(r)
	}
	return g.drivers[sum%len(g.drivers)].Name
}

func (g *Generator) pastDate(maxDays int) time.Time {
	return g.now.AddDate(0, 0, -g.faker.Number(1, maxDays)).Truncate(time.Hour)
}
