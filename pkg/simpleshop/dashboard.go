package simpleshop

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tendant/simple-shop/pkg/listview"
)

// Dashboard is the overview of every module, computed over all records.
type Dashboard struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Customers   listview.Result `json:"customers"`
	WorkOrders  listview.Result `json:"work_orders"`
	Inventory   listview.Result `json:"inventory"`
	Deliveries  listview.Result `json:"deliveries"`
	Payments    listview.Result `json:"payments"`
	// LowStock lists items at or below their reorder level, emptiest first.
	LowStock []InventoryItem `json:"low_stock"`
}

// Dashboard fetches every collection concurrently and aggregates each one
// without filters.
func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		customers  []Customer
		workOrders []WorkOrder
		inventory  []InventoryItem
		deliveries []Delivery
		payments   []Payment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		customers, err = s.repository.Customers().List(gctx)
		return wrapList(ViewCustomers, err)
	})
	g.Go(func() (err error) {
		workOrders, err = s.repository.WorkOrders().List(gctx)
		return wrapList(ViewWorkOrders, err)
	})
	g.Go(func() (err error) {
		inventory, err = s.repository.Inventory().List(gctx)
		return wrapList(ViewInventory, err)
	})
	g.Go(func() (err error) {
		deliveries, err = s.repository.Deliveries().List(gctx)
		return wrapList(ViewDeliveries, err)
	})
	g.Go(func() (err error) {
		payments, err = s.repository.Payments().List(gctx)
		return wrapList(ViewPayments, err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.localNow()
	dash := &Dashboard{
		GeneratedAt: now,
		Customers:   s.views.customers.Aggregator.Aggregate(customers, now),
		WorkOrders:  s.views.workOrders.Aggregator.Aggregate(workOrders, now),
		Inventory:   s.views.inventory.Aggregator.Aggregate(inventory, now),
		Deliveries:  s.views.deliveries.Aggregator.Aggregate(deliveries, now),
		Payments:    s.views.payments.Aggregator.Aggregate(payments, now),
		LowStock:    []InventoryItem{},
	}

	for _, item := range inventory {
		if item.StockStatus(s.settings.LowStockThreshold) != StockInStock {
			dash.LowStock = append(dash.LowStock, item)
		}
	}
	sort.SliceStable(dash.LowStock, func(i, j int) bool {
		a, b := dash.LowStock[i], dash.LowStock[j]
		if a.Quantity != b.Quantity {
			return a.Quantity < b.Quantity
		}
		return a.Name < b.Name
	})

	return dash, nil
}

func wrapList(view ViewName, err error) error {
	if err != nil {
		return fmt.Errorf("list %s: %w", view, err)
	}
	return nil
}
