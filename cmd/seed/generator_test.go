package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-shop/pkg/listview"
	"github.com/tendant/simple-shop/pkg/simpleshop"
	"github.com/tendant/simple-shop/pkg/simpleshop/presets"
)

var seedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func runSeed(t *testing.T, seed int64, counts Counts) (simpleshop.Service, *Summary) {
	t.Helper()
	svc := presets.NewTesting(t, presets.WithTestClock(func() time.Time { return seedNow }))
	summary, err := NewGenerator(svc, seed, seedNow, slog.New(slog.NewTextHandler(io.Discard, nil))).Run(context.Background(), counts)
	require.NoError(t, err)
	return svc, summary
}

func TestGenerator_Run(t *testing.T) {
	counts := Counts{Customers: 14, Team: 6, Inventory: 5, WorkOrders: 20, DeliveryDays: 14}
	svc, summary := runSeed(t, 42, counts)
	ctx := context.Background()

	assert.Equal(t, 14, summary.Customers)
	assert.Equal(t, 6, summary.Team)
	assert.Equal(t, 5, summary.Inventory)
	assert.Equal(t, 20, summary.WorkOrders)

	customers, err := svc.ListCustomers(ctx, listview.FilterState{})
	require.NoError(t, err)
	assert.Equal(t, 14, customers.Total)

	orders, err := svc.ListWorkOrders(ctx, listview.FilterState{})
	require.NoError(t, err)
	assert.Equal(t, 20, orders.Total)

	deliveries, err := svc.ListDeliveries(ctx, listview.FilterState{})
	require.NoError(t, err)
	assert.Equal(t, summary.Deliveries, deliveries.Total)

	payments, err := svc.ListPayments(ctx, listview.FilterState{})
	require.NoError(t, err)
	assert.Equal(t, summary.Payments, payments.Total)
	for _, p := range payments.Items {
		assert.NotNil(t, p.WorkOrderID)
		assert.True(t, p.Amount.IsPositive())
	}

	team, err := svc.ListTeam(ctx, listview.FilterState{
		Categories: map[string][]string{"role": {string(simpleshop.RoleOwner)}},
	})
	require.NoError(t, err)
	assert.Len(t, team.Items, 1)
}

func TestGenerator_SameSeedSameData(t *testing.T) {
	counts := Counts{Customers: 5, Team: 2, Inventory: 3}
	first, _ := runSeed(t, 7, counts)
	second, _ := runSeed(t, 7, counts)

	names := func(svc simpleshop.Service) []string {
		res, err := svc.ListInventory(context.Background(), listview.FilterState{})
		require.NoError(t, err)
		out := make([]string, 0, len(res.Items))
		for _, item := range res.Items {
			out = append(out, item.SKU)
		}
		return out
	}
	assert.ElementsMatch(t, names(first), names(second))
}

func TestGenerator_NoCustomers(t *testing.T) {
	_, summary := runSeed(t, 1, Counts{Team: 2, WorkOrders: 10, DeliveryDays: 5})
	assert.Equal(t, 2, summary.Team)
	assert.Zero(t, summary.WorkOrders)
	assert.Zero(t, summary.Deliveries)
}
