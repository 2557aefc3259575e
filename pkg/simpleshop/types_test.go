package simpleshop_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tendant/simple-shop/pkg/simpleshop"
)

func TestWorkOrder_Total(t *testing.T) {
	order := simpleshop.WorkOrder{Lines: []simpleshop.LineItem{
		{Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("19.99")},
		{Quantity: decimal.RequireFromString("1.5"), UnitPrice: decimal.NewFromInt(10)},
		{Quantity: decimal.RequireFromString("0.333"), UnitPrice: decimal.NewFromInt(1)},
	}}
	assert.Equal(t, "75.30", order.Total().StringFixed(2))

	assert.True(t, simpleshop.WorkOrder{}.Total().IsZero())
}

func TestInventoryItem_StockStatus(t *testing.T) {
	tests := []struct {
		name         string
		quantity     int
		reorderLevel int
		want         simpleshop.StockStatus
	}{
		{"empty", 0, 0, simpleshop.StockOutOfStock},
		{"at default threshold", 5, 0, simpleshop.StockLow},
		{"above default threshold", 6, 0, simpleshop.StockInStock},
		{"own reorder level", 2, 2, simpleshop.StockLow},
		{"above own reorder level", 3, 2, simpleshop.StockInStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := simpleshop.InventoryItem{Quantity: tt.quantity, ReorderLevel: tt.reorderLevel}
			assert.Equal(t, tt.want, item.StockStatus(5))
		})
	}
}

func TestInventoryItem_Value(t *testing.T) {
	item := simpleshop.InventoryItem{Quantity: 4, UnitCost: decimal.RequireFromString("2.505")}
	assert.Equal(t, "10.02", item.Value().StringFixed(2))
}

func TestParseView(t *testing.T) {
	view, err := simpleshop.ParseView("work_orders")
	assert.NoError(t, err)
	assert.Equal(t, simpleshop.ViewWorkOrders, view)

	_, err = simpleshop.ParseView("Work_Orders")
	assert.ErrorIs(t, err, simpleshop.ErrUnknownView)
	assert.Len(t, simpleshop.Views(), 7)
}
