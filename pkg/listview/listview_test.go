package listview_test

import (
	"time"

	"github.com/tendant/simple-shop/pkg/listview"
)

type delivery struct {
	Customer    string
	Address     string
	Notes       *string
	Status      string
	Route       string
	DeliveredAt *time.Time
	Gallons     *float64
	Bottles     int
}

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func gallons(v float64) *float64 { return &v }

func deliverySchema() *listview.Schema[delivery] {
	return listview.NewSchema[delivery]().
		Text("customer", listview.Str(func(d delivery) string { return d.Customer })).
		Text("address", listview.Str(func(d delivery) string { return d.Address })).
		Text("notes", listview.StrPtr(func(d delivery) *string { return d.Notes })).
		Category("status", listview.Str(func(d delivery) string { return d.Status })).
		Category("route", listview.Str(func(d delivery) string { return d.Route })).
		Date("delivered_at", listview.TimePtr(func(d delivery) *time.Time { return d.DeliveredAt })).
		Number("gallons", listview.NumPtr(func(d delivery) *float64 { return d.Gallons })).
		Number("bottles", listview.Num(func(d delivery) int { return d.Bottles })).
		RangeOn("delivered_at")
}
