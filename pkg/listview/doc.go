// Package listview filters collections of typed records and derives summary
// statistics from them.
//
// A Schema describes a record type through accessor functions. The
// evaluator (Schema.Matches), the Aggregator and the Controller are all
// generic over that record type, so a list view is assembled like this:
//
//	schema := listview.NewSchema[Delivery]().
//		Text("customer", listview.Str(func(d Delivery) string { return d.CustomerName })).
//		Category("status", listview.Str(func(d Delivery) string { return d.Status })).
//		Date("delivered_at", listview.TimePtr(func(d Delivery) *time.Time { return d.DeliveredAt })).
//		Number("gallons", listview.NumPtr(func(d Delivery) *float64 { return d.Gallons })).
//		RangeOn("delivered_at")
//
//	agg, err := listview.NewAggregator(schema, listview.Config{Sum: []string{"gallons"}, OrderBy: "delivered_at"})
//	ctrl := listview.NewController(schema, agg)
//	ctrl.SetRecords(deliveries)
//	err = ctrl.SetFilterField("status", []string{"completed"})
//
// Schemas and aggregators are immutable once built and may be shared.
// Controllers hold mutable state and belong to a single caller.
package listview
