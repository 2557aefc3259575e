// Package simpleshop is the service layer for a small shop: customers, work
// orders, inventory, water deliveries, payments and the team.
//
// Every list operation runs the records of one view through a
// listview.Controller, so callers get the visible subset, the filter that
// produced it and the derived statistics in one ListResult.
//
// Usage:
//
//	repo := memory.New()
//	svc, err := simpleshop.New(
//		simpleshop.WithRepository(repo),
//		simpleshop.WithReportStore(store),
//		simpleshop.WithSettings(simpleshop.DefaultSettings()),
//	)
//
//	customers, err := svc.ListCustomers(ctx, listview.FilterState{Search: "ada"})
package simpleshop
