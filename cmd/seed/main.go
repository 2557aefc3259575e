package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/tendant/simple-shop/pkg/simpleshop"
	"github.com/tendant/simple-shop/pkg/simpleshop/config"
)

const usage = `seed fills a shop database with demo data.

It reads the same SHOP_* environment variables as the server, so point
SHOP_DATABASE_URL at Postgres to keep the data. With the memory database the
data is discarded on exit; use -export to look at it.

USAGE:
  seed [flags]

FLAGS:
`

func main() {
	counts := DefaultCounts
	seed := flag.Int64("seed", 1, "random seed; the same seed produces the same data")
	flag.IntVar(&counts.Customers, "customers", counts.Customers, "number of customers")
	flag.IntVar(&counts.Team, "team", counts.Team, "number of team members")
	flag.IntVar(&counts.Inventory, "inventory", counts.Inventory, "number of inventory items")
	flag.IntVar(&counts.WorkOrders, "work-orders", counts.WorkOrders, "number of work orders")
	flag.IntVar(&counts.DeliveryDays, "delivery-days", counts.DeliveryDays, "days of delivery history")
	exportView := flag.String("export", "", "export this view after seeding (customers, work_orders, ...)")
	exportFormat := flag.String("format", "csv", "export format: csv or xlsx")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(config.FromEnv())
	if err != nil {
		logger.Error("Failed to load configuration", "err", err)
		os.Exit(1)
	}
	if cfg.DatabaseType == "memory" && *exportView == "" {
		logger.Warn("seeding the memory database; data is lost on exit")
	}

	ctx := context.Background()
	svc, cleanup, err := cfg.BuildService(ctx, logger)
	if err != nil {
		logger.Error("Failed to build service", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	generator := NewGenerator(svc, *seed, time.Now().In(svc.Settings().Zone()), logger)
	summary, err := generator.Run(ctx, counts)
	if err != nil {
		logger.Error("Seeding failed", "err", err)
		os.Exit(1)
	}
	fmt.Printf("created %d customers, %d team members, %d inventory items, %d work orders, %d deliveries, %d payments\n",
		summary.Customers, summary.Team, summary.Inventory, summary.WorkOrders, summary.Deliveries, summary.Payments)

	if *exportView == "" {
		return
	}
	view, err := simpleshop.ParseView(*exportView)
	if err != nil {
		logger.Error("Cannot export", "err", err)
		os.Exit(1)
	}
	result, err := svc.Export(ctx, simpleshop.ExportRequest{View: view, Format: simpleshop.ExportFormat(*exportFormat)})
	if err != nil {
		logger.Error("Export failed", "err", err)
		os.Exit(1)
	}
	fmt.Printf("exported %d rows to %s\n", result.Rows, result.Key)
	if result.URL != "" {
		fmt.Println(result.URL)
	}
}
