package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-shop/pkg/simpleshop"
	"github.com/tendant/simple-shop/pkg/simpleshop/repo/memory"
	repopg "github.com/tendant/simple-shop/pkg/simpleshop/repo/postgres"
	"github.com/tendant/simple-shop/pkg/simpleshop/scheduler"
	fsstorage "github.com/tendant/simple-shop/pkg/simpleshop/storage/fs"
	memorystorage "github.com/tendant/simple-shop/pkg/simpleshop/storage/memory"
	s3storage "github.com/tendant/simple-shop/pkg/simpleshop/storage/s3"
	"github.com/tendant/simple-shop/pkg/simpleshop/urlstrategy"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:         "8080",
		Environment:  "development",
		DatabaseType: "memory",
		DBSchema:     "shop",
		AutoMigrate:  true,
		StorageType:  "memory",
		FS:           FSConfig{BaseDir: "./data/reports"},
		S3:           s3storage.Config{Region: "us-east-1", PresignDuration: 3600},
		URLStrategy:  string(urlstrategy.StrategyTypeStorageDelegated),
		APIBaseURL:   urlstrategy.DefaultAPIBaseURL,
		Shop: ShopConfig{
			Name:              "Simple Shop",
			Currency:          "USD",
			TimeZone:          "UTC",
			LowStockThreshold: 5,
		},
		SnapshotSpec:   scheduler.DefaultSpec,
		SnapshotFormat: string(simpleshop.FormatCSV),
	}
}

// ServerConfig represents server configuration for the shop service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"
	DBSchema     string // Postgres schema to use (default: shop)
	AutoMigrate  bool   // Create missing tables on startup

	// Report storage configuration
	StorageType string // "memory", "fs", "s3"
	FS          FSConfig
	S3          s3storage.Config

	// Export download links
	URLStrategy string // "storage-delegated", "api", "cdn"
	APIBaseURL  string // Public prefix of the API routes
	CDNBaseURL  string

	Shop ShopConfig

	// APIKeySHA256 enables the API key middleware when set
	APIKeySHA256 string

	// Nightly snapshot exports; no jobs run when SnapshotViews is empty
	SnapshotSpec   string
	SnapshotViews  []string
	SnapshotFormat string
}

// FSConfig configures the filesystem report store
type FSConfig struct {
	BaseDir   string
	URLPrefix string
}

// ShopConfig holds the values of simpleshop.Settings
type ShopConfig struct {
	Name              string
	Currency          string
	TimeZone          string // IANA name, e.g. America/Chicago
	LowStockThreshold int
}

// IsProduction reports whether the server runs in the production environment
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}
	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	switch c.StorageType {
	case "memory":
	case "fs":
		if c.FS.BaseDir == "" {
			return errors.New("fs base directory is required when using fs storage")
		}
	case "s3":
		if c.S3.Bucket == "" {
			return errors.New("s3 bucket is required when using s3 storage")
		}
	default:
		return fmt.Errorf("storage_type must be 'memory', 'fs' or 's3', got: %s", c.StorageType)
	}

	strategy, err := urlstrategy.ParseType(c.URLStrategy)
	if err != nil {
		return err
	}
	if strategy == urlstrategy.StrategyTypeCDN && c.CDNBaseURL == "" {
		return errors.New("cdn base url is required when using the cdn url strategy")
	}

	if _, err := time.LoadLocation(c.Shop.TimeZone); err != nil {
		return fmt.Errorf("invalid shop time zone %q: %w", c.Shop.TimeZone, err)
	}
	if c.Shop.LowStockThreshold < 0 {
		return errors.New("low stock threshold must not be negative")
	}

	if len(c.SnapshotViews) > 0 {
		for _, v := range c.SnapshotViews {
			if _, err := simpleshop.ParseView(v); err != nil {
				return fmt.Errorf("snapshot views: %w", err)
			}
		}
		switch simpleshop.ExportFormat(c.SnapshotFormat) {
		case simpleshop.FormatCSV, simpleshop.FormatXLSX:
		default:
			return fmt.Errorf("snapshot format must be 'csv' or 'xlsx', got: %s", c.SnapshotFormat)
		}
	}

	return nil
}

// Settings builds the shop settings handed to the service
func (c *ServerConfig) Settings() (simpleshop.Settings, error) {
	loc, err := time.LoadLocation(c.Shop.TimeZone)
	if err != nil {
		return simpleshop.Settings{}, fmt.Errorf("invalid shop time zone %q: %w", c.Shop.TimeZone, err)
	}
	settings := simpleshop.DefaultSettings()
	if c.Shop.Name != "" {
		settings.ShopName = c.Shop.Name
	}
	if c.Shop.Currency != "" {
		settings.Currency = c.Shop.Currency
	}
	settings.Location = loc
	if c.Shop.LowStockThreshold > 0 {
		settings.LowStockThreshold = c.Shop.LowStockThreshold
	}
	return settings, nil
}

// SnapshotJobs returns one scheduled export per configured snapshot view.
// The cron spec runs in the shop time zone.
func (c *ServerConfig) SnapshotJobs() []scheduler.Job {
	spec := c.SnapshotSpec
	if spec == "" {
		spec = scheduler.DefaultSpec
	}
	if c.Shop.TimeZone != "" && !strings.HasPrefix(spec, "CRON_TZ=") && !strings.HasPrefix(spec, "TZ=") {
		spec = "CRON_TZ=" + c.Shop.TimeZone + " " + spec
	}

	jobs := make([]scheduler.Job, 0, len(c.SnapshotViews))
	for _, v := range c.SnapshotViews {
		jobs = append(jobs, scheduler.Job{
			Name: "snapshot-" + v,
			Spec: spec,
			Request: simpleshop.ExportRequest{
				View:   simpleshop.ViewName(v),
				Format: simpleshop.ExportFormat(c.SnapshotFormat),
			},
		})
	}
	return jobs
}

// BuildService creates a Service instance from the server configuration. The
// returned cleanup function releases the database pool, if any.
func (c *ServerConfig) BuildService(ctx context.Context, logger *slog.Logger) (simpleshop.Service, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}
	settings, err := c.Settings()
	if err != nil {
		return nil, nil, err
	}

	repo, cleanup, err := c.buildRepository(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build repository: %w", err)
	}

	store, err := c.buildReportStore(ctx)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to build report store: %w", err)
	}

	strategyType, err := urlstrategy.ParseType(c.URLStrategy)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	urls, err := urlstrategy.NewURLStrategy(urlstrategy.Config{
		Type:       strategyType,
		CDNBaseURL: c.CDNBaseURL,
		APIBaseURL: c.APIBaseURL,
		Store:      store,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to build url strategy: %w", err)
	}

	service, err := simpleshop.New(
		simpleshop.WithRepository(repo),
		simpleshop.WithReportStore(store),
		simpleshop.WithURLStrategy(urls),
		simpleshop.WithSettings(settings),
		simpleshop.WithLogger(logger),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	logger.Info("shop service configured",
		"database", c.DatabaseType,
		"storage", c.StorageType,
		"url_strategy", strategyType,
		"time_zone", settings.Zone().String())
	return service, cleanup, nil
}

// buildRepository creates a Repository based on the configuration
func (c *ServerConfig) buildRepository(ctx context.Context) (simpleshop.Repository, func(), error) {
	switch c.DatabaseType {
	case "memory":
		return memory.New(), func() {}, nil
	case "postgres":
		pool, err := NewPool(ctx, c.DatabaseURL, c.DBSchema)
		if err != nil {
			return nil, nil, err
		}
		repo := repopg.NewWithPool(pool)
		if c.AutoMigrate {
			if err := repo.Migrate(ctx); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		return repo, pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// NewPool opens a pgx pool whose sessions use schema as search_path. The
// schema is created if it does not exist.
func NewPool(ctx context.Context, databaseURL, schema string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, errors.New("database_url is required")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	if schema != "" {
		ident := pgx.Identifier{schema}.Sanitize()
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			if _, err := conn.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+ident); err != nil {
				return err
			}
			_, err := conn.Exec(ctx, "SET search_path TO "+ident)
			return err
		}
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return pool, nil
}

// buildReportStore creates a ReportStore based on the configuration
func (c *ServerConfig) buildReportStore(ctx context.Context) (simpleshop.ReportStore, error) {
	switch c.StorageType {
	case "memory":
		return memorystorage.New(), nil
	case "fs":
		return fsstorage.New(fsstorage.Config{BaseDir: c.FS.BaseDir, URLPrefix: c.FS.URLPrefix})
	case "s3":
		return s3storage.New(ctx, c.S3)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", c.StorageType)
	}
}
