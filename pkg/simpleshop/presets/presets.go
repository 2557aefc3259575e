// Package presets builds ready-to-use shop services for common setups.
package presets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/tendant/simple-shop/pkg/simpleshop"
	"github.com/tendant/simple-shop/pkg/simpleshop/config"
	"github.com/tendant/simple-shop/pkg/simpleshop/repo/memory"
	fsstorage "github.com/tendant/simple-shop/pkg/simpleshop/storage/fs"
	memorystorage "github.com/tendant/simple-shop/pkg/simpleshop/storage/memory"
)

// NewDevelopment creates a service for local development.
//
// Records live in memory and exports are written to ./dev-data/reports, so
// downloaded files survive a restart while the data does not. The cleanup
// function removes the storage directory.
//
// Example:
//
//	svc, cleanup, err := presets.NewDevelopment()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cleanup()
func NewDevelopment(opts ...DevelopmentOption) (simpleshop.Service, func(), error) {
	cfg := &devConfig{
		storageDir: "./dev-data/reports",
		settings:   simpleshop.DefaultSettings(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	fsBackend, err := fsstorage.New(fsstorage.Config{BaseDir: cfg.storageDir})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create filesystem storage: %w", err)
	}

	svc, err := simpleshop.New(
		simpleshop.WithRepository(memory.New()),
		simpleshop.WithReportStore(fsBackend),
		simpleshop.WithSettings(cfg.settings),
		simpleshop.WithLogger(cfg.logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create service: %w", err)
	}

	cleanup := func() {
		os.RemoveAll(cfg.storageDir)
	}
	return svc, cleanup, nil
}

// NewTesting creates an isolated in-memory service for tests. Logs are
// discarded unless WithTestLogger is given.
//
//	func TestMyFeature(t *testing.T) {
//	    svc := presets.NewTesting(t, presets.WithTestClock(fixedNow))
//	    ...
//	}
func NewTesting(t testing.TB, opts ...TestingOption) simpleshop.Service {
	t.Helper()
	cfg := &testConfig{
		settings: simpleshop.DefaultSettings(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	svc, err := simpleshop.New(
		simpleshop.WithRepository(memory.New()),
		simpleshop.WithReportStore(memorystorage.New()),
		simpleshop.WithSettings(cfg.settings),
		simpleshop.WithClock(cfg.clock),
		simpleshop.WithLogger(cfg.logger),
	)
	if err != nil {
		t.Fatalf("failed to create test service: %v", err)
	}
	return svc
}

// NewProduction builds a service from SHOP_* environment variables and
// refuses configurations that lose data on restart: the database must be
// Postgres and exports must go to fs or s3 storage.
func NewProduction(ctx context.Context, logger *slog.Logger, opts ...config.Option) (simpleshop.Service, func(), error) {
	options := append([]config.Option{config.FromEnv(), config.WithEnvironment("production")}, opts...)
	cfg, err := config.Load(options...)
	if err != nil {
		return nil, nil, err
	}
	if err := checkProduction(cfg); err != nil {
		return nil, nil, err
	}
	return cfg.BuildService(ctx, logger)
}

func checkProduction(cfg *config.ServerConfig) error {
	if cfg.DatabaseType != "postgres" {
		return fmt.Errorf("production preset requires SHOP_DATABASE_URL=postgres://... (memory not allowed in production)")
	}
	if cfg.StorageType == "memory" {
		return fmt.Errorf("production preset requires persistent report storage (fs or s3, not memory)")
	}
	return nil
}

type devConfig struct {
	storageDir string
	settings   simpleshop.Settings
	logger     *slog.Logger
}

type testConfig struct {
	settings simpleshop.Settings
	logger   *slog.Logger
	clock    func() time.Time
}

// DevelopmentOption is a functional option for NewDevelopment
type DevelopmentOption func(*devConfig)

// WithDevStorage sets the development export directory
func WithDevStorage(dir string) DevelopmentOption {
	return func(cfg *devConfig) {
		cfg.storageDir = dir
	}
}

// WithDevSettings sets the shop settings
func WithDevSettings(settings simpleshop.Settings) DevelopmentOption {
	return func(cfg *devConfig) {
		cfg.settings = settings
	}
}

// WithDevLogger sets the logger
func WithDevLogger(logger *slog.Logger) DevelopmentOption {
	return func(cfg *devConfig) {
		cfg.logger = logger
	}
}

// TestingOption is a functional option for NewTesting
type TestingOption func(*testConfig)

// WithTestClock fixes the service's time source
func WithTestClock(now func() time.Time) TestingOption {
	return func(cfg *testConfig) {
		cfg.clock = now
	}
}

// WithTestSettings sets the shop settings
func WithTestSettings(settings simpleshop.Settings) TestingOption {
	return func(cfg *testConfig) {
		cfg.settings = settings
	}
}

// WithTestLogger sets the logger
func WithTestLogger(logger *slog.Logger) TestingOption {
	return func(cfg *testConfig) {
		cfg.logger = logger
	}
}
