package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/chi-demo/middleware"

	"github.com/tendant/simple-shop/pkg/simpleshop"
	"github.com/tendant/simple-shop/pkg/simpleshop/api"
	"github.com/tendant/simple-shop/pkg/simpleshop/config"
	"github.com/tendant/simple-shop/pkg/simpleshop/scheduler"
)

func main() {
	configFile := flag.String("config", "", "optional YAML, JSON or TOML config file")
	showUsage := flag.Bool("env-help", false, "print the environment variables and exit")
	flag.Parse()

	if *showUsage {
		fmt.Println(config.Usage())
		return
	}

	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	source := config.FromEnv()
	if *configFile != "" {
		source = config.FromFile(*configFile)
	}
	serverConfig, err := config.Load(source)
	if err != nil {
		slog.Error("Failed to load server configuration", "err", err)
		os.Exit(1)
	}

	logger := newLogger(serverConfig)
	slog.SetDefault(logger)

	if err := run(serverConfig, logger); err != nil {
		logger.Error("Server stopped with error", "err", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.ServerConfig) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func run(cfg *config.ServerConfig, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := cfg.BuildService(ctx, logger)
	if err != nil {
		return fmt.Errorf("build service: %w", err)
	}
	defer cleanup()

	var snapshots *scheduler.Scheduler
	if jobs := cfg.SnapshotJobs(); len(jobs) > 0 {
		snapshots, err = scheduler.New(svc, logger, jobs...)
		if err != nil {
			return fmt.Errorf("snapshot scheduler: %w", err)
		}
		snapshots.Start()
	}

	handler, err := NewRouter(svc, cfg, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Simple Shop server starting",
			"port", cfg.Port,
			"env", cfg.Environment,
			"shop", svc.Settings().ShopName)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if snapshots != nil {
		if err := snapshots.Stop(shutdownCtx); err != nil {
			logger.Warn("snapshot jobs did not finish", "err", err)
		}
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exiting")
	return nil
}

// NewRouter mounts the health checks and the shop API. The API requires an
// API key when one is configured.
func NewRouter(svc simpleshop.Service, cfg *config.ServerConfig, logger *slog.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	if !cfg.IsProduction() {
		r.Use(chimiddleware.Logger)
	}
	r.Use(chimiddleware.Timeout(60 * time.Second))

	app.RoutesHealthz(r)
	app.RoutesHealthzReady(r)

	shop := api.New(svc, logger)

	var apiKeyMiddleware func(http.Handler) http.Handler
	if cfg.APIKeySHA256 != "" {
		mw, err := middleware.ApiKeyMiddleware(middleware.ApiKeyConfig{
			APIKeys: map[string]string{
				"key1": cfg.APIKeySHA256,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("initialize API key middleware: %w", err)
		}
		apiKeyMiddleware = mw
	}

	r.Route("/api/v1", func(r chi.Router) {
		if apiKeyMiddleware != nil {
			r.Use(apiKeyMiddleware)
		}
		r.Mount("/", shop.Routes())
	})

	return r, nil
}
