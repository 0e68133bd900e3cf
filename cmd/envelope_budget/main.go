package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/envelope_budget/internal/apperrors"
	"github.com/SscSPs/envelope_budget/internal/core/services"
	"github.com/SscSPs/envelope_budget/internal/handlers"
	"github.com/SscSPs/envelope_budget/internal/metrics"
	"github.com/SscSPs/envelope_budget/internal/middleware"
	"github.com/SscSPs/envelope_budget/internal/platform/config"
	"github.com/SscSPs/envelope_budget/internal/repositories/database/sqldb"
	"github.com/SscSPs/envelope_budget/pkg/database"
	"github.com/SscSPs/envelope_budget/pkg/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	portssvc "github.com/SscSPs/envelope_budget/internal/core/ports/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := logging.Setup(cfg.LogLevel, cfg.IsProduction)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	dialect, err := sqldb.ParseDialect(cfg.DBDriver)
	if err != nil {
		return err
	}

	db, dsn, err := openDatabase(ctx, dialect, cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)
	logger.Info("Database connection established", slog.String("driver", string(dialect)))

	logger.Info("Running database migrations...")
	if err := sqldb.RunMigrations(dialect, dsn, logger); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	store := sqldb.NewStore(db, dialect)
	serviceContainer := services.NewServiceContainer(sqldb.NewRepositoryProvider(store), metrics.NewRecorder(registry))

	if err := selectDefaultBudget(ctx, serviceContainer, cfg.DefaultBudget, logger); err != nil {
		return err
	}

	router, err := newRouter(cfg, serviceContainer, registry, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openDatabase(ctx context.Context, dialect sqldb.Dialect, cfg *config.Config) (*sql.DB, string, error) {
	if dialect == sqldb.Postgres {
		db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
		return db, cfg.DatabaseURL, err
	}
	db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
	return db, database.SQLiteDSN(cfg.SQLitePath), err
}

// selectDefaultBudget makes the configured budget current, creating it empty when missing.
func selectDefaultBudget(ctx context.Context, container *portssvc.ServiceContainer, name string, logger *slog.Logger) error {
	if name == "" {
		return nil
	}
	acc, err := container.Budgeting.SwitchBudgetAccount(ctx, name)
	if errors.Is(err, apperrors.ErrBudgetAccountNotFound) {
		acc, err = container.Budgeting.NewBudget(ctx, name, decimal.Zero)
	}
	if err != nil {
		return fmt.Errorf("selecting default budget %q: %w", name, err)
	}
	logger.Info("Default budget selected", slog.String("name", acc.FiledAs), slog.Int64("budget_account_id", acc.BudgetAccountID))
	return nil
}

func newRouter(cfg *config.Config, container *portssvc.ServiceContainer, registry *prometheus.Registry, logger *slog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.RateLimit != "" {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			return nil, err
		}
		r.Use(middleware.RateLimit(limiter))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, container, registry)
	return r, nil
}
