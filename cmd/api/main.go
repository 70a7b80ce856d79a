package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sales-insights/internal/config"
	"sales-insights/internal/database"
	"sales-insights/internal/handlers"
	custommw "sales-insights/internal/middleware"
	"sales-insights/internal/repositories"
	"sales-insights/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	// .env is optional; real deployments configure through the environment
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := config.Load()

	setupLogger(cfg)

	db, err := database.Initialize(cfg)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	salesRepo := repositories.NewSalesTransactionRepository(db)

	if err := seedIfEmpty(cfg, salesRepo); err != nil {
		slog.Error("failed to seed dataset", "error", err)
		os.Exit(1)
	}

	metrics := services.NewPrometheusMetrics()

	normalizer := services.NewNormalizerService()
	filter := services.NewFilterService()
	aggregator := services.NewAggregationService()
	kpis := services.NewKPIService()
	formatter := services.NewFormatterService(cfg.Dataset.CurrencySymbol)

	dashboardService := services.NewDashboardService(
		salesRepo, normalizer, filter, aggregator, kpis, formatter, metrics)

	if err := dashboardService.Load(); err != nil {
		slog.Error("failed to load sales dataset", "error", err)
		os.Exit(1)
	}

	tokenService := services.NewTokenService(&cfg.JWT)

	e := buildServer(cfg, db, dashboardService, tokenService, metrics)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		slog.Info("starting server",
			"addr", addr,
			"environment", cfg.Server.Environment,
			"auth_enabled", cfg.JWT.Enabled,
			"dataset_rows", dashboardService.RowCount())
		if err := e.Start(addr); err != nil {
			slog.Info("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func setupLogger(cfg *config.Config) {
	level := slog.LevelInfo
	if cfg.IsDevelopment() {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// seedIfEmpty populates the sales table with generated rows when it is empty.
// Dev convenience only; it never touches a table that already has data.
func seedIfEmpty(cfg *config.Config, repo repositories.SalesTransactionRepositoryInterface) error {
	if !cfg.Dataset.SeedOnEmpty {
		return nil
	}

	count, err := repo.Count()
	if err != nil {
		return fmt.Errorf("failed to count sales transactions: %w", err)
	}
	if count > 0 {
		return nil
	}

	generator := services.NewSalesDataGenerator(cfg.Dataset.SeedYearStart, cfg.Dataset.SeedYearEnd)
	rows := generator.Generate(cfg.Dataset.SeedRows)

	if err := repo.BulkInsert(rows); err != nil {
		return fmt.Errorf("failed to insert seed rows: %w", err)
	}

	slog.Info("seeded empty sales table", "rows", len(rows))
	return nil
}

func buildServer(
	cfg *config.Config,
	db *gorm.DB,
	dashboardService services.DashboardServiceInterface,
	tokenService services.TokenServiceInterface,
	metrics services.MetricsRecorderInterface,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = custommw.CustomHTTPErrorHandler

	e.Use(custommw.RequestID())
	e.Use(custommw.PanicRecovery())
	e.Use(custommw.SecurityHeaders())
	e.Use(custommw.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	healthHandler := handlers.NewHealthCheckHandler(db, dashboardService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	if cfg.JWT.Enabled {
		api.Use(custommw.RequireViewer(tokenService))
	}

	api.GET("/regions", dashboardHandler.ListRegions)
	api.GET("/dashboard", dashboardHandler.GetDashboard)
	api.PUT("/dashboard/selection", dashboardHandler.UpdateSelection)
	api.POST("/dataset/reload", dashboardHandler.ReloadDataset)

	if cfg.IsDevelopment() {
		devHandler := handlers.NewDevHandler(tokenService, metrics)
		// No auth on purpose: only mounted in development
		e.POST("/api/v1/dev/token", devHandler.IssueViewerToken)
	}

	return e
}
