package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"transaction-management/internal/api"
	"transaction-management/internal/api/handlers"
	"transaction-management/internal/repository"
	"transaction-management/internal/service"
	"transaction-management/pkg/cache"
	"transaction-management/pkg/config"
	"transaction-management/pkg/logger"
	"transaction-management/pkg/postgres"

	"go.uber.org/zap"
)

// @title Transaction Management API
// @version 1.0
// @description Query, import and export financial transactions

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting transaction management service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	txRepo := repository.NewTransactionRepository(postgres.NewPoolAcquirer(db), appLogger)

	// Time zone cache, Redis when configured
	var zoneCache cache.StringCache = cache.Nop{}
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			appLogger.Warn("Redis unavailable, time zone cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			zoneCache = cache.NewRedisCache(client, "tz:", cfg.TimeZone.CacheTTL, appLogger)
		}
	}

	// Initialize services
	tzService := service.NewTimeZoneService(service.NewHTTPClient(cfg.TimeZone.Timeout), &cfg.TimeZone, zoneCache, appLogger)
	txService := service.NewTransactionService(txRepo, appLogger)
	exportService := service.NewExportService(txRepo, appLogger)
	importService := service.NewImportService(txRepo, tzService, appLogger)

	// Initialize handlers
	txHandler := handlers.NewTransactionHandler(txService, exportService, importService, appLogger)

	// Setup router
	app := api.SetupRouter(txHandler, appLogger)
	app.Server().ReadTimeout = cfg.Server.ReadTimeout
	app.Server().WriteTimeout = cfg.Server.WriteTimeout

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
