// file: cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"picnicquest/internal/cache"
	"picnicquest/internal/config"
	"picnicquest/internal/database"
	"picnicquest/internal/events"
	"picnicquest/internal/repositories"
	"picnicquest/internal/router"
	"picnicquest/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(&cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting PicnicQuest",
		zap.String("environment", cfg.Server.Environment),
		zap.String("address", cfg.Server.Addr()),
	)

	// Database
	manager, err := database.Init(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer manager.Close()

	// Cache
	cacheConfig := cache.DefaultConfig()
	cacheConfig.TTL = cfg.Redis.TTL
	cacheConfig.RedisURL = cfg.Redis.URL
	cacheConfig.RedisDB = cfg.Redis.DB
	cacheConfig.RedisPassword = cfg.Redis.Password
	cacheInstance, err := cache.New(cacheConfig, logger)
	if err != nil {
		logger.Fatal("Failed to create cache", zap.Error(err))
	}
	defer cacheInstance.Close()

	// Event bus
	bus := events.NewEventBus(events.DefaultEventBusConfig(), logger)
	if err := bus.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Repositories and services
	repos := repositories.NewCollection(manager, logger)
	serviceCollection, err := services.NewServiceCollection(repos, cfg, bus, cacheInstance, logger)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	// Router
	handler, err := router.New(&router.Dependencies{
		Services:           serviceCollection,
		Manager:            manager,
		Cache:              cacheInstance,
		Bus:                bus,
		Logger:             logger,
		MaskInternalErrors: cfg.Server.IsProduction(),
	})
	if err != nil {
		logger.Fatal("Failed to build router", zap.Error(err))
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("HTTP server listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := bus.Stop(shutdownCtx); err != nil {
		logger.Error("Event bus shutdown failed", zap.Error(err))
	}

	metrics := manager.Metrics()
	logger.Info("Final database metrics",
		zap.Int64("query_count", metrics.QueryCount),
		zap.Int64("error_count", metrics.ErrorCount),
		zap.Int64("slow_query_count", metrics.SlowQueryCount),
	)

	logger.Info("Shutdown completed")
}

// initLogger builds the structured logger from the logging settings
func initLogger(cfg *config.LoggingConfig) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zapConfig.Level = level

	return zapConfig.Build()
}
