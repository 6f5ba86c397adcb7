// file: internal/database/database.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"picnicquest/internal/config"
)

// Init creates the database manager, applies migrations and waits for
// the database to report healthy.
func Init(cfg *config.Config, logger *zap.Logger) (*Manager, error) {
	applyEnvironmentDefaults(&cfg.Database, cfg.Server.Environment)

	manager, err := NewManager(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := runMigrationsWithRetry(manager, logger, 3); err != nil {
		manager.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout(cfg.Server.Environment))
	defer cancel()

	if err := manager.health.WaitForHealthy(ctx, healthTimeout(cfg.Server.Environment)); err != nil {
		manager.Close()
		return nil, fmt.Errorf("database failed to become healthy: %w", err)
	}

	manager.StartMonitoring()

	stats := manager.Stats()
	logger.Info("Database initialized",
		zap.Int("max_open_connections", stats.MaxOpenConnections),
		zap.Int("open_connections", stats.OpenConnections),
	)

	return manager, nil
}

// applyEnvironmentDefaults fills unset pool settings per environment.
func applyEnvironmentDefaults(cfg *config.DatabaseConfig, environment string) {
	switch environment {
	case "production":
		if cfg.MaxOpenConns == 0 {
			cfg.MaxOpenConns = 50
		}
		if cfg.MaxIdleConns == 0 {
			cfg.MaxIdleConns = 20
		}
		if cfg.ConnMaxLifetime == 0 {
			cfg.ConnMaxLifetime = 15 * time.Minute
		}
		if cfg.SlowQueryThreshold == 0 {
			cfg.SlowQueryThreshold = 200 * time.Millisecond
		}
	default:
		if cfg.MaxOpenConns == 0 {
			cfg.MaxOpenConns = 10
		}
		if cfg.MaxIdleConns == 0 {
			cfg.MaxIdleConns = 5
		}
		if cfg.ConnMaxLifetime == 0 {
			cfg.ConnMaxLifetime = 5 * time.Minute
		}
		if cfg.SlowQueryThreshold == 0 {
			cfg.SlowQueryThreshold = 50 * time.Millisecond
		}
	}

	if cfg.HealthCheckInterval == 0 {
		cfg.HealthCheckInterval = 30 * time.Second
	}
	if cfg.MaxIdleConns > cfg.MaxOpenConns {
		cfg.MaxIdleConns = cfg.MaxOpenConns
	}
}

func runMigrationsWithRetry(manager *Manager, logger *zap.Logger, maxRetries int) error {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := manager.Migrate(); err != nil {
			lastErr = err
			if attempt < maxRetries {
				waitTime := time.Duration(attempt) * time.Second
				logger.Warn("Migration attempt failed, retrying",
					zap.Error(err),
					zap.Int("attempt", attempt),
					zap.Duration("retry_in", waitTime),
				)
				time.Sleep(waitTime)
				continue
			}
		} else {
			return nil
		}
	}

	return fmt.Errorf("migrations failed after %d attempts: %w", maxRetries, lastErr)
}

func healthTimeout(environment string) time.Duration {
	if environment == "production" {
		return 60 * time.Second
	}
	return 30 * time.Second
}

// ExecuteTransaction runs fn inside a transaction, rolling back on
// error or panic.
func ExecuteTransaction(ctx context.Context, manager *Manager, fn func(*sql.Tx) error) error {
	tx, err := manager.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed: %v, rollback failed: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
