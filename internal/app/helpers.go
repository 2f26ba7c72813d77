package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-courier-tracking/internal/logx"
	"service-courier-tracking/internal/repository"
)

var (
	newPool = repository.NewPool
	migrate = repository.Migrate
)

func connectDbWithRetry(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error) {
	var lastErr error
	const attemptTimeout = 3 * time.Second
	for i := 1; i <= retries; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		pool, err := newPool(attemptCtx, dsn)
		cancel()
		if err == nil {
			logger.Info("db connected", logx.Event("db_connected"), logx.Int("attempt", i))
			return pool, nil
		}
		lastErr = err
		logger.Warn("db connect failed",
			logx.Event("db_connect_failed"),
			logx.Int("attempt", i),
			logx.Int("retries", retries),
			logx.Err(err),
		)
		if i < retries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, fmt.Errorf("db connect failed after %d attempts: %w", retries, lastErr)
}

// migrateWithRetry applies migrations once the database accepts
// connections; it shares the retry budget of the pool connect.
func migrateWithRetry(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) error {
	var lastErr error
	for i := 1; i <= retries; i++ {
		lastErr = migrate(ctx, dsn, repository.MigrateUp)
		if lastErr == nil {
			logger.Info("migrations applied", logx.Event("migrations_applied"))
			return nil
		}
		logger.Warn("migrate failed",
			logx.Event("migrate_failed"),
			logx.Int("attempt", i),
			logx.Err(lastErr),
		)
		if i < retries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return fmt.Errorf("migrate failed after %d attempts: %w", retries, lastErr)
}
