// Package repository selects the storage backend named in configuration.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"irportal/internal/config"
	"irportal/internal/domain/repositories"
	"irportal/internal/repository/kv"
	"irportal/internal/repository/postgres"
)

// Open connects to the configured backend and returns its repositories.
// Postgres migrations run first when MigrateOnStart is set.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositories.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		if cfg.MigrateOnStart {
			if err := postgres.Migrate(cfg.DatabaseURL, logger); err != nil {
				return nil, err
			}
		}

		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Info("database connected", "backend", config.BackendPostgres)
		return postgres.NewStore(pool, logger), nil

	case config.BackendKV:
		client, err := kv.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("key/value store connected", "backend", config.BackendKV, "prefix", cfg.KeyPrefix)
		return kv.NewStore(client, cfg.KeyPrefix, logger), nil

	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q (want %s or %s)",
			cfg.StorageBackend, config.BackendPostgres, config.BackendKV)
	}
}
