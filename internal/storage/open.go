package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/skillsphere/learner-store/internal/config"
)

// Open creates the Driver selected by cfg.Storage.Driver.
// Postgres migrations are applied before the backend is returned.
func Open(ctx context.Context, cfg *config.Config) (Driver, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		slog.Warn("using in-memory storage, learner data is lost on restart")
		return NewMemoryBackend(), nil

	case config.DriverRedis:
		backend, err := NewRedisBackend(ctx, RedisConfig{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return backend, nil

	case config.DriverPostgres:
		applied, err := MigrateFromDSN(ctx, cfg.Database.DSN, Migrations(cfg.Database.MigrationsDir))
		if err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		slog.Info("database migrations complete", "applied", applied)

		backend, err := NewPostgresBackend(ctx, PostgresConfig{
			DSN:          cfg.Database.DSN,
			MaxOpenConns: int32(cfg.Database.MaxOpenConns),
			MaxIdleConns: int32(cfg.Database.MaxIdleConns),
		})
		if err != nil {
			return nil, err
		}
		return backend, nil

	case config.DriverSQLite:
		backend, err := NewSQLiteBackend(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return backend, nil
	}

	return nil, fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
}
