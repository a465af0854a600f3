package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/utafrali/storefront/internal/config"
	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/internal/repository/memory"
	pgrepo "github.com/utafrali/storefront/internal/repository/postgres"
	redisrepo "github.com/utafrali/storefront/internal/repository/redis"
	sqliterepo "github.com/utafrali/storefront/internal/repository/sqlite"
	"github.com/utafrali/storefront/pkg/database"
)

// storage is an opened Persistence Adapter plus its lifecycle hooks.
type storage struct {
	repository.Store
	ping  func(context.Context) error
	close func() error
}

// openStorage connects the backend selected by cfg.StorageDriver. Every
// backend except memory is guarded by a circuit breaker.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	var backend repository.Store

	switch cfg.StorageDriver {
	case config.DriverMemory:
		return &storage{
			Store: memory.New(),
			ping:  func(context.Context) error { return nil },
			close: func() error { return nil },
		}, nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		s, err := sqliterepo.New(db)
		if err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			return nil, err
		}
		logger.Info("using sqlite storage", slog.String("path", cfg.SQLitePath))
		backend = s

	case config.DriverRedis:
		rdb, err := database.NewRedisClient(ctx, cfg.Redis())
		if err != nil {
			return nil, err
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		backend = redisrepo.New(rdb, cfg.RedisKeyPrefix)

	case config.DriverPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
		if err != nil {
			return nil, err
		}
		if err := pgrepo.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		registerCollector(database.NewPoolStatsCollector(pool, config.ServiceName), logger)
		logger.Info("connected to PostgreSQL", slog.String("host", cfg.PostgresHost))
		s := pgrepo.New(pool, logger)
		return &storage{
			Store: repository.NewGuarded(s, cfg.Breaker(), logger),
			ping:  s.Ping,
			close: func() error { pool.Close(); return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	guarded := repository.NewGuarded(backend, cfg.Breaker(), logger)
	return &storage{Store: guarded, ping: guarded.Ping, close: guarded.Close}, nil
}

func registerCollector(c prometheus.Collector, logger *slog.Logger) {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			logger.Warn("failed to register collector", slog.String("error", err.Error()))
		}
	}
}
