package repository

import (
	"context"
	"fmt"

	"movie-quiz/pkg/database"
	"movie-quiz/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Open connects the result store selected by cfg.Database.Driver and, when
// REDIS_ADDR is set, puts the Redis cache in front of it. Postgres migrations
// are applied before the pool is opened.
func Open(ctx context.Context, cfg *utils.Config, log *zap.Logger) (*Repository, error) {
	var (
		result  ResultRepository
		closers []func() error
		cached  bool
	)

	switch cfg.Database.Driver {
	case utils.DriverPostgres:
		applied, err := database.Migrate(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		if len(applied) > 0 {
			log.Info("Applied migrations", zap.Strings("migrations", applied))
		}

		db, err := database.InitDB(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		closers = append(closers, func() error { db.Close(); return nil })
		result = NewPgResultRepository(db, log)

	case utils.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		closers = append(closers, db.Close)
		result = NewSQLiteResultRepository(db, log)

	case utils.DriverMemory:
		log.Warn("Using in-memory result store, results are lost on restart")
		result = NewMemResultRepository(log)

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Database.Driver)
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unreachable, serving without cache", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
			_ = client.Close()
		} else {
			closers = append(closers, client.Close)
			result = NewCachedResultRepository(result, client, cfg.Redis.TTL, log)
			cached = true
		}
	}

	repos := NewRepository(result, cfg.Database.Driver, closers...)
	repos.Cached = cached
	return repos, nil
}
