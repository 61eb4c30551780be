package views

import (
	"context"
	"errors"
	"fmt"

	"github.com/qiushui/site-core/internal/config"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps carries the shared connections a backend may need.
type Deps struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// OpenStore builds the backend selected by views.backend. The returned close
// func releases resources owned by the store and is never nil.
func OpenStore(ctx context.Context, cfg *config.AppConfig, deps Deps) (Store, func(), error) {
	noop := func() {}
	switch cfg.Views.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.ViewsFile()), noop, nil
	case config.BackendDatabase:
		if deps.DB == nil {
			return nil, noop, errors.New("views backend database requires a database connection")
		}
		return NewGormStore(deps.DB), noop, nil
	case config.BackendRedis:
		if deps.Redis == nil {
			return nil, noop, errors.New("views backend redis requires redis.enable")
		}
		return NewRedisStore(deps.Redis, cfg.Views.RedisKey), noop, nil
	case config.BackendPostgres:
		pool, err := ConnectPostgres(ctx, cfg.Postgres.URL, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, noop, err
		}
		store := NewPostgresStore(pool)
		if cfg.Postgres.EnsureSchema {
			if err := store.EnsureSchema(ctx); err != nil {
				pool.Close()
				return nil, noop, fmt.Errorf("ensure post_views schema: %w", err)
			}
		}
		return store, pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown views backend %q", cfg.Views.Backend)
	}
}
