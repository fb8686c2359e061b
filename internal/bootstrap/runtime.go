// Package bootstrap wires the process-level dependencies shared by the
// server and the CLI tools.
package bootstrap

import (
	"context"
	"fmt"

	"microblog/internal/cache"
	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemo bool
}

// InitRuntime connects to the database and Redis and optionally loads the
// demo fixture. The Redis client is nil when Redis is not configured or
// unreachable.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	r := cache.InitRedis(cfg.RedisURL)

	if opts.SeedDemo {
		if err := seed.Demo(ctx, db, cfg.MediaRoot); err != nil {
			_ = database.Close(db)
			if r != nil {
				_ = r.Close()
			}
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}
