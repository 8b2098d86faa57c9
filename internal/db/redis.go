package db

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/medcare-api/internal/config"
)

// NewRedis returns nil when REDIS_URL is unset or unreachable; callers
// fall back to the Postgres marker table.
func NewRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("invalid REDIS_URL, ignoring: %v", err)
		return nil
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable, ignoring: %v", err)
		_ = rdb.Close()
		return nil
	}

	return rdb
}
