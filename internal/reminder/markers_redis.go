package reminder

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisMarkerStore struct {
	rdb *redis.Client
}

func NewRedisMarkerStore(rdb *redis.Client) *RedisMarkerStore {
	return &RedisMarkerStore{rdb: rdb}
}

func (s *RedisMarkerStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, key, time.Now().Unix(), ttl).Result()
}

func (s *RedisMarkerStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
