package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisCache backs the cache with a Redis instance.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

var _ Repository = (*RedisCache)(nil)

// NewRedisCache connects to the Redis server at addr.
func NewRedisCache(addr string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: rdb,
		ctx:    context.Background(),
	}
}

func (r *RedisCache) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}
