package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/config"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/ports"
)

// RedisPageCache caches rendered page bodies in Redis.
type RedisPageCache struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker
}

var _ ports.PageCache = (*RedisPageCache)(nil)

func NewRedisPageCache(client *redis.Client) *RedisPageCache {
	return &RedisPageCache{
		client: client,
		cb:     config.NewCircuitBreaker("Redis-PageCache"),
	}
}

func (c *RedisPageCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.cb.Execute(func() (interface{}, error) {
		return c.client.Get(ctx, key).Result()
	})
	if err != nil {
		return "", err
	}
	return val.(string), nil
}

func (c *RedisPageCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.client.Set(ctx, key, value, ttl).Err()
	})
	return err
}

func (c *RedisPageCache) Invalidate(ctx context.Context, key string) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.client.Del(ctx, key).Err()
	})
	return err
}
