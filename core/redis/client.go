package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client defines the interface for the Redis commands the application
// uses. Counters are INCR keys; the recently-updated item list is a
// LREM/LPUSH/LTRIM-maintained list.
type Client interface {
	// Incr atomically increments a counter key and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
	// MGet fetches multiple keys; missing keys yield nil entries.
	MGet(ctx context.Context, keys ...string) ([]interface{}, error)
	// LRem removes count occurrences of value from a list.
	LRem(ctx context.Context, key string, count int64, value interface{}) error
	// LPush prepends a value to a list.
	LPush(ctx context.Context, key string, value interface{}) error
	// LTrim trims a list to the given inclusive range.
	LTrim(ctx context.Context, key string, start, stop int64) error
	// LRange returns the list elements in the given inclusive range.
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	// Close releases the connection pool.
	Close() error
}

// Connect creates a Redis client from the configuration and verifies the
// connection with a ping. Redis holds the hot upload counters and the
// recently-updated item list, not the market records themselves.
func Connect(cfg Config) (Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisClientWrapper{client: client}, nil
}

type redisClientWrapper struct {
	client *redis.Client
}

func (c *redisClientWrapper) Incr(ctx context.Context, key string) (int64, error) {
	return c.client.Incr(ctx, key).Result()
}

func (c *redisClientWrapper) MGet(ctx context.Context, keys ...string) ([]interface{}, error) {
	return c.client.MGet(ctx, keys...).Result()
}

func (c *redisClientWrapper) LRem(ctx context.Context, key string, count int64, value interface{}) error {
	return c.client.LRem(ctx, key, count, value).Err()
}

func (c *redisClientWrapper) LPush(ctx context.Context, key string, value interface{}) error {
	return c.client.LPush(ctx, key, value).Err()
}

func (c *redisClientWrapper) LTrim(ctx context.Context, key string, start, stop int64) error {
	return c.client.LTrim(ctx, key, start, stop).Err()
}

func (c *redisClientWrapper) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return c.client.LRange(ctx, key, start, stop).Result()
}

func (c *redisClientWrapper) Close() error {
	return c.client.Close()
}
