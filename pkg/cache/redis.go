package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StringCache stores short string values under string keys.
type StringCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// RedisCache is a StringCache backed by Redis. Keys are namespaced with prefix
// and expire after ttl (0 keeps them forever).
type RedisCache struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCache(client *goredis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

// Get returns ("", false) on a miss or any Redis error.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return value, true
}

// Set stores value. Write failures are logged, not returned.
func (c *RedisCache) Set(ctx context.Context, key, value string) {
	if err := c.client.Set(ctx, c.prefix+key, value, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (string, bool) { return "", false }
func (Nop) Set(context.Context, string, string)        {}

// NewRedisClient connects to Redis and verifies the connection with a ping.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}
