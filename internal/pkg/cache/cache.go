// Package cache keeps short-lived JSON snapshots, backed by redis when
// configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/growthpath/internal/config"
	"github.com/yigit/growthpath/internal/pkg/logger"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

// Cache stores JSON-encoded values.
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// RedisCache implements Cache on a redis client.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to redis and pings it once.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return &RedisCache{client: client, prefix: "growthpath:"}, nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, prefix: "growthpath:"}
}

func (c *RedisCache) Get(ctx context.Context, key string, dst interface{}) error {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, raw, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	return c.client.Del(ctx, full...).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) error                { return ErrMiss }
func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error                       { return nil }
func (Noop) Close() error                                                  { return nil }

// New returns a redis cache when enabled. A redis that cannot be reached
// degrades to Noop so the API keeps serving from the database.
func New(ctx context.Context, cfg config.RedisConfig) Cache {
	if !cfg.Enabled {
		return Noop{}
	}
	c, err := NewRedis(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, progress cache disabled")
		return Noop{}
	}
	logger.Info().Str("addr", cfg.Addr).Msg("Redis cache connected")
	return c
}

// ProgressKey is the cache key of a user's progress snapshot.
func ProgressKey(userID string) string {
	return "progress:" + userID
}
