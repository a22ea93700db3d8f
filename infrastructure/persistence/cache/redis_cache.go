package cache

import (
	"context"
	"errors"
	"fmt"

	"venus-backend/application/ports"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check to ensure RedisCache implements DurableCache
var _ ports.DurableCache = (*RedisCache)(nil)

// RedisCache keeps the slot in a single Redis string key without expiry
type RedisCache struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewRedisCache creates a new Redis-backed cache slot
func NewRedisCache(client *redis.Client, key string, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		key:    key,
		logger: logger.Named("redis_cache"),
	}
}

// Read returns the slot contents
func (c *RedisCache) Read(ctx context.Context) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("Failed to read cache slot from redis", zap.Error(err), zap.String("key", c.key))
		return nil, false, fmt.Errorf("failed to read cache slot from redis: %w", err)
	}
	return data, true, nil
}

// Write replaces the slot contents
func (c *RedisCache) Write(ctx context.Context, data []byte) error {
	if err := c.client.Set(ctx, c.key, data, 0).Err(); err != nil {
		c.logger.Error("Failed to write cache slot to redis", zap.Error(err), zap.String("key", c.key))
		return fmt.Errorf("failed to write cache slot to redis: %w", err)
	}
	return nil
}

// Ping checks the Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// NewRedisClient opens a client and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}
