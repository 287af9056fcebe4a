// internal/infrastructure/database/redis/connection.go
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/config"
)

// Client wraps the Redis client
type Client struct {
	redis *redis.Client
	log   *logrus.Entry
}

// NewConnection creates a new Redis connection
func NewConnection(cfg *config.Config, log *logrus.Entry) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("redis connection established")

	return &Client{redis: rdb, log: log}, nil
}

// GetClient returns the Redis client instance
func (c *Client) GetClient() *redis.Client {
	return c.redis
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.redis.Close()
}

// Health checks the Redis connection health
func (c *Client) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return c.redis.Ping(ctx).Err()
}
