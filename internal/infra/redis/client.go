package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/arklim/steam-friend-adder/internal/infra/config"
)

// Client wraps redis.Client with a connect-time health check.
type Client struct {
	client *redis.Client
	logger *zap.Logger
}

// NewClient opens a Redis connection and verifies it with a ping.
func NewClient(cfg config.RedisSettings, logger *zap.Logger) (*Client, error) {
	opts := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("connected to redis", zap.String("addr", opts.Addr), zap.Int("db", cfg.DB))

	return &Client{client: client, logger: logger}, nil
}

// Client exposes the underlying go-redis client.
func (c *Client) Client() *redis.Client {
	return c.client
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.client.Close()
}
