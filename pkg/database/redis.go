// Package database opens the Redis connection behind the shared session
// cache and instruments it with spans, slow command logs and pool metrics.
package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DefaultRedisConfig returns the local development defaults.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{Addr: "localhost:6379"}
}

// NewRedisClient creates a traced Redis client and verifies the connection.
// The client is closed again when the ping fails.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	client.AddHook(tracingHook{})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	return client, nil
}
