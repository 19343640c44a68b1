package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

const keyPrefix = "storefront:session:"

// SessionCache implements repository.SessionCache using Redis so that several
// companion processes on one machine share a session.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a Redis-backed session cache. A zero ttl keeps keys
// until they are deleted.
func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves a session value from Redis.
func (c *SessionCache) Get(ctx context.Context, key string) (string, error) {
	v, err := c.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.NotFound("session key", key)
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

// Set stores a session value with the configured TTL.
func (c *SessionCache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, keyPrefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes session values from Redis.
func (c *SessionCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = keyPrefix + k
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
