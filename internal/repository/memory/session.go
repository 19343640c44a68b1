package memory

import (
	"context"
	"sync"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// SessionCache implements repository.SessionCache in process memory.
type SessionCache struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewSessionCache creates an empty in-memory session cache.
func NewSessionCache() *SessionCache {
	return &SessionCache{data: make(map[string]string)}
}

func (c *SessionCache) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.data[key]
	if !ok {
		return "", apperrors.NotFound("session key", key)
	}
	return v, nil
}

func (c *SessionCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *SessionCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}
