package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
)

// Cache holds the live conversation per scope key. The in-memory driver is
// the default; the Redis driver allows multi-instance deployments to share
// sessions.
type Cache interface {
	Get(ctx context.Context, key string) ([]*schema.Message, bool, error)
	Set(ctx context.Context, key string, messages []*schema.Message) error
	Delete(ctx context.Context, key string) error
}

// Config selects and tunes the cache driver.
type Config struct {
	Driver string        `envconfig:"SESSION_CACHE_DRIVER" default:"memory"`
	TTL    time.Duration `envconfig:"SESSION_CACHE_TTL" default:"15m"`
}

// NewCache builds the configured driver. The Redis driver requires a client.
func NewCache(cfg Config, rdb redis.Cmdable) (Cache, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryCache(), nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("session cache driver %q requires a redis client", cfg.Driver)
		}
		return NewRedisCache(rdb, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown session cache driver %q", cfg.Driver)
	}
}

// MemoryCache is a process-local mutex-guarded map.
type MemoryCache struct {
	mu       sync.RWMutex
	sessions map[string][]*schema.Message
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{sessions: make(map[string][]*schema.Message)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]*schema.Message, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	msgs, ok := c.sessions[key]
	if !ok {
		return nil, false, nil
	}
	// copy so callers can append without mutating the cached backing array
	out := make([]*schema.Message, len(msgs))
	copy(out, msgs)
	return out, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, messages []*schema.Message) error {
	stored := make([]*schema.Message, len(messages))
	copy(stored, messages)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[key] = stored
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, key)
	return nil
}
