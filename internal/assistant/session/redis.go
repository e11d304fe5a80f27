package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"

	errx "github.com/boutiqo/server/internal/core/error"
	logx "github.com/boutiqo/server/pkg/logger"
)

// RedisCache stores each live conversation as one JSON value with a TTL
// that is extended on every write.
type RedisCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisCache(rdb redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) cacheKey(key string) string {
	return fmt.Sprintf("assistant:session:%s", key)
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]*schema.Message, bool, error) {
	raw, err := c.rdb.Get(ctx, c.cacheKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		logx.Error().Err(err).Str("session_key", key).Msg("failed to load session from redis")
		return nil, false, errx.WrapRedis(err)
	}

	var msgs []*schema.Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		logx.Error().Err(err).Str("session_key", key).Msg("failed to unmarshal cached session")
		return nil, false, fmt.Errorf("unmarshal cached session: %w", err)
	}
	return msgs, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, messages []*schema.Message) error {
	b, err := json.Marshal(messages)
	if err != nil {
		logx.Error().Err(err).Str("session_key", key).Msg("failed to marshal session")
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := c.rdb.Set(ctx, c.cacheKey(key), b, c.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("session_key", key).Msg("failed to store session in redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, c.cacheKey(key)).Err(); err != nil {
		logx.Error().Err(err).Str("session_key", key).Msg("failed to drop session from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ Cache = (*RedisCache)(nil)
