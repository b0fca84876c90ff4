package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const cacheKeyPrefix = "cache:"

// ListCache caches serialized list pages. Every key is registered in a
// per-resource namespace set so a mutation can drop the whole resource
// in one call. Cache failures are soft: reads report a miss, writes log
// and move on.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewListCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *ListCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ListCache{client: client, ttl: ttl, log: log}
}

func namespaceKey(resource string) string {
	return cacheKeyPrefix + "ns:" + resource
}

func (c *ListCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return nil, false
	}
	return payload, true
}

func (c *ListCache) Set(ctx context.Context, resource, key string, payload []byte) {
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, payload, c.ttl)
	pipe.SAdd(ctx, namespaceKey(resource), key)
	// The namespace set outlives its members so invalidation still finds
	// expired keys; harmless DELs.
	pipe.Expire(ctx, namespaceKey(resource), 2*c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn().Err(err).Str("resource", resource).Msg("cache write failed")
	}
}

func (c *ListCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache delete failed")
	}
}

func (c *ListCache) InvalidateResource(ctx context.Context, resource string) {
	ns := namespaceKey(resource)
	keys, err := c.client.SMembers(ctx, ns).Result()
	if err != nil {
		c.log.Warn().Err(err).Str("resource", resource).Msg("cache invalidation failed")
		return
	}
	keys = append(keys, ns)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Str("resource", resource).Msg("cache invalidation failed")
	}
}
