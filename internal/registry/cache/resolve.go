// Package cache provides the Redis-backed resolve cache. Resolution is
// documented as possibly stale, so entries expire on a TTL rather than being
// invalidated transactionally; mutating operations overwrite the entry on
// their way out.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cidreg/pkg/domain"
)

const defaultTTL = 5 * time.Minute

// unboundMarker caches "record exists, no target". Addresses cannot be empty,
// so the empty string is free to carry that meaning.
const unboundMarker = ""

// RedisResolveCache implements ports.ResolveCache on a Redis client.
type RedisResolveCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
}

type Option func(*RedisResolveCache)

func WithTTL(ttl time.Duration) Option {
	return func(c *RedisResolveCache) {
		c.ttl = ttl
	}
}

func NewRedisResolveCache(client redis.UniversalClient, opts ...Option) *RedisResolveCache {
	c := &RedisResolveCache{
		client: client,
		ttl:    defaultTTL,
		prefix: "cidreg:resolve:",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisResolveCache) key(cid domain.CID) string {
	return c.prefix + cid.String()
}

func (c *RedisResolveCache) Get(ctx context.Context, cid domain.CID) (*domain.Address, bool, error) {
	val, err := c.client.Get(ctx, c.key(cid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("resolve cache get %s: %w", cid, err)
	}
	if val == unboundMarker {
		return nil, true, nil
	}
	target := domain.Address(val)
	return &target, true, nil
}

func (c *RedisResolveCache) Set(ctx context.Context, cid domain.CID, target *domain.Address) error {
	val := unboundMarker
	if target != nil {
		val = target.String()
	}
	if err := c.client.Set(ctx, c.key(cid), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("resolve cache set %s: %w", cid, err)
	}
	return nil
}
