package redisfeed

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/skin-arb/internal/config"
)

// FeedCache keeps raw price list bodies under <feed_ns><feed> with a TTL so
// several instances share one upstream download.
type FeedCache struct {
	rdb *redis.Client
	ns  string
}

func NewFeedCache(cfg *config.Config) *FeedCache {
	return &FeedCache{rdb: newClient(cfg), ns: cfg.Redis.FeedNS}
}

func (c *FeedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, c.ns+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *FeedCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, c.ns+key, val, ttl).Err()
}

func (c *FeedCache) Ping(ctx context.Context) error { return c.rdb.Ping(ctx).Err() }

func (c *FeedCache) Close() error { return c.rdb.Close() }
