package pricelist

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Cache stores raw price list bodies for a limited time.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

type memEntry struct {
	val []byte
	exp time.Time
}

// MemoryCache is the in-process Cache used when Redis is not configured.
type MemoryCache struct {
	mu  sync.RWMutex
	m   map[string]memEntry
	now func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: make(map[string]memEntry, 4), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.exp) {
		return nil, false, nil
	}
	return e.val, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.m[key] = memEntry{val: val, exp: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// CachedSource serves price lists from cache while they are fresh and falls
// through to the upstream source otherwise. Cache failures are logged and
// never fail the fetch.
type CachedSource struct {
	src   Source
	cache Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedSource(src Source, cache Cache, ttl time.Duration, log *zap.Logger) *CachedSource {
	return &CachedSource{src: src, cache: cache, ttl: ttl, log: log}
}

func (s *CachedSource) Fetch(ctx context.Context, feed Feed) ([]byte, error) {
	key := string(feed)
	if s.ttl > 0 {
		b, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn("price list cache read failed", zap.String("feed", key), zap.Error(err))
		} else if ok {
			return b, nil
		}
	}

	b, err := s.src.Fetch(ctx, feed)
	if err != nil {
		return nil, err
	}
	if s.ttl > 0 {
		if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
			s.log.Warn("price list cache write failed", zap.String("feed", key), zap.Error(err))
		}
	}
	return b, nil
}
