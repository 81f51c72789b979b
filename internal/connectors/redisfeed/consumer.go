package redisfeed

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/you/skin-arb/internal/config"
	"github.com/you/skin-arb/internal/types"
)

type Consumer struct {
	rdb     *redis.Client
	metaNS  string
	rankKey string
	stream  string
}

func NewConsumer(cfg *config.Config) *Consumer {
	return &Consumer{
		rdb:     newClient(cfg),
		metaNS:  cfg.Redis.MetaNS,
		rankKey: cfg.Redis.RankKey,
		stream:  cfg.Redis.Stream,
	}
}

// ReadOpportunity reads HASH <meta_ns><name>. A missing item returns redis.Nil.
func (c *Consumer) ReadOpportunity(ctx context.Context, name string) (types.Opportunity, error) {
	js, err := c.rdb.HGet(ctx, c.metaNS+name, "json").Bytes()
	if err != nil {
		return types.Opportunity{}, err
	}
	var o types.Opportunity
	if err := json.Unmarshal(js, &o); err != nil {
		return types.Opportunity{}, err
	}
	return o, nil
}

// TopByROI returns up to n opportunities with the highest best-direction ROI.
func (c *Consumer) TopByROI(ctx context.Context, n int64) ([]types.Opportunity, error) {
	if n <= 0 {
		return nil, nil
	}
	return c.rankedByROI(ctx, n-1)
}

// AllByROI returns the whole ranking, highest ROI first.
func (c *Consumer) AllByROI(ctx context.Context) ([]types.Opportunity, error) {
	return c.rankedByROI(ctx, -1)
}

func (c *Consumer) rankedByROI(ctx context.Context, stop int64) ([]types.Opportunity, error) {
	names, err := c.rdb.ZRevRange(ctx, c.rankKey, 0, stop).Result()
	if err != nil {
		return nil, err
	}
	out := make([]types.Opportunity, 0, len(names))
	for _, name := range names {
		o, err := c.ReadOpportunity(ctx, name)
		if errors.Is(err, redis.Nil) {
			// ranking and hash are written in one transaction; a miss means
			// a concurrent publish removed the item
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// RecentAlerts returns up to count alerts, newest first.
func (c *Consumer) RecentAlerts(ctx context.Context, count int64) ([]types.Opportunity, error) {
	msgs, err := c.rdb.XRevRangeN(ctx, c.stream, "+", "-", count).Result()
	if err != nil {
		return nil, err
	}
	out := make([]types.Opportunity, 0, len(msgs))
	for _, m := range msgs {
		js, ok := m.Values["json"].(string)
		if !ok {
			continue
		}
		var o types.Opportunity
		if err := json.Unmarshal([]byte(js), &o); err != nil {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (c *Consumer) Close() error { return c.rdb.Close() }
