package redisfeed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/you/skin-arb/internal/config"
	"github.com/you/skin-arb/internal/types"
)

// Publisher mirrors the latest batch into Redis:
//
//	HASH <meta_ns><item>  json, best_roi, ts_ms, batch
//	ZSET <rank_key>       item scored by best ROI
//	STREAM <stream>       risk-approved items
//
// Only the latest batch is kept; items that disappeared are removed.
type Publisher struct {
	rdb       *redis.Client
	metaNS    string
	rankKey   string
	stream    string
	streamMax int64
}

func NewPublisher(cfg *config.Config) *Publisher {
	return &Publisher{
		rdb:       newClient(cfg),
		metaNS:    cfg.Redis.MetaNS,
		rankKey:   cfg.Redis.RankKey,
		stream:    cfg.Redis.Stream,
		streamMax: cfg.Redis.StreamMax,
	}
}

func (p *Publisher) PublishBatch(ctx context.Context, b types.Batch, alerts []types.Opportunity) error {
	tsMs := b.ComputedAt.UnixMilli()

	prev, err := p.rdb.ZRange(ctx, p.rankKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("read ranking: %w", err)
	}
	current := make(map[string]struct{}, len(b.Opportunities))

	pipe := p.rdb.TxPipeline()
	for _, o := range b.Opportunities {
		current[o.ItemName] = struct{}{}
		js, err := json.Marshal(o)
		if err != nil {
			return err
		}
		pipe.HSet(ctx, p.metaNS+o.ItemName, map[string]interface{}{
			"json":     js,
			"best_roi": o.BestROI,
			"ts_ms":    tsMs,
			"batch":    b.ID,
		})
		pipe.ZAdd(ctx, p.rankKey, redis.Z{Score: o.BestROI, Member: o.ItemName})
	}
	for _, name := range prev {
		if _, ok := current[name]; ok {
			continue
		}
		pipe.ZRem(ctx, p.rankKey, name)
		pipe.Del(ctx, p.metaNS+name)
	}
	for _, o := range alerts {
		js, err := json.Marshal(o)
		if err != nil {
			return err
		}
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: p.stream,
			MaxLen: p.streamMax,
			Approx: true,
			Values: map[string]interface{}{
				"item":  o.ItemName,
				"batch": b.ID,
				"json":  js,
			},
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish batch %s: %w", b.ID, err)
	}
	return nil
}

func (p *Publisher) Close() error { return p.rdb.Close() }
