package marketdata

import (
	"context"
	"sync"
	"time"

	"github.com/you/skin-arb/internal/config"
	"github.com/you/skin-arb/internal/connectors/pricelist"
	imetrics "github.com/you/skin-arb/internal/metrics"
	"go.uber.org/zap"
)

// FetchSnapshot downloads both price lists concurrently and joins them. A
// feed that fails to download or decode is replaced by an empty map so the
// caller still gets a (degraded) snapshot.
func FetchSnapshot(ctx context.Context, src pricelist.Source, log *zap.Logger) Snapshot {
	snap := Snapshot{
		Buff163: map[string]BuffEntry{},
		CSFloat: map[string]CSFloatEntry{},
		Errors:  map[pricelist.Feed]error{},
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	fail := func(feed pricelist.Feed, err error) {
		imetrics.FeedFetchErrors.WithLabelValues(string(feed)).Inc()
		log.Warn("marketdata: feed unavailable, using empty price list", zap.String("feed", string(feed)), zap.Error(err))
		mu.Lock()
		snap.Errors[feed] = err
		mu.Unlock()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		body, err := src.Fetch(ctx, pricelist.Buff163)
		if err != nil {
			fail(pricelist.Buff163, err)
			return
		}
		m, skipped, err := DecodeBuff163(body)
		if err != nil {
			fail(pricelist.Buff163, err)
			return
		}
		logSkipped(log, pricelist.Buff163, skipped)
		imetrics.FeedItems.WithLabelValues(string(pricelist.Buff163)).Set(float64(len(m)))
		mu.Lock()
		snap.Buff163 = m
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		body, err := src.Fetch(ctx, pricelist.CSFloat)
		if err != nil {
			fail(pricelist.CSFloat, err)
			return
		}
		m, skipped, err := DecodeCSFloat(body)
		if err != nil {
			fail(pricelist.CSFloat, err)
			return
		}
		logSkipped(log, pricelist.CSFloat, skipped)
		imetrics.FeedItems.WithLabelValues(string(pricelist.CSFloat)).Set(float64(len(m)))
		mu.Lock()
		snap.CSFloat = m
		mu.Unlock()
	}()
	wg.Wait()

	snap.Ts = time.Now()
	return snap
}

func logSkipped(log *zap.Logger, feed pricelist.Feed, n int) {
	if n > 0 {
		log.Debug("marketdata: skipped malformed entries", zap.String("feed", string(feed)), zap.Int("count", n))
	}
}

// Run emits a snapshot right away and then once per refresh interval until
// ctx is done. Snapshots are dropped when out is full.
func Run(ctx context.Context, cfg *config.Config, src pricelist.Source, out chan<- Snapshot, log *zap.Logger) {
	t := time.NewTicker(cfg.RefreshInterval())
	defer t.Stop()

	for {
		snap := FetchSnapshot(ctx, src, log)
		if ctx.Err() != nil {
			return
		}
		select {
		case out <- snap:
		default:
			log.Warn("marketdata: snapshot channel full; dropping")
		}

		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
