package bot

import (
	"context"
	"time"

	"github.com/you/skin-arb/internal/config"
	"github.com/you/skin-arb/internal/connectors/pricelist"
	"github.com/you/skin-arb/internal/connectors/redisfeed"
	"github.com/you/skin-arb/internal/dash"
	"github.com/you/skin-arb/internal/detector"
	"github.com/you/skin-arb/internal/marketdata"
	imetrics "github.com/you/skin-arb/internal/metrics"
	"github.com/you/skin-arb/internal/risk"
	"github.com/you/skin-arb/internal/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// maxLoggedAlerts caps the per-batch alert log lines; the full list still
// goes to Redis.
const maxLoggedAlerts = 10

type batchPublisher interface {
	PublishBatch(ctx context.Context, b types.Batch, alerts []types.Opportunity) error
}

// Bot manages the application's lifecycle and components.
type Bot struct {
	cfg   *config.Config
	log   *zap.Logger
	store *dash.Store
	hub   *dash.Hub
	risk  *risk.Engine
	pub   batchPublisher
}

func New(cfg *config.Config, log *zap.Logger) *Bot {
	return &Bot{
		cfg:   cfg,
		log:   log,
		store: dash.NewStore(),
		hub:   dash.NewHub(log),
		risk:  risk.NewEngine(cfg),
	}
}

// Run serves the dashboard and refreshes opportunities until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	imetrics.Serve(ctx, b.cfg.Metrics.ListenAddr, nil, b.log)

	cache, closeCache := b.feedCache(ctx)
	defer closeCache()
	src := pricelist.NewCachedSource(pricelist.NewClient(b.cfg, b.log), cache, b.cfg.CacheTTL(), b.log)

	if b.cfg.Redis.Addr != "" && b.pub == nil {
		pub := redisfeed.NewPublisher(b.cfg)
		defer pub.Close()
		b.pub = pub
	}

	srv := dash.NewServer(b.store, src, b.hub, b.log)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.StartHTTP(ctx, b.cfg.Dash.ListenAddr) }()

	mdCh := make(chan marketdata.Snapshot, 4)
	batchCh := make(chan types.Batch, 4)
	go marketdata.Run(ctx, b.cfg, src, mdCh, b.log)
	go detector.Run(ctx, b.cfg, mdCh, batchCh, b.log)

	b.log.Info("skin-arb started",
		zap.String("dash", b.cfg.Dash.ListenAddr),
		zap.Duration("refresh", b.cfg.RefreshInterval()),
		zap.Bool("redis", b.cfg.Redis.Addr != ""),
	)

	for {
		select {
		case <-ctx.Done():
			b.log.Info("skin-arb finished")
			return nil
		case err := <-errCh:
			if err != nil {
				b.log.Error("dash server failed", zap.Error(err))
				return err
			}
		case batch := <-batchCh:
			b.apply(ctx, batch)
		}
	}
}

// feedCache prefers Redis so instances share downloads; an unreachable
// Redis falls back to the in-process cache. The returned func releases the
// cache's connections.
func (b *Bot) feedCache(ctx context.Context) (pricelist.Cache, func() error) {
	noop := func() error { return nil }
	if b.cfg.Redis.Addr == "" {
		return pricelist.NewMemoryCache(), noop
	}
	fc := redisfeed.NewFeedCache(b.cfg)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := fc.Ping(pingCtx); err != nil {
		b.log.Warn("redis unreachable, using in-memory feed cache", zap.String("addr", b.cfg.Redis.Addr), zap.Error(err))
		_ = fc.Close()
		return pricelist.NewMemoryCache(), noop
	}
	return fc, fc.Close
}

func (b *Bot) apply(ctx context.Context, batch types.Batch) {
	sum := b.store.Replace(batch)

	imetrics.Opportunities.Set(float64(sum.Total))
	imetrics.ProfitableOpportunities.Set(float64(sum.Profitable))
	imetrics.BestROI.Set(sum.BestROI)

	b.hub.Broadcast(sum)

	alerts := b.risk.Filter(batch.Opportunities)
	for i, o := range alerts {
		if i == maxLoggedAlerts {
			b.log.Info("more opportunities passed the risk filter", zap.Int("not_logged", len(alerts)-i))
			break
		}
		b.log.Info("opportunity",
			zap.String("item", o.ItemName),
			zap.String("direction", string(o.BestDirection)),
			zap.Float64("buff163_px", o.Buff163Price),
			zap.Float64("csfloat_px", o.CSFloatPrice),
			zap.Float64("net_usd", o.BestProfit),
			zap.Float64("roi_pct", o.BestROI),
			zap.String("reliability", string(o.Reliability)),
		)
	}

	if b.pub != nil {
		if err := b.pub.PublishBatch(ctx, batch, alerts); err != nil {
			b.log.Warn("redis publish failed", zap.String("batch", batch.ID), zap.Error(err))
		} else {
			imetrics.AlertsPublished.Add(float64(len(alerts)))
		}
	}

	b.log.Info("batch applied",
		zap.String("batch", sum.BatchID),
		zap.Int("total", sum.Total),
		zap.Int("profitable", sum.Profitable),
		zap.Int("alerts", len(alerts)),
		zap.Float64("best_roi_pct", sum.BestROI),
		zap.Any("feed_errors", sum.FeedErrors),
	)
}

func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.CallerKey = "caller"
	cfg.EncoderConfig.StacktraceKey = "stacktrace"
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	cfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg.Build()
}
