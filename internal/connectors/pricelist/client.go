package pricelist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/you/skin-arb/internal/config"
	imetrics "github.com/you/skin-arb/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Feed names a marketplace price list.
type Feed string

const (
	Buff163 Feed = "buff163"
	CSFloat Feed = "csfloat"
)

// Feeds lists every supported feed in a stable order.
var Feeds = []Feed{Buff163, CSFloat}

var ErrUnknownFeed = errors.New("unknown feed")

// Source returns the raw JSON body of a price list.
type Source interface {
	Fetch(ctx context.Context, feed Feed) ([]byte, error)
}

type Client struct {
	urls    map[Feed]string
	ua      string
	log     *zap.Logger
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	return &Client{
		urls: map[Feed]string{
			Buff163: cfg.Feeds.Buff163URL,
			CSFloat: cfg.Feeds.CSFloatURL,
		},
		ua:      cfg.Feeds.UserAgent,
		log:     log,
		http:    &http.Client{Timeout: cfg.FetchTimeout()},
		limiter: rate.NewLimiter(rate.Limit(cfg.Feeds.RatePerSec), cfg.Feeds.RateBurst),
	}
}

func (c *Client) Fetch(ctx context.Context, feed Feed) ([]byte, error) {
	endpoint, ok := c.urls[feed]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFeed, feed)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		imetrics.FeedFetchLatency.WithLabelValues(string(feed)).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.ua)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("API responded with status: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%s: response is not valid JSON", feed)
	}
	c.log.Debug("price list fetched", zap.String("feed", string(feed)), zap.Int("bytes", len(body)), zap.Duration("took", time.Since(start)))
	return body, nil
}
