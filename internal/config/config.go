package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBuff163URL = "https://prices.csgotrader.app/latest/buff163.json"
	DefaultCSFloatURL = "https://prices.csgotrader.app/latest/csfloat.json"
)

// PlatformFee holds buyer/seller fees as fractions (0.025 == 2.5%).
type PlatformFee struct {
	BuyerFee  float64 `yaml:"buyer_fee" validate:"gte=0,lt=1"`
	SellerFee float64 `yaml:"seller_fee" validate:"gte=0,lt=1"`
}

type Fees struct {
	Buff163 PlatformFee `yaml:"buff163"`
	CSFloat PlatformFee `yaml:"csfloat"`
}

// DefaultFees are the estimated marketplace fees.
func DefaultFees() Fees {
	return Fees{
		Buff163: PlatformFee{BuyerFee: 0.025, SellerFee: 0.025},
		CSFloat: PlatformFee{BuyerFee: 0.02, SellerFee: 0.02},
	}
}

type FeedsCfg struct {
	Buff163URL     string  `yaml:"buff163_url" validate:"required,url"`
	CSFloatURL     string  `yaml:"csfloat_url" validate:"required,url"`
	UserAgent      string  `yaml:"user_agent"`
	TimeoutMs      int     `yaml:"timeout_ms" validate:"gte=0"`
	CacheTTLSec    int     `yaml:"cache_ttl_sec" validate:"gte=0"`
	RatePerSec     float64 `yaml:"rate_per_sec" validate:"gte=0"`
	RateBurst      int     `yaml:"rate_burst" validate:"gte=0"`
	RefreshSeconds int     `yaml:"refresh_sec" validate:"gte=0"`
}

type RedisCfg struct {
	Addr      string `yaml:"addr"`
	DB        int    `yaml:"db"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	MetaNS    string `yaml:"meta_ns"`
	RankKey   string `yaml:"rank_key"`
	Stream    string `yaml:"stream"`
	FeedNS    string `yaml:"feed_ns"`
	StreamMax int64  `yaml:"stream_max" validate:"gte=0"`
}

type RiskCfg struct {
	MinProfitUSD   float64 `yaml:"min_profit_usd" validate:"gte=0"`
	MinROIPct      float64 `yaml:"min_roi_pct"`
	MinReliability string  `yaml:"min_reliability" validate:"omitempty,oneof=High Medium Low N/A"`
}

type Config struct {
	Fees  Fees     `yaml:"fees"`
	Feeds FeedsCfg `yaml:"feeds"`
	Redis RedisCfg `yaml:"redis"`
	Risk  RiskCfg  `yaml:"risk"`

	Dash struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"dash"`

	Metrics struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"metrics"`
}

// Load reads the YAML file at path, applies SKINARB_* environment overrides
// (a .env file in the working directory is honoured), fills defaults and
// validates the result. A missing file is not an error: the defaults are
// enough to run against the public price lists.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var c Config
	c.Fees = DefaultFees()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	applyEnv(&c)
	c.applyDefaults()

	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Feeds.Buff163URL == "" {
		c.Feeds.Buff163URL = DefaultBuff163URL
	}
	if c.Feeds.CSFloatURL == "" {
		c.Feeds.CSFloatURL = DefaultCSFloatURL
	}
	if c.Feeds.UserAgent == "" {
		c.Feeds.UserAgent = "Mozilla/5.0"
	}
	if c.Feeds.TimeoutMs == 0 {
		c.Feeds.TimeoutMs = 15000
	}
	if c.Feeds.CacheTTLSec == 0 {
		c.Feeds.CacheTTLSec = 300
	}
	if c.Feeds.RatePerSec == 0 {
		c.Feeds.RatePerSec = 1
	}
	if c.Feeds.RateBurst == 0 {
		c.Feeds.RateBurst = 2
	}
	if c.Feeds.RefreshSeconds == 0 {
		c.Feeds.RefreshSeconds = 60
	}
	if c.Redis.MetaNS == "" {
		c.Redis.MetaNS = "opp:meta:"
	}
	if c.Redis.RankKey == "" {
		c.Redis.RankKey = "opp:roi"
	}
	if c.Redis.Stream == "" {
		c.Redis.Stream = "opp:alerts"
	}
	if c.Redis.FeedNS == "" {
		c.Redis.FeedNS = "feed:raw:"
	}
	if c.Redis.StreamMax == 0 {
		c.Redis.StreamMax = 10000
	}
	if c.Risk.MinReliability == "" {
		c.Risk.MinReliability = "N/A"
	}
	if c.Dash.ListenAddr == "" {
		c.Dash.ListenAddr = ":8080"
	}
}

func applyEnv(c *Config) {
	if v, ok := os.LookupEnv("SKINARB_REDIS_ADDR"); ok {
		c.Redis.Addr = v
	}
	if v, ok := os.LookupEnv("SKINARB_REDIS_PASSWORD"); ok {
		c.Redis.Password = v
	}
	if v, ok := os.LookupEnv("SKINARB_DASH_ADDR"); ok {
		c.Dash.ListenAddr = v
	}
	if v, ok := os.LookupEnv("SKINARB_METRICS_ADDR"); ok {
		c.Metrics.ListenAddr = v
	}
	if v, ok := os.LookupEnv("SKINARB_REFRESH_SEC"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Feeds.RefreshSeconds = n
		}
	}
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Feeds.TimeoutMs) * time.Millisecond
}
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Feeds.CacheTTLSec) * time.Second
}
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Feeds.RefreshSeconds) * time.Second
}
