package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultFees(), cfg.Fees)
	assert.Equal(t, DefaultBuff163URL, cfg.Feeds.Buff163URL)
	assert.Equal(t, DefaultCSFloatURL, cfg.Feeds.CSFloatURL)
	assert.Equal(t, "Mozilla/5.0", cfg.Feeds.UserAgent)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.Equal(t, time.Minute, cfg.RefreshInterval())
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout())
	assert.Equal(t, "opp:roi", cfg.Redis.RankKey)
	assert.Equal(t, ":8080", cfg.Dash.ListenAddr)
	assert.Equal(t, "N/A", cfg.Risk.MinReliability)
}

func TestLoad_FileOverridesFees(t *testing.T) {
	p := writeConfig(t, `
fees:
  buff163:
    buyer_fee: 0.01
    seller_fee: 0.03
feeds:
  refresh_sec: 15
risk:
  min_profit_usd: 2.5
  min_reliability: Medium
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 0.01, cfg.Fees.Buff163.BuyerFee)
	assert.Equal(t, 0.03, cfg.Fees.Buff163.SellerFee)
	// untouched platform keeps its default
	assert.Equal(t, 0.02, cfg.Fees.CSFloat.BuyerFee)
	assert.Equal(t, 15*time.Second, cfg.RefreshInterval())
	assert.Equal(t, 2.5, cfg.Risk.MinProfitUSD)
	assert.Equal(t, "Medium", cfg.Risk.MinReliability)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SKINARB_REDIS_ADDR", "127.0.0.1:6380")
	t.Setenv("SKINARB_REFRESH_SEC", "5")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6380", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Second, cfg.RefreshInterval())
}

func TestLoad_Invalid(t *testing.T) {
	p := writeConfig(t, `
fees:
  csfloat:
    seller_fee: 1.5
`)
	_, err := Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SellerFee")
}

func TestLoad_BadYAML(t *testing.T) {
	p := writeConfig(t, "fees: [")
	_, err := Load(p)
	assert.Error(t, err)
}

func TestLoad_BadReliability(t *testing.T) {
	p := writeConfig(t, "risk:\n  min_reliability: Great\n")
	_, err := Load(p)
	assert.Error(t, err)
}
