package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/you/skin-arb/internal/config"
	"github.com/you/skin-arb/internal/types"
)

func newEngine(minProfit, minROI float64, rel string) *Engine {
	cfg := &config.Config{}
	cfg.Risk.MinProfitUSD = minProfit
	cfg.Risk.MinROIPct = minROI
	cfg.Risk.MinReliability = rel
	return NewEngine(cfg)
}

func TestAllow(t *testing.T) {
	good := types.Opportunity{Profitable: true, BestProfit: 5, BestROI: 5, Reliability: types.ReliabilityMedium}

	assert.True(t, newEngine(0, 0, "N/A").Allow(good))
	assert.True(t, newEngine(5, 5, "Medium").Allow(good))
	assert.False(t, newEngine(6, 0, "N/A").Allow(good), "profit below minimum")
	assert.False(t, newEngine(0, 5.1, "N/A").Allow(good), "roi below minimum")
	assert.False(t, newEngine(0, 0, "High").Allow(good), "reliability below minimum")

	loss := good
	loss.Profitable = false
	assert.False(t, newEngine(0, 0, "N/A").Allow(loss))

	unknown := good
	unknown.Reliability = types.ReliabilityUnknown
	assert.True(t, newEngine(0, 0, "").Allow(unknown))
	assert.False(t, newEngine(0, 0, "Low").Allow(unknown))
}

func TestFilter(t *testing.T) {
	opps := []types.Opportunity{
		{ItemName: "a", Profitable: true, BestProfit: 1, BestROI: 1},
		{ItemName: "b", Profitable: false},
		{ItemName: "c", Profitable: true, BestProfit: 3, BestROI: 2},
	}
	got := newEngine(0, 0, "N/A").Filter(opps)
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ItemName)
	assert.Equal(t, "c", got[1].ItemName)
}
