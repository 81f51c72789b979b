package risk

import (
	"github.com/you/skin-arb/internal/config"
	"github.com/you/skin-arb/internal/types"
)

// Engine decides which opportunities are worth an alert. It never places
// orders.
type Engine struct {
	minProfit float64
	minROI    float64
	minRel    types.Reliability
}

func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		minProfit: cfg.Risk.MinProfitUSD,
		minROI:    cfg.Risk.MinROIPct,
		minRel:    types.Reliability(cfg.Risk.MinReliability),
	}
}

func (e *Engine) Allow(o types.Opportunity) bool {
	if !o.Profitable {
		return false
	}
	if o.BestProfit < e.minProfit {
		return false
	}
	if o.BestROI < e.minROI {
		return false
	}
	return o.Reliability.Rank() >= e.minRel.Rank()
}

// Filter returns the allowed opportunities in input order.
func (e *Engine) Filter(opps []types.Opportunity) []types.Opportunity {
	var out []types.Opportunity
	for _, o := range opps {
		if e.Allow(o) {
			out = append(out, o)
		}
	}
	return out
}
