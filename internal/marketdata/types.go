package marketdata

import (
	"math"
	"time"

	"github.com/you/skin-arb/internal/connectors/pricelist"
)

type PricePoint struct {
	Price *float64 `json:"price"`
}

// BuffEntry is one item of the Buff163 price list.
type BuffEntry struct {
	StartingAt   *PricePoint `json:"starting_at"`
	HighestOrder *PricePoint `json:"highest_order"`
}

// ListingPrice is the lowest listing (starting_at) price.
func (e BuffEntry) ListingPrice() (float64, bool) {
	if e.StartingAt == nil {
		return 0, false
	}
	return positive(e.StartingAt.Price)
}

// CSFloatEntry is one item of the CSFloat price list.
type CSFloatEntry struct {
	Price        *float64 `json:"price"`
	AvgPrice     *float64 `json:"avg_price"`
	AvgListPrice *float64 `json:"avg_list_price"`
	Count        *float64 `json:"count"`
}

// ListingPrice prefers price and falls back to avg_price.
func (e CSFloatEntry) ListingPrice() (float64, bool) {
	if p, ok := positive(e.Price); ok {
		return p, true
	}
	return positive(e.AvgPrice)
}

// Quantity is the listed count; zero counts as unknown. Fractions are
// truncated so 49.6 stays below the 50 threshold.
func (e CSFloatEntry) Quantity() (int, bool) {
	if e.Count == nil || *e.Count <= 0 || math.IsNaN(*e.Count) || math.IsInf(*e.Count, 0) {
		return 0, false
	}
	return int(math.Floor(*e.Count)), true
}

func positive(p *float64) (float64, bool) {
	if p == nil || *p <= 0 || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return 0, false
	}
	return *p, true
}

// Snapshot joins both price lists as fetched in one cycle. A feed that failed
// is present as an empty map and its error is kept in Errors.
type Snapshot struct {
	Buff163 map[string]BuffEntry
	CSFloat map[string]CSFloatEntry
	Errors  map[pricelist.Feed]error
	Ts      time.Time
}
