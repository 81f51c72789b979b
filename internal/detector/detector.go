package detector

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/you/skin-arb/internal/catalog"
	"github.com/you/skin-arb/internal/config"
	"github.com/you/skin-arb/internal/marketdata"
	"github.com/you/skin-arb/internal/types"
	"go.uber.org/zap"
)

// Reliability thresholds on the CSFloat listed quantity.
const (
	HighQty   = 50
	MediumQty = 20
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Run turns every snapshot into a batch of opportunities.
func Run(ctx context.Context, cfg *config.Config, in <-chan marketdata.Snapshot, out chan<- types.Batch, log *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-in:
			b := NewBatch(cfg.Fees, snap)
			log.Info("batch computed",
				zap.String("batch", b.ID),
				zap.Int("buff163_items", len(snap.Buff163)),
				zap.Int("csfloat_items", len(snap.CSFloat)),
				zap.Int("opportunities", len(b.Opportunities)),
			)
			select {
			case out <- b:
			case <-ctx.Done():
				return
			}
		}
	}
}

// NewBatch computes the opportunities of snap and stamps them with an id.
func NewBatch(fees config.Fees, snap marketdata.Snapshot) types.Batch {
	b := types.Batch{
		ID:            uuid.NewString(),
		ComputedAt:    snap.Ts,
		Opportunities: Compute(fees, snap.Buff163, snap.CSFloat),
	}
	if b.ComputedAt.IsZero() {
		b.ComputedAt = time.Now()
	}
	if len(snap.Errors) > 0 {
		b.FeedErrors = make(map[string]string, len(snap.Errors))
		for feed, err := range snap.Errors {
			b.FeedErrors[string(feed)] = err.Error()
		}
	}
	return b
}

// Compute joins both price lists by item name. Items without a usable price
// on both marketplaces are left out. The result is sorted by item name.
func Compute(fees config.Fees, buff map[string]marketdata.BuffEntry, csfloat map[string]marketdata.CSFloatEntry) []types.Opportunity {
	names := make(map[string]struct{}, len(buff)+len(csfloat))
	for n := range buff {
		names[n] = struct{}{}
	}
	for n := range csfloat {
		names[n] = struct{}{}
	}

	out := make([]types.Opportunity, 0, len(names))
	for name := range names {
		b, okB := buff[name]
		c, okC := csfloat[name]
		if !okB || !okC {
			continue
		}
		buffPx, ok := b.ListingPrice()
		if !ok {
			continue
		}
		floatPx, ok := c.ListingPrice()
		if !ok {
			continue
		}
		var qty *int
		if q, ok := c.Quantity(); ok {
			qty = &q
		}
		out = append(out, Evaluate(fees, name, buffPx, floatPx, qty))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemName < out[j].ItemName })
	return out
}

// Evaluate computes the arbitrage figures of a single item. Both prices must
// be positive.
func Evaluate(fees config.Fees, name string, buffPx, floatPx float64, qty *int) types.Opportunity {
	it := catalog.Parse(name)
	buff := decimal.NewFromFloat(buffPx)
	flt := decimal.NewFromFloat(floatPx)

	raw := flt.Sub(buff)
	cheaper := types.CSFloat
	if buffPx < floatPx {
		cheaper = types.Buff163
	}

	bc := evaluateLeg(buff, fees.Buff163.BuyerFee, flt, fees.CSFloat.SellerFee)
	cb := evaluateLeg(flt, fees.CSFloat.BuyerFee, buff, fees.Buff163.SellerFee)

	dir, best := types.CSFloatToBuff, cb
	if bc.net.GreaterThan(cb.net) {
		dir, best = types.BuffToCSFloat, bc
	}

	return types.Opportunity{
		ItemName: name,
		Category: it.Category,
		Wear:     it.Wear,
		StatTrak: it.StatTrak,
		Souvenir: it.Souvenir,

		CSFloatPrice: floatPx,
		Buff163Price: buffPx,

		RawPriceDiff:      raw.InexactFloat64(),
		AbsRawDiff:        raw.Abs().InexactFloat64(),
		PercentDifference: raw.Div(buff).Mul(hundred).InexactFloat64(),
		CheaperPlatform:   cheaper,
		PriceRatio:        flt.Div(buff).InexactFloat64(),

		BCBuyCost:     bc.buyCost.InexactFloat64(),
		BCSellReceive: bc.sellReceive.InexactFloat64(),
		BCNetProfit:   bc.net.InexactFloat64(),
		BCROI:         bc.roi.InexactFloat64(),

		CBBuyCost:     cb.buyCost.InexactFloat64(),
		CBSellReceive: cb.sellReceive.InexactFloat64(),
		CBNetProfit:   cb.net.InexactFloat64(),
		CBROI:         cb.roi.InexactFloat64(),

		BestDirection: dir,
		BestProfit:    best.net.InexactFloat64(),
		BestROI:       best.roi.InexactFloat64(),
		Profitable:    best.net.IsPositive(),

		CSFloatQty:  qty,
		Reliability: ReliabilityFor(qty),
	}
}

type leg struct {
	buyCost, sellReceive, net, roi decimal.Decimal
}

// evaluateLeg buys at buyPx paying buyerFee on top and sells at sellPx
// receiving the price minus sellerFee.
func evaluateLeg(buyPx decimal.Decimal, buyerFee float64, sellPx decimal.Decimal, sellerFee float64) leg {
	cost := buyPx.Mul(one.Add(decimal.NewFromFloat(buyerFee)))
	recv := sellPx.Mul(one.Sub(decimal.NewFromFloat(sellerFee)))
	net := recv.Sub(cost)
	roi := decimal.Zero
	if cost.IsPositive() {
		roi = net.Div(cost).Mul(hundred)
	}
	return leg{buyCost: cost, sellReceive: recv, net: net, roi: roi}
}

func ReliabilityFor(qty *int) types.Reliability {
	switch {
	case qty == nil:
		return types.ReliabilityUnknown
	case *qty >= HighQty:
		return types.ReliabilityHigh
	case *qty >= MediumQty:
		return types.ReliabilityMedium
	default:
		return types.ReliabilityLow
	}
}
