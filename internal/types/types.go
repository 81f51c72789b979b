package types

import "time"

type Direction string

const (
	BuffToCSFloat Direction = "B→C"
	CSFloatToBuff Direction = "C→B"
	NoDirection   Direction = "N/A"
)

type Platform string

const (
	Buff163    Platform = "Buff163"
	CSFloat    Platform = "CSFloat"
	NoPlatform Platform = "N/A"
)

type Reliability string

const (
	ReliabilityHigh    Reliability = "High"
	ReliabilityMedium  Reliability = "Medium"
	ReliabilityLow     Reliability = "Low"
	ReliabilityUnknown Reliability = "N/A"
)

// Rank orders reliabilities: N/A < Low < Medium < High.
func (r Reliability) Rank() int {
	switch r {
	case ReliabilityHigh:
		return 3
	case ReliabilityMedium:
		return 2
	case ReliabilityLow:
		return 1
	default:
		return 0
	}
}

// Opportunity is a per-item arbitrage snapshot. ROI values are percentages.
type Opportunity struct {
	ItemName string `json:"itemName"`
	Category string `json:"category"`
	Wear     string `json:"wear"`
	StatTrak bool   `json:"statTrak"`
	Souvenir bool   `json:"souvenir"`

	CSFloatPrice float64 `json:"csfloatPrice"`
	Buff163Price float64 `json:"buff163Price"`

	RawPriceDiff      float64  `json:"rawPriceDiff"`
	AbsRawDiff        float64  `json:"absRawDiff"`
	PercentDifference float64  `json:"percentDifference"`
	CheaperPlatform   Platform `json:"cheaperPlatform"`
	PriceRatio        float64  `json:"priceRatio"`

	// Buy on Buff163, sell on CSFloat
	BCBuyCost     float64 `json:"bc_buyCost"`
	BCSellReceive float64 `json:"bc_sellReceive"`
	BCNetProfit   float64 `json:"bc_netProfit"`
	BCROI         float64 `json:"bc_roi"`

	// Buy on CSFloat, sell on Buff163
	CBBuyCost     float64 `json:"cb_buyCost"`
	CBSellReceive float64 `json:"cb_sellReceive"`
	CBNetProfit   float64 `json:"cb_netProfit"`
	CBROI         float64 `json:"cb_roi"`

	BestDirection Direction `json:"bestDirection"`
	BestProfit    float64   `json:"bestProfit"`
	BestROI       float64   `json:"bestROI"`
	Profitable    bool      `json:"profitable"`

	CSFloatQty    *int        `json:"csfloatQty"`
	Volume        *float64    `json:"volume"`
	PriceVariance *float64    `json:"priceVariance"`
	ZScore        *float64    `json:"zScore"`
	Reliability   Reliability `json:"reliability"`
}

// Batch is the result of one refresh cycle.
type Batch struct {
	ID            string            `json:"id"`
	ComputedAt    time.Time         `json:"computedAt"`
	Opportunities []Opportunity     `json:"opportunities"`
	FeedErrors    map[string]string `json:"feedErrors,omitempty"`
}
