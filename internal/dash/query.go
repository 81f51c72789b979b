package dash

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/you/skin-arb/internal/types"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 500
	DefaultSort     = "bestROI"
)

type Query struct {
	Search      string
	Category    string
	Wear        string
	Direction   types.Direction
	Reliability types.Reliability
	MinROI      float64
	Profitable  bool

	Sort string
	Desc bool

	Page     int
	PageSize int
}

type Page struct {
	Items    []types.Opportunity `json:"items"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"pageSize"`
}

// DefaultQuery returns the first page sorted by best ROI, highest first.
func DefaultQuery() Query {
	return Query{Sort: DefaultSort, Desc: true, PageSize: DefaultPageSize}
}

var numericCols = map[string]func(types.Opportunity) float64{
	"csfloatPrice":      func(o types.Opportunity) float64 { return o.CSFloatPrice },
	"buff163Price":      func(o types.Opportunity) float64 { return o.Buff163Price },
	"rawPriceDiff":      func(o types.Opportunity) float64 { return o.RawPriceDiff },
	"absRawDiff":        func(o types.Opportunity) float64 { return o.AbsRawDiff },
	"percentDifference": func(o types.Opportunity) float64 { return o.PercentDifference },
	"priceRatio":        func(o types.Opportunity) float64 { return o.PriceRatio },
	"bc_buyCost":        func(o types.Opportunity) float64 { return o.BCBuyCost },
	"bc_sellReceive":    func(o types.Opportunity) float64 { return o.BCSellReceive },
	"bc_netProfit":      func(o types.Opportunity) float64 { return o.BCNetProfit },
	"bc_roi":            func(o types.Opportunity) float64 { return o.BCROI },
	"cb_buyCost":        func(o types.Opportunity) float64 { return o.CBBuyCost },
	"cb_sellReceive":    func(o types.Opportunity) float64 { return o.CBSellReceive },
	"cb_netProfit":      func(o types.Opportunity) float64 { return o.CBNetProfit },
	"cb_roi":            func(o types.Opportunity) float64 { return o.CBROI },
	"bestProfit":        func(o types.Opportunity) float64 { return o.BestProfit },
	"bestROI":           func(o types.Opportunity) float64 { return o.BestROI },
	"reliability":       func(o types.Opportunity) float64 { return float64(o.Reliability.Rank()) },
	"profitable":        func(o types.Opportunity) float64 { return b2f(o.Profitable) },
	"statTrak":          func(o types.Opportunity) float64 { return b2f(o.StatTrak) },
	"souvenir":          func(o types.Opportunity) float64 { return b2f(o.Souvenir) },
	"csfloatQty": func(o types.Opportunity) float64 {
		if o.CSFloatQty == nil {
			return -1
		}
		return float64(*o.CSFloatQty)
	},
}

var stringCols = map[string]func(types.Opportunity) string{
	"itemName":        func(o types.Opportunity) string { return o.ItemName },
	"category":        func(o types.Opportunity) string { return o.Category },
	"wear":            func(o types.Opportunity) string { return o.Wear },
	"cheaperPlatform": func(o types.Opportunity) string { return string(o.CheaperPlatform) },
	"bestDirection":   func(o types.Opportunity) string { return string(o.BestDirection) },
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// SortColumns lists the accepted sort keys.
func SortColumns() []string {
	out := make([]string, 0, len(numericCols)+len(stringCols))
	for k := range numericCols {
		out = append(out, k)
	}
	for k := range stringCols {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ParseQuery reads query-string parameters; unknown parameters are ignored.
func ParseQuery(v url.Values) (Query, error) {
	q := DefaultQuery()
	q.Search = strings.TrimSpace(v.Get("search"))
	q.Category = allOrValue(v.Get("category"))
	q.Wear = allOrValue(v.Get("wear"))
	q.Direction = types.Direction(allOrValue(v.Get("direction")))
	q.Reliability = types.Reliability(allOrValue(v.Get("reliability")))

	if s := v.Get("minROI"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Query{}, fmt.Errorf("minROI: %w", err)
		}
		q.MinROI = f
	}
	if s := v.Get("profitable"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Query{}, fmt.Errorf("profitable: %w", err)
		}
		q.Profitable = b
	}
	if s := v.Get("sort"); s != "" {
		if _, ok := numericCols[s]; !ok {
			if _, ok := stringCols[s]; !ok {
				return Query{}, fmt.Errorf("sort: unknown column %q", s)
			}
		}
		q.Sort = s
	}
	switch strings.ToLower(v.Get("order")) {
	case "":
	case "asc":
		q.Desc = false
	case "desc":
		q.Desc = true
	default:
		return Query{}, fmt.Errorf("order: want asc or desc, got %q", v.Get("order"))
	}
	if s := v.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return Query{}, fmt.Errorf("page: must be a non-negative integer")
		}
		q.Page = n
	}
	if s := v.Get("pageSize"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return Query{}, fmt.Errorf("pageSize: must be a positive integer")
		}
		q.PageSize = min(n, MaxPageSize)
	}
	return q, nil
}

func allOrValue(s string) string {
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
}

func (q Query) match(o types.Opportunity, search string) bool {
	if search != "" &&
		!strings.Contains(strings.ToLower(o.ItemName), search) &&
		!strings.Contains(strings.ToLower(o.Wear), search) {
		return false
	}
	if q.Category != "" && o.Category != q.Category {
		return false
	}
	if q.Wear != "" && o.Wear != q.Wear {
		return false
	}
	if q.Direction != "" && o.BestDirection != q.Direction {
		return false
	}
	if q.Reliability != "" && o.Reliability != q.Reliability {
		return false
	}
	if q.MinROI > 0 && o.BestROI < q.MinROI {
		return false
	}
	if q.Profitable && !o.Profitable {
		return false
	}
	return true
}

// Apply returns the requested page of opps. opps is not modified.
func (q Query) Apply(opps []types.Opportunity) Page {
	search := strings.ToLower(q.Search)
	filtered := make([]types.Opportunity, 0, len(opps))
	for _, o := range opps {
		if q.match(o, search) {
			filtered = append(filtered, o)
		}
	}

	col := q.Sort
	if col == "" {
		col = DefaultSort
	}
	if num, ok := numericCols[col]; ok {
		sort.SliceStable(filtered, func(i, j int) bool {
			a, b := num(filtered[i]), num(filtered[j])
			if q.Desc {
				return a > b
			}
			return a < b
		})
	} else if str, ok := stringCols[col]; ok {
		sort.SliceStable(filtered, func(i, j int) bool {
			a, b := strings.ToLower(str(filtered[i])), strings.ToLower(str(filtered[j]))
			if q.Desc {
				return a > b
			}
			return a < b
		})
	}

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	start := len(filtered)
	if q.Page < len(filtered)/size+1 {
		start = min(q.Page*size, len(filtered))
	}
	end := min(start+size, len(filtered))
	return Page{
		Items:    filtered[start:end],
		Total:    len(filtered),
		Page:     q.Page,
		PageSize: size,
	}
}
