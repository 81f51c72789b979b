package dash

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/skin-arb/internal/types"
)

func intPtr(n int) *int { return &n }

func fixture() []types.Opportunity {
	return []types.Opportunity{
		{ItemName: "AK-47 | Redline (Field-Tested)", Category: "Rifle", Wear: "Field-Tested", BestDirection: types.BuffToCSFloat, BestROI: 5.1, BestProfit: 0.5, Profitable: true, Reliability: types.ReliabilityHigh, CSFloatQty: intPtr(80)},
		{ItemName: "AWP | Asiimov (Field-Tested)", Category: "Sniper Rifle", Wear: "Field-Tested", BestDirection: types.CSFloatToBuff, BestROI: -2, BestProfit: -1.6, Reliability: types.ReliabilityLow, CSFloatQty: intPtr(3)},
		{ItemName: "★ Karambit | Doppler (Factory New)", Category: "Knife", Wear: "Factory New", BestDirection: types.BuffToCSFloat, BestROI: 8.4, BestProfit: 120, Profitable: true, Reliability: types.ReliabilityMedium, CSFloatQty: intPtr(21)},
		{ItemName: "Sticker | Crown (Foil)", Category: "Unknown", Wear: "N/A", BestDirection: types.CSFloatToBuff, BestROI: 0.3, BestProfit: 0.01, Profitable: true, Reliability: types.ReliabilityUnknown},
	}
}

func names(p Page) []string {
	out := make([]string, 0, len(p.Items))
	for _, o := range p.Items {
		out = append(out, o.ItemName)
	}
	return out
}

func TestApply_DefaultSortsByROIDesc(t *testing.T) {
	p := DefaultQuery().Apply(fixture())
	assert.Equal(t, 4, p.Total)
	assert.Equal(t, []string{
		"★ Karambit | Doppler (Factory New)",
		"AK-47 | Redline (Field-Tested)",
		"Sticker | Crown (Foil)",
		"AWP | Asiimov (Field-Tested)",
	}, names(p))
}

func TestApply_Filters(t *testing.T) {
	q := DefaultQuery()
	q.Search = "field-tested"
	assert.Equal(t, 2, q.Apply(fixture()).Total)

	q = DefaultQuery()
	q.Search = "REDLINE"
	assert.Equal(t, []string{"AK-47 | Redline (Field-Tested)"}, names(q.Apply(fixture())))

	q = DefaultQuery()
	q.Category = "Knife"
	assert.Equal(t, 1, q.Apply(fixture()).Total)

	q = DefaultQuery()
	q.Direction = types.CSFloatToBuff
	assert.Equal(t, 2, q.Apply(fixture()).Total)

	q = DefaultQuery()
	q.Reliability = types.ReliabilityUnknown
	assert.Equal(t, []string{"Sticker | Crown (Foil)"}, names(q.Apply(fixture())))

	q = DefaultQuery()
	q.MinROI = 5
	assert.Equal(t, 2, q.Apply(fixture()).Total)

	q = DefaultQuery()
	q.Profitable = true
	assert.Equal(t, 3, q.Apply(fixture()).Total)
}

func TestApply_StringSortIsCaseInsensitive(t *testing.T) {
	opps := []types.Opportunity{{ItemName: "b"}, {ItemName: "A"}, {ItemName: "c"}}
	q := Query{Sort: "itemName"}
	assert.Equal(t, []string{"A", "b", "c"}, names(q.Apply(opps)))
	q.Desc = true
	assert.Equal(t, []string{"c", "b", "A"}, names(q.Apply(opps)))
}

func TestApply_QtySortPutsUnknownLast(t *testing.T) {
	q := Query{Sort: "csfloatQty", Desc: true}
	got := names(q.Apply(fixture()))
	assert.Equal(t, "Sticker | Crown (Foil)", got[len(got)-1])
}

func TestApply_Pagination(t *testing.T) {
	q := DefaultQuery()
	q.PageSize = 3
	p := q.Apply(fixture())
	assert.Len(t, p.Items, 3)
	assert.Equal(t, 4, p.Total)

	q.Page = 1
	p = q.Apply(fixture())
	assert.Len(t, p.Items, 1)
	assert.Equal(t, "AWP | Asiimov (Field-Tested)", p.Items[0].ItemName)

	q.Page = 7
	p = q.Apply(fixture())
	assert.Empty(t, p.Items)
	assert.NotNil(t, p.Items)
	assert.Equal(t, 4, p.Total)

	q.Page = math.MaxInt / 2
	assert.NotPanics(t, func() { p = q.Apply(fixture()) })
	assert.Empty(t, p.Items)
	assert.Equal(t, 4, p.Total)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := fixture()
	first := in[0].ItemName
	_ = Query{Sort: "itemName", Desc: true}.Apply(in)
	assert.Equal(t, first, in[0].ItemName)
}

func TestParseQuery(t *testing.T) {
	v := url.Values{}
	v.Set("search", " redline ")
	v.Set("category", "all")
	v.Set("direction", "B→C")
	v.Set("minROI", "2.5")
	v.Set("profitable", "true")
	v.Set("sort", "bestProfit")
	v.Set("order", "asc")
	v.Set("page", "2")
	v.Set("pageSize", "10000")

	q, err := ParseQuery(v)
	require.NoError(t, err)
	assert.Equal(t, "redline", q.Search)
	assert.Empty(t, q.Category)
	assert.Equal(t, types.BuffToCSFloat, q.Direction)
	assert.Equal(t, 2.5, q.MinROI)
	assert.True(t, q.Profitable)
	assert.Equal(t, "bestProfit", q.Sort)
	assert.False(t, q.Desc)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, MaxPageSize, q.PageSize)
}

func TestParseQuery_HugePage(t *testing.T) {
	q, err := ParseQuery(url.Values{"page": {"922337203685477581"}})
	require.NoError(t, err)
	assert.Equal(t, 922337203685477581, q.Page)

	var p Page
	assert.NotPanics(t, func() { p = q.Apply(fixture()) })
	assert.Empty(t, p.Items)
	assert.Equal(t, 4, p.Total)
}

func TestParseQuery_Defaults(t *testing.T) {
	q, err := ParseQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, DefaultQuery(), q)
}

func TestParseQuery_Errors(t *testing.T) {
	for _, raw := range []string{
		"sort=price",
		"order=sideways",
		"minROI=lots",
		"profitable=maybe",
		"page=-1",
		"pageSize=0",
	} {
		v, err := url.ParseQuery(raw)
		require.NoError(t, err)
		_, err = ParseQuery(v)
		assert.Error(t, err, raw)
	}
}

func TestSortColumns(t *testing.T) {
	cols := SortColumns()
	assert.Contains(t, cols, "bestROI")
	assert.Contains(t, cols, "itemName")
	assert.IsIncreasing(t, cols)
}
