package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/lotwise/backend/internal/model"
)

func priced(price float64, category string) *model.PricedItem {
	item := &model.PricedItem{Price: null.FloatFrom(price)}
	if category != "" {
		item.Category = null.StringFrom(category)
	}
	return item
}

func totalCount(bins []*model.HistogramBin) int {
	total := 0
	for _, bin := range bins {
		total += bin.Total()
	}
	return total
}

func TestBinHistogramEmpty(t *testing.T) {
	assert.Empty(t, BinHistogram(nil, 10))
	assert.Empty(t, BinHistogram([]*model.PricedItem{{}}, 10), "unpriced items alone shall yield no bins")
}

func TestBinHistogramSpansMinToMax(t *testing.T) {
	items := []*model.PricedItem{
		priced(1000, "NEW"),
		priced(5000, "NEW"),
		priced(9000, "USED"),
	}

	bins := BinHistogram(items, 3)
	require.Len(t, bins, 3)

	assert.InDelta(t, 1000, bins[0].RangeStart, 1e-9)
	assert.Equal(t, float64(9000), bins[2].RangeEnd)

	// every item lands in exactly one bin, the max price included
	assert.Equal(t, 3, totalCount(bins))
	assert.Equal(t, map[string]int{"NEW": 1}, bins[0].CountsByCategory)
	assert.Equal(t, map[string]int{"NEW": 1}, bins[1].CountsByCategory)
	assert.Equal(t, map[string]int{"USED": 1}, bins[2].CountsByCategory)
}

func TestBinHistogramContiguousRanges(t *testing.T) {
	items := []*model.PricedItem{
		priced(200, "NEW"), priced(400, "NEW"), priced(777, "USED"), priced(1000, "USED"),
	}

	bins := BinHistogram(items, 4)
	require.Len(t, bins, 4)
	for i := 1; i < len(bins); i++ {
		assert.Equal(t, bins[i-1].RangeEnd, bins[i].RangeStart)
	}
	assert.Equal(t, 4, totalCount(bins))
}

func TestBinHistogramAllPricesEqual(t *testing.T) {
	items := []*model.PricedItem{
		priced(100, "NEW"),
		priced(100, "NEW"),
		priced(100, "USED"),
	}

	bins := BinHistogram(items, 5)
	require.Len(t, bins, 1, "identical prices shall collapse into a single bin")
	assert.Equal(t, float64(100), bins[0].RangeStart)
	assert.Equal(t, float64(100), bins[0].RangeEnd)
	assert.Equal(t, map[string]int{"NEW": 2, "USED": 1}, bins[0].CountsByCategory)
}

func TestBinHistogramSkipsUnpricedAndBucketsUncategorized(t *testing.T) {
	items := []*model.PricedItem{
		priced(10, "NEW"),
		priced(20, ""),
		// non-positive prices and missing prices are discarded
		priced(0, "NEW"),
		priced(-50, "NEW"),
		{Category: null.StringFrom("NEW")},
		nil,
	}

	bins := BinHistogram(items, 2)
	require.Len(t, bins, 2)
	assert.Equal(t, 2, totalCount(bins))
	assert.Equal(t, map[string]int{"NEW": 1}, bins[0].CountsByCategory)
	assert.Equal(t, map[string]int{UnknownCategory: 1}, bins[1].CountsByCategory)
}

func TestBinHistogramDefaultBinCount(t *testing.T) {
	items := []*model.PricedItem{priced(500, "NEW"), priced(150000, "USED")}

	assert.Len(t, BinHistogram(items, 0), DefaultBinCount)
	assert.Len(t, BinHistogram(items, -3), DefaultBinCount)
}
