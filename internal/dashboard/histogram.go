package dashboard

import (
	"github.com/samber/lo"

	"github.com/lotwise/backend/internal/model"
)

const (
	// DefaultBinCount is used when a histogram request does not specify a
	// bin count.
	DefaultBinCount = 15

	// UnknownCategory is the reserved bucket for items without a category.
	UnknownCategory = "UNKNOWN"
)

// BinHistogram distributes priced items over binCount uniform-width price
// bins spanning [min, max] of the observed prices, counting per category.
// Items with a null or non-positive price are discarded; items without a
// category are counted under UnknownCategory. Every bin is half-open
// [start, end) except the last, which includes max so the most expensive
// item is never dropped. When all prices are equal a single bin covers
// them. A non-positive binCount falls back to DefaultBinCount.
func BinHistogram(items []*model.PricedItem, binCount int) []*model.HistogramBin {
	if binCount <= 0 {
		binCount = DefaultBinCount
	}

	prices := lo.FilterMap(items, func(item *model.PricedItem, _ int) (float64, bool) {
		if !hasPrice(item) {
			return 0, false
		}
		return item.Price.Float64, true
	})
	if len(prices) == 0 {
		return []*model.HistogramBin{}
	}

	min := lo.Min(prices)
	max := lo.Max(prices)
	if min == max {
		binCount = 1
	}
	width := (max - min) / float64(binCount)

	bins := make([]*model.HistogramBin, binCount)
	for i := range bins {
		bins[i] = &model.HistogramBin{
			RangeStart:       min + float64(i)*width,
			RangeEnd:         min + float64(i+1)*width,
			CountsByCategory: make(map[string]int),
		}
	}
	// pin the outer edge to max to keep it exact despite float rounding
	bins[binCount-1].RangeEnd = max

	for _, item := range items {
		if !hasPrice(item) {
			continue
		}

		idx := binCount - 1
		if width > 0 {
			idx = int((item.Price.Float64 - min) / width)
			if idx >= binCount {
				idx = binCount - 1
			}
		}

		category := UnknownCategory
		if item.Category.Valid && item.Category.String != "" {
			category = item.Category.String
		}
		bins[idx].CountsByCategory[category]++
	}

	return bins
}

func hasPrice(item *model.PricedItem) bool {
	return item != nil && item.Price.Valid && item.Price.Float64 > 0
}
