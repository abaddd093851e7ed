package model

import "gopkg.in/guregu/null.v3"

// PricedItem is the minimal projection of an inventory unit a price
// distribution needs: its price and the category it is counted under.
type PricedItem struct {
	Price    null.Float  `json:"price"`
	Category null.String `json:"category"`
}

// HistogramBin is one contiguous price sub-range with per-category counts.
// Bins are produced in ascending RangeStart order.
type HistogramBin struct {
	RangeStart       float64        `json:"range_start"`
	RangeEnd         float64        `json:"range_end"`
	CountsByCategory map[string]int `json:"counts_by_category"`
}

// Total returns the number of items in the bin across all categories.
func (b *HistogramBin) Total() int {
	total := 0
	for _, n := range b.CountsByCategory {
		total += n
	}
	return total
}
