package model

import "gopkg.in/guregu/null.v3"

// AggregationItem is one named bucket's summary statistics for a single
// dimension value, e.g. one state or one manufacturer.
type AggregationItem struct {
	Name         string     `json:"name"`
	Count        int        `json:"count"`
	TotalValue   float64    `json:"total_value"`
	AvgPrice     float64    `json:"avg_price"`
	MinPrice     float64    `json:"min_price"`
	MaxPrice     float64    `json:"max_price"`
	AvgDaysOnLot null.Float `json:"avg_days_on_lot,omitempty"`
}

// AggregatedSummary is the full aggregated view of the inventory, either
// unfiltered (the baseline) or restricted to a single dimension value.
type AggregatedSummary struct {
	TotalUnits int     `json:"total_units"`
	TotalValue float64 `json:"total_value"`
	AvgPrice   float64 `json:"avg_price"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`

	ByRVType       []*AggregationItem `json:"by_rv_type"`
	ByDealerGroup  []*AggregationItem `json:"by_dealer_group"`
	ByManufacturer []*AggregationItem `json:"by_manufacturer"`
	ByCondition    []*AggregationItem `json:"by_condition"`
	ByState        []*AggregationItem `json:"by_state"`
	ByRegion       []*AggregationItem `json:"by_region"`
	ByCity         []*AggregationItem `json:"by_city"`
	ByCounty       []*AggregationItem `json:"by_county"`
}

// Breakdown returns the breakdown slice for the given dimension.
func (s *AggregatedSummary) Breakdown(d Dimension) []*AggregationItem {
	switch d {
	case DimensionRVType:
		return s.ByRVType
	case DimensionCondition:
		return s.ByCondition
	case DimensionDealerGroup:
		return s.ByDealerGroup
	case DimensionManufacturer:
		return s.ByManufacturer
	case DimensionState:
		return s.ByState
	case DimensionRegion:
		return s.ByRegion
	case DimensionCity:
		return s.ByCity
	case DimensionCounty:
		return s.ByCounty
	}
	return nil
}

// BreakdownLimits caps how many buckets each dimension's breakdown carries,
// matching what the dashboard actually renders. States are uncapped in
// practice (all US states plus Canadian provinces fit in 65).
var BreakdownLimits = map[Dimension]int{
	DimensionRVType:       10,
	DimensionDealerGroup:  10,
	DimensionManufacturer: 10,
	DimensionCondition:    0, // uncapped, only NEW/USED in practice
	DimensionState:        65,
	DimensionRegion:       10,
	DimensionCity:         20,
	DimensionCounty:       15,
}
