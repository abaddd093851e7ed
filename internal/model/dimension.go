package model

// Dimension is a categorical axis by which inventory can be filtered or
// aggregated: exactly one dimension may be active at a time.
type Dimension string

const (
	DimensionRVType       Dimension = "rv_type"
	DimensionCondition    Dimension = "condition"
	DimensionDealerGroup  Dimension = "dealer_group"
	DimensionManufacturer Dimension = "manufacturer"
	DimensionState        Dimension = "state"

	// geographic axes below are aggregation-only: summaries carry a
	// breakdown for them but they have no filter query parameter
	DimensionRegion Dimension = "region"
	DimensionCity   Dimension = "city"
	DimensionCounty Dimension = "county"
)

// dimensionQueryParams maps recognized dimensions to the query parameter
// the aggregation API expects. Notably rv_type is exposed as rv_class on
// the wire for historical reasons.
var dimensionQueryParams = map[Dimension]string{
	DimensionRVType:       "rv_class",
	DimensionCondition:    "condition",
	DimensionDealerGroup:  "dealer_group",
	DimensionManufacturer: "manufacturer",
	DimensionState:        "state",
}

// Dimensions lists all filterable dimensions in a stable order.
var Dimensions = []Dimension{
	DimensionRVType,
	DimensionCondition,
	DimensionDealerGroup,
	DimensionManufacturer,
	DimensionState,
}

// GeoDimensions lists the aggregation-only geographic axes.
var GeoDimensions = []Dimension{
	DimensionRegion,
	DimensionCity,
	DimensionCounty,
}

// BreakdownDimensions lists every dimension a summary carries a breakdown
// for: the filterable dimensions followed by the geographic ones.
var BreakdownDimensions = []Dimension{
	DimensionRVType,
	DimensionCondition,
	DimensionDealerGroup,
	DimensionManufacturer,
	DimensionState,
	DimensionRegion,
	DimensionCity,
	DimensionCounty,
}

// QueryParam returns the backend query parameter name for d, or ok == false
// for a dimension the mapping table does not recognize.
func (d Dimension) QueryParam() (string, bool) {
	p, ok := dimensionQueryParams[d]
	return p, ok
}

// FromQueryParam resolves a wire query parameter back to its dimension.
func FromQueryParam(param string) (Dimension, bool) {
	for d, p := range dimensionQueryParams {
		if p == param {
			return d, true
		}
	}
	return "", false
}
