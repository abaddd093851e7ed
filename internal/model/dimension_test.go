package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"
)

func TestDimensionQueryParam(t *testing.T) {
	tests := []struct {
		dimension Dimension
		param     string
	}{
		{DimensionRVType, "rv_class"},
		{DimensionCondition, "condition"},
		{DimensionDealerGroup, "dealer_group"},
		{DimensionManufacturer, "manufacturer"},
		{DimensionState, "state"},
	}
	for _, tt := range tests {
		param, ok := tt.dimension.QueryParam()
		require.True(t, ok)
		assert.Equal(t, tt.param, param)

		dimension, ok := FromQueryParam(tt.param)
		require.True(t, ok)
		assert.Equal(t, tt.dimension, dimension)
	}

	_, ok := Dimension("fuel_type").QueryParam()
	assert.False(t, ok)

	_, ok = FromQueryParam("rv_type")
	assert.False(t, ok, "the dimension name is not its wire parameter")

	for _, dimension := range GeoDimensions {
		_, ok := dimension.QueryParam()
		assert.False(t, ok, "geographic axes are aggregation-only")
	}
}

func TestBreakdownDimensionsIncludeGeo(t *testing.T) {
	assert.Len(t, BreakdownDimensions, len(Dimensions)+len(GeoDimensions))

	assert.Equal(t, 10, BreakdownLimits[DimensionRegion])
	assert.Equal(t, 20, BreakdownLimits[DimensionCity])
	assert.Equal(t, 15, BreakdownLimits[DimensionCounty])
}

func TestInventoryUnitDimensionValue(t *testing.T) {
	unit := &InventoryUnit{
		Condition: null.StringFrom("NEW"),
		RVClass:   null.StringFrom("Class A"),
		State:     null.String{},
	}

	v, ok := unit.DimensionValue(DimensionCondition)
	require.True(t, ok)
	assert.Equal(t, "NEW", v)

	v, ok = unit.DimensionValue(DimensionRVType)
	require.True(t, ok)
	assert.Equal(t, "Class A", v)

	_, ok = unit.DimensionValue(DimensionState)
	assert.False(t, ok, "null values are skipped by aggregation")

	_, ok = unit.DimensionValue(Dimension("fuel_type"))
	assert.False(t, ok)
}

func TestAggregatedSummaryBreakdown(t *testing.T) {
	summary := &AggregatedSummary{
		ByState:  []*AggregationItem{{Name: "TX", Count: 3}},
		ByRegion: []*AggregationItem{{Name: "Southwest", Count: 2}},
		ByCity:   []*AggregationItem{{Name: "Austin", Count: 1}},
		ByCounty: []*AggregationItem{{Name: "Travis", Count: 1}},
	}

	require.Len(t, summary.Breakdown(DimensionState), 1)
	assert.Equal(t, "Southwest", summary.Breakdown(DimensionRegion)[0].Name)
	assert.Equal(t, "Austin", summary.Breakdown(DimensionCity)[0].Name)
	assert.Equal(t, "Travis", summary.Breakdown(DimensionCounty)[0].Name)
	assert.Nil(t, summary.Breakdown(Dimension("fuel_type")))
}

func TestInventoryUnitGeoDimensionValues(t *testing.T) {
	unit := &InventoryUnit{
		Region: null.StringFrom("Southwest"),
		City:   null.StringFrom("Austin"),
	}

	v, ok := unit.DimensionValue(DimensionRegion)
	require.True(t, ok)
	assert.Equal(t, "Southwest", v)

	v, ok = unit.DimensionValue(DimensionCity)
	require.True(t, ok)
	assert.Equal(t, "Austin", v)

	_, ok = unit.DimensionValue(DimensionCounty)
	assert.False(t, ok)
}

func TestHistogramBinTotal(t *testing.T) {
	bin := &HistogramBin{CountsByCategory: map[string]int{"NEW": 2, "USED": 3}}
	assert.Equal(t, 5, bin.Total())

	assert.Zero(t, (&HistogramBin{}).Total())
}
