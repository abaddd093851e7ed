package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotwise/backend/internal/model"
)

func TestTruncateBreakdownKeepsLargestBuckets(t *testing.T) {
	items := []*model.AggregationItem{
		{Name: "Travel Trailer", Count: 120},
		{Name: "Class A", Count: 45},
		{Name: "Fifth Wheel", Count: 80},
		{Name: "Class C", Count: 45},
		{Name: "Pop Up", Count: 3},
	}

	results := truncateBreakdown(items, 3)
	require.Len(t, results, 3)
	assert.Equal(t, "Travel Trailer", results[0].Name)
	assert.Equal(t, "Fifth Wheel", results[1].Name)
	// ties break by name for a stable order
	assert.Equal(t, "Class A", results[2].Name)
}

func TestTruncateBreakdownZeroLimitKeepsAll(t *testing.T) {
	items := []*model.AggregationItem{
		{Name: "USED", Count: 10},
		{Name: "NEW", Count: 20},
	}

	results := truncateBreakdown(items, 0)
	require.Len(t, results, 2)
	assert.Equal(t, "NEW", results[0].Name)
	assert.Equal(t, "USED", results[1].Name)
}

func TestTruncateBreakdownShorterThanLimit(t *testing.T) {
	items := []*model.AggregationItem{{Name: "TX", Count: 1}}

	assert.Len(t, truncateBreakdown(items, 65), 1)
	assert.Empty(t, truncateBreakdown(nil, 10))
}
