package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotwise/backend/internal/model"
)

func TestStateStoreSetAndClear(t *testing.T) {
	s := NewStateStore()

	assert.False(t, s.IsAnyFiltered())

	require.True(t, s.SetFilter(model.DimensionState, "TX", "map"))
	state := s.State()
	assert.True(t, state.Active)
	assert.Equal(t, model.DimensionState, state.Dimension)
	assert.Equal(t, "TX", state.Value)
	assert.Equal(t, "map", state.Source)
	assert.True(t, s.IsFiltered(model.DimensionState, "TX"))

	require.True(t, s.ClearFilter())
	assert.False(t, s.IsAnyFiltered())
	assert.False(t, s.IsFiltered(model.DimensionState, "TX"))

	assert.False(t, s.ClearFilter(), "clearing an already-clear store shall be a no-op")
}

func TestStateStoreIdempotentSet(t *testing.T) {
	s := NewStateStore()

	notified := 0
	s.Subscribe(func(FilterState) {
		notified++
	})

	assert.True(t, s.SetFilter(model.DimensionCondition, "NEW", "bar"))
	assert.False(t, s.SetFilter(model.DimensionCondition, "NEW", "bar"), "re-setting the identical selection shall be a no-op")
	assert.Equal(t, 1, notified)
}

func TestStateStoreExclusivity(t *testing.T) {
	s := NewStateStore()

	require.True(t, s.SetFilter(model.DimensionState, "TX", "map"))
	require.True(t, s.SetFilter(model.DimensionManufacturer, "Thor", "bar"))

	assert.False(t, s.IsFiltered(model.DimensionState, "TX"))
	assert.True(t, s.IsFiltered(model.DimensionManufacturer, "Thor"))
}

func TestStateStoreAcceptsUnknownDimension(t *testing.T) {
	s := NewStateStore()

	// unknown dimensions degrade at the fetch layer, not here
	require.True(t, s.SetFilter(model.Dimension("fuel_type"), "diesel", "bar"))
	assert.True(t, s.IsFiltered(model.Dimension("fuel_type"), "diesel"))
}

func TestStateStoreNotifiesSynchronously(t *testing.T) {
	s := NewStateStore()

	var seen []FilterState
	s.Subscribe(func(state FilterState) {
		seen = append(seen, state)
	})

	s.SetFilter(model.DimensionState, "TX", "map")
	s.SetFilter(model.DimensionState, "FL", "map")
	s.ClearFilter()

	require.Len(t, seen, 3)
	assert.Equal(t, "TX", seen[0].Value)
	assert.Equal(t, "FL", seen[1].Value)
	assert.False(t, seen[2].Active)
}

func TestStateStoreUnsubscribe(t *testing.T) {
	s := NewStateStore()

	notified := 0
	unsubscribe := s.Subscribe(func(FilterState) {
		notified++
	})

	s.SetFilter(model.DimensionState, "TX", "map")
	unsubscribe()
	s.SetFilter(model.DimensionState, "FL", "map")

	assert.Equal(t, 1, notified)
}
