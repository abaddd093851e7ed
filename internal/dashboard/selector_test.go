package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotwise/backend/internal/model"
)

func TestSelectorBaselineWhenUnfiltered(t *testing.T) {
	store := NewStateStore()
	fetcher := NewFetcher(clientFunc(func(ctx context.Context, state FilterState) (*model.AggregatedSummary, error) {
		return summaryOf(1), nil
	}))
	selector := NewSelector(store, fetcher)

	baseline := summaryOf(100)
	selector.SetBaseline(baseline)

	data := selector.DisplayData()
	assert.Equal(t, SourceBaseline, data.Source)
	assert.Same(t, baseline, data.Summary)
	assert.False(t, data.Loading)
}

func TestSelectorFallsBackToBaselineWhileLoading(t *testing.T) {
	gate := make(chan struct{})
	entered := make(chan struct{})
	store := NewStateStore()
	fetcher := NewFetcher(clientFunc(func(ctx context.Context, state FilterState) (*model.AggregatedSummary, error) {
		close(entered)
		<-gate
		return summaryOf(10), nil
	}))
	selector := NewSelector(store, fetcher)
	selector.SetBaseline(summaryOf(100))

	store.SetFilter(model.DimensionState, "TX", "map")
	done := fetcher.Refresh(context.Background(), store.State())
	<-entered

	data := selector.DisplayData()
	assert.Equal(t, SourceBaseline, data.Source, "baseline shall fill in before the first filtered response")
	assert.True(t, data.Loading)
	assert.Equal(t, 100, data.Summary.TotalUnits)

	close(gate)
	<-done

	data = selector.DisplayData()
	assert.Equal(t, SourceFiltered, data.Source)
	assert.False(t, data.Loading)
	assert.Equal(t, 10, data.Summary.TotalUnits)
}

func TestSelectorBreakdown(t *testing.T) {
	store := NewStateStore()
	fetcher := NewFetcher(clientFunc(func(ctx context.Context, state FilterState) (*model.AggregatedSummary, error) {
		return summaryOf(1), nil
	}))
	selector := NewSelector(store, fetcher)

	assert.Nil(t, selector.DisplayData().Breakdown(model.DimensionState), "no summary yet")

	baseline := summaryOf(2)
	baseline.ByState = []*model.AggregationItem{{Name: "TX", Count: 2}}
	selector.SetBaseline(baseline)

	breakdown := selector.DisplayData().Breakdown(model.DimensionState)
	require.Len(t, breakdown, 1)
	assert.Equal(t, "TX", breakdown[0].Name)
}

func TestCoordinatorToggle(t *testing.T) {
	c := NewCoordinator(clientFunc(func(ctx context.Context, state FilterState) (*model.AggregatedSummary, error) {
		return summaryOf(1), nil
	}))
	defer c.Close()

	c.Toggle(model.DimensionCondition, "NEW", "bar")
	assert.True(t, c.Store.IsFiltered(model.DimensionCondition, "NEW"))

	// a second click on the same selection clears it
	c.Toggle(model.DimensionCondition, "NEW", "bar")
	assert.False(t, c.Store.IsAnyFiltered())

	c.Toggle(model.DimensionCondition, "NEW", "bar")
	c.Toggle(model.DimensionCondition, "USED", "bar")
	assert.True(t, c.Store.IsFiltered(model.DimensionCondition, "USED"))
}

type fakeFullClient struct {
	clientFunc
	items []*model.PricedItem
}

func (f *fakeFullClient) FetchPricedItems(ctx context.Context, state FilterState, limit int) ([]*model.PricedItem, error) {
	if limit < len(f.items) {
		return f.items[:limit], nil
	}
	return f.items, nil
}

func TestCoordinatorHistogram(t *testing.T) {
	client := &fakeFullClient{
		clientFunc: func(ctx context.Context, state FilterState) (*model.AggregatedSummary, error) {
			return summaryOf(1), nil
		},
		items: []*model.PricedItem{
			priced(1000, "NEW"),
			priced(5000, "NEW"),
			priced(9000, "USED"),
		},
	}

	c := NewCoordinator(client).WithHistogramItemLimit(2)
	defer c.Close()

	bins, err := c.Histogram(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, bins, 2)
	assert.Equal(t, 2, totalCount(bins), "the item limit bounds the fetch")
}

func TestCoordinatorHistogramUnsupportedClient(t *testing.T) {
	c := NewCoordinator(clientFunc(func(ctx context.Context, state FilterState) (*model.AggregatedSummary, error) {
		return summaryOf(1), nil
	}))
	defer c.Close()

	_, err := c.Histogram(context.Background(), 10)
	assert.Error(t, err)
}

func TestCoordinatorWarm(t *testing.T) {
	c := NewCoordinator(clientFunc(func(ctx context.Context, state FilterState) (*model.AggregatedSummary, error) {
		assert.False(t, state.Active)
		return summaryOf(55), nil
	}))
	defer c.Close()

	require.NoError(t, c.Warm(context.Background()))
	require.NotNil(t, c.Selector.Baseline())
	assert.Equal(t, 55, c.Selector.Baseline().TotalUnits)
}
