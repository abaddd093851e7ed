package dashboard

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/lotwise/backend/internal/model"
)

// ItemClient fetches individual priced items for views that bin locally
// rather than consuming pre-aggregated stats.
type ItemClient interface {
	FetchPricedItems(ctx context.Context, state FilterState, limit int) ([]*model.PricedItem, error)
}

// DefaultHistogramItemLimit bounds how many priced items a histogram view
// pulls in one fetch.
const DefaultHistogramItemLimit = 5000

// Coordinator wires the state store, the fetcher and the selector together:
// every effective selection change triggers a fetch, and re-clicking the
// active selection toggles it off.
type Coordinator struct {
	Store    *StateStore
	Fetcher  *Fetcher
	Selector *Selector

	client      AggregationClient
	itemLimit   int
	unsubscribe func()
}

func NewCoordinator(client AggregationClient) *Coordinator {
	store := NewStateStore()
	fetcher := NewFetcher(client)

	c := &Coordinator{
		Store:     store,
		Fetcher:   fetcher,
		Selector:  NewSelector(store, fetcher),
		client:    client,
		itemLimit: DefaultHistogramItemLimit,
	}

	c.unsubscribe = store.Subscribe(func(state FilterState) {
		c.Fetcher.Refresh(context.Background(), state)
	})

	return c
}

// WithHistogramItemLimit overrides the per-fetch item bound for histograms.
func (c *Coordinator) WithHistogramItemLimit(limit int) *Coordinator {
	if limit > 0 {
		c.itemLimit = limit
	}
	return c
}

// Histogram fetches priced items for the active selection and bins them.
func (c *Coordinator) Histogram(ctx context.Context, binCount int) ([]*model.HistogramBin, error) {
	itemClient, ok := c.client.(ItemClient)
	if !ok {
		return nil, errors.New("coordinator: client does not support item fetches")
	}

	items, err := itemClient.FetchPricedItems(ctx, c.Store.State(), c.itemLimit)
	if err != nil {
		return nil, err
	}
	return BinHistogram(items, binCount), nil
}

// Warm fetches the baseline summary and installs it into the selector so
// panels have data before the first interaction.
func (c *Coordinator) Warm(ctx context.Context) error {
	warmable, ok := c.client.(interface {
		WarmBaseline(ctx context.Context) (*model.AggregatedSummary, error)
	})
	if !ok {
		summary, err := c.client.FetchAggregatedSummary(ctx, FilterState{})
		if err != nil {
			return err
		}
		c.Selector.SetBaseline(summary)
		return nil
	}

	summary, err := warmable.WarmBaseline(ctx)
	if err != nil {
		return err
	}
	c.Selector.SetBaseline(summary)
	return nil
}

// Toggle applies a click on the selection (d, v): selecting it when
// inactive, clearing it when it is already the active selection. This is
// the single place the toggle-on-reselect policy lives; the store itself
// never toggles.
func (c *Coordinator) Toggle(d model.Dimension, v, source string) {
	if c.Store.IsFiltered(d, v) {
		log.Debug().
			Str("dimension", string(d)).
			Str("value", v).
			Str("source", source).
			Msg("coordinator: toggling active selection off")
		c.Store.ClearFilter()
		return
	}
	c.Store.SetFilter(d, v, source)
}

// Close detaches the coordinator from the store.
func (c *Coordinator) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}
