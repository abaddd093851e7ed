package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/lotwise/backend/internal/model"
)

func TestClientFetchAggregatedSummaryQueryParams(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		b, err := json.Marshal(summaryOf(5))
		require.NoError(t, err)
		_, _ = w.Write(b)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	summary, err := c.FetchAggregatedSummary(context.Background(), FilterState{
		Dimension: model.DimensionRVType,
		Value:     "Class A",
		Active:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, summary.TotalUnits)

	assert.Equal(t, "/api/v1/inventory/aggregated", gotPath)
	// rv_type travels as rv_class on the wire
	assert.Equal(t, "Class A", gotQuery.Get("rv_class"))
	assert.Empty(t, gotQuery.Get("rv_type"))
}

func TestClientUnknownDimensionFetchesBaseline(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		b, err := json.Marshal(summaryOf(9))
		require.NoError(t, err)
		_, _ = w.Write(b)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	summary, err := c.FetchAggregatedSummary(context.Background(), FilterState{
		Dimension: model.Dimension("fuel_type"),
		Value:     "diesel",
		Active:    true,
	})
	require.NoError(t, err, "an unrecognized dimension shall degrade, not fail")
	assert.Equal(t, 9, summary.TotalUnits)
	assert.Empty(t, gotQuery, "no query parameter shall be produced")
}

func TestClientFetchPricedItems(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		b, err := json.Marshal(model.InventoryPage{
			Items: []*model.InventoryUnit{
				{Price: null.FloatFrom(42000), Condition: null.StringFrom("NEW")},
				{Condition: null.StringFrom("USED")},
			},
			Total: 2,
		})
		require.NoError(t, err)
		_, _ = w.Write(b)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	items, err := c.FetchPricedItems(context.Background(), FilterState{
		Dimension: model.DimensionCondition,
		Value:     "NEW",
		Active:    true,
	}, 25)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/inventory", gotPath)
	assert.Equal(t, "25", gotQuery.Get("limit"))
	assert.Equal(t, "NEW", gotQuery.Get("condition"))

	require.Len(t, items, 2)
	assert.Equal(t, float64(42000), items[0].Price.Float64)
	assert.Equal(t, "NEW", items[0].Category.String)
	assert.False(t, items[1].Price.Valid)
}

func TestClientUpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.FetchAggregatedSummary(context.Background(), FilterState{})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestClientUpstreamUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL)
	_, err := c.FetchAggregatedSummary(context.Background(), FilterState{})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}
