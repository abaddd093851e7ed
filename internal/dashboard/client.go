package dashboard

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/lotwise/backend/internal/model"
)

var ErrUpstreamUnavailable = errors.New("aggregation backend unavailable")

// Client talks to the inventory aggregation API over HTTP. It implements
// AggregationClient.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: time.Second * 10,
		},
	}
}

// FetchAggregatedSummary fetches the aggregated summary for the selection.
// A selection on an unrecognized dimension degrades to the baseline with a
// warning rather than failing the dashboard.
func (c *Client) FetchAggregatedSummary(ctx context.Context, state FilterState) (*model.AggregatedSummary, error) {
	query := url.Values{}
	if state.Active {
		param, ok := state.Dimension.QueryParam()
		if !ok {
			log.Warn().
				Str("dimension", string(state.Dimension)).
				Msg("client: unrecognized dimension, fetching baseline instead")
		} else {
			query.Set(param, state.Value)
		}
	}

	var summary model.AggregatedSummary
	if err := c.getJSON(ctx, "/api/v1/inventory/aggregated", query, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// FetchPricedItems fetches up to limit inventory units for the selection
// and projects them onto price/category pairs for binning. The category is
// the unit's condition.
func (c *Client) FetchPricedItems(ctx context.Context, state FilterState, limit int) ([]*model.PricedItem, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if state.Active {
		if param, ok := state.Dimension.QueryParam(); ok {
			query.Set(param, state.Value)
		}
	}

	var page model.InventoryPage
	if err := c.getJSON(ctx, "/api/v1/inventory", query, &page); err != nil {
		return nil, err
	}

	items := make([]*model.PricedItem, 0, len(page.Items))
	for _, unit := range page.Items {
		items = append(items, &model.PricedItem{
			Price:    unit.Price,
			Category: unit.Condition,
		})
	}
	return items, nil
}

// WarmBaseline fetches the unfiltered summary with retries, for start-up
// when the backend may still be coming up.
func (c *Client) WarmBaseline(ctx context.Context) (*model.AggregatedSummary, error) {
	return retry.DoWithData(func() (*model.AggregatedSummary, error) {
		return c.FetchAggregatedSummary(ctx, FilterState{})
	}, retry.Context(ctx), retry.Attempts(5), retry.Delay(time.Second))
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return errors.Wrap(err, "client: failed to create request")
	}

	res, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(ErrUpstreamUnavailable, err.Error())
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return errors.Wrapf(ErrUpstreamUnavailable, "unexpected status code %d from %s", res.StatusCode, path)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "client: failed to read response body")
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return errors.Wrap(err, "client: failed to unmarshal response body")
	}
	return nil
}
