package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lotwise/backend/internal/model"
	"github.com/lotwise/backend/internal/pkg/observability"
)

// AggregationClient fetches the aggregated summary for a selection from the
// backend. A zero-value (inactive) state requests the baseline.
type AggregationClient interface {
	FetchAggregatedSummary(ctx context.Context, state FilterState) (*model.AggregatedSummary, error)
}

// DefaultFetchTimeout bounds a single aggregation fetch.
const DefaultFetchTimeout = 15 * time.Second

// FetchSnapshot is the fetcher's externally visible state at one instant.
type FetchSnapshot struct {
	// Summary is the most recently applied response. It is retained while a
	// newer fetch is in flight and when a fetch fails.
	Summary *model.AggregatedSummary

	// State is the selection Summary was fetched for.
	State FilterState

	Loading bool
	Err     error
}

// Fetcher resolves filter changes against the backend with last-request-wins
// semantics: every Refresh supersedes all in-flight fetches, and a response
// is applied only if no newer request was issued after it. Responses from
// superseded requests are discarded no matter when they arrive.
type Fetcher struct {
	client  AggregationClient
	timeout time.Duration

	seq atomic.Uint64

	mu       sync.Mutex
	latest   uint64
	snapshot FetchSnapshot
}

func NewFetcher(client AggregationClient) *Fetcher {
	return &Fetcher{
		client:  client,
		timeout: DefaultFetchTimeout,
	}
}

// WithTimeout overrides the per-fetch timeout.
func (f *Fetcher) WithTimeout(timeout time.Duration) *Fetcher {
	f.timeout = timeout
	return f
}

// Snapshot returns the current fetch state.
func (f *Fetcher) Snapshot() FetchSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot
}

// Refresh issues a fetch for the given selection, superseding any fetch
// still in flight. Previously applied data stays visible while the fetch
// runs. The returned channel closes once the fetch has been resolved, i.e.
// applied, failed, or discarded as stale.
func (f *Fetcher) Refresh(ctx context.Context, state FilterState) <-chan struct{} {
	seq := f.seq.Add(1)

	f.mu.Lock()
	f.latest = seq
	f.snapshot.Loading = true
	// a failure, if recorded, belonged to a now-superseded request
	f.snapshot.Err = nil
	f.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.fetch(ctx, seq, state)
	}()
	return done
}

func (f *Fetcher) fetch(ctx context.Context, seq uint64, state FilterState) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	start := time.Now()
	summary, err := f.client.FetchAggregatedSummary(ctx, state)

	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.latest {
		observability.FetcherStaleResponsesDiscarded.Inc()
		observability.FetcherFetchDuration.WithLabelValues("stale").Observe(time.Since(start).Seconds())
		log.Debug().
			Uint64("seq", seq).
			Uint64("latest", f.latest).
			Msg("fetcher: discarding response superseded by a newer request")
		return
	}

	f.snapshot.Loading = false
	if err != nil {
		// keep the previous summary visible; only record the failure
		f.snapshot.Err = err
		observability.FetcherFetchDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		log.Warn().
			Err(err).
			Str("dimension", string(state.Dimension)).
			Str("value", state.Value).
			Msg("fetcher: aggregation fetch failed")
		return
	}

	f.snapshot.Summary = summary
	f.snapshot.State = state
	f.snapshot.Err = nil
	observability.FetcherFetchDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
}
