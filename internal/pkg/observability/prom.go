package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "lotwisebackend"
)

var (
	AggregationQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "aggregation", "query_duration_seconds"),
		Help:    "Duration of aggregated summary computation in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"dimension"})
	AggregationCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "aggregation", "cache_hits"),
		Help: "Aggregated summary cache hit distribution",
	}, []string{"dimension", "hit"})
	FetcherStaleResponsesDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "fetcher", "stale_responses_discarded"),
		Help: "Responses discarded because a newer filter fetch superseded them",
	})
	FetcherFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "fetcher", "fetch_duration_seconds"),
		Help:    "Duration of filtered aggregation fetches in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"outcome"})
	WorkerRefreshDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "refresh_duration_seconds"),
		Help: "Duration of last baseline refresh in seconds",
	}, []string{"kind"})
)
