package cache

import (
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lotwise/backend/internal/model"
	"github.com/lotwise/backend/internal/pkg/cache"
)

type Flusher func() error

var (
	// BaselineSummary is the unfiltered aggregated summary over the whole
	// inventory. There is exactly one of those so it lives in-process.
	BaselineSummary *cache.Singular[model.AggregatedSummary]

	// FilteredSummary holds one aggregated summary per (dimension, value)
	// selection, shared across instances via redis.
	FilteredSummary *cache.Set[model.AggregatedSummary]

	FilterOptions *cache.Singular[model.FilterOptions]

	LastModifiedTime *cache.Set[time.Time]

	once sync.Once

	SetMap             map[string]Flusher
	SingularFlusherMap map[string]Flusher
)

func Initialize(client *redis.Client) {
	once.Do(func() {
		initializeCaches(client)
	})
}

// Flush drops every aggregation-derived cache entry. Invoked when the
// underlying inventory changes.
func Flush() error {
	for _, flush := range SingularFlusherMap {
		if err := flush(); err != nil {
			return err
		}
	}
	for _, flush := range SetMap {
		if err := flush(); err != nil {
			return err
		}
	}
	return nil
}

func initializeCaches(client *redis.Client) {
	SetMap = make(map[string]Flusher)
	SingularFlusherMap = make(map[string]Flusher)

	// aggregation
	BaselineSummary = cache.NewSingular[model.AggregatedSummary]("baselineSummary")
	FilteredSummary = cache.NewSet[model.AggregatedSummary](client, "aggregatedSummary#dimension|value")

	SingularFlusherMap["baselineSummary"] = BaselineSummary.Delete
	SetMap["aggregatedSummary#dimension|value"] = FilteredSummary.Flush

	// filter options
	FilterOptions = cache.NewSingular[model.FilterOptions]("filterOptions")

	SingularFlusherMap["filterOptions"] = FilterOptions.Delete

	// others
	LastModifiedTime = cache.NewSet[time.Time](client, "lastModifiedTime#key")

	SetMap["lastModifiedTime#key"] = LastModifiedTime.Flush
}
