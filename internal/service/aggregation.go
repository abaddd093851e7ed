package service

import (
	"context"
	"time"

	linq "github.com/ahmetb/go-linq/v3"
	"github.com/rs/zerolog/log"

	"github.com/lotwise/backend/internal/constant"
	"github.com/lotwise/backend/internal/model"
	"github.com/lotwise/backend/internal/model/cache"
	"github.com/lotwise/backend/internal/pkg/observability"
	"github.com/lotwise/backend/internal/repo"
)

type Aggregation struct {
	InventoryRepo *repo.Inventory
}

func NewAggregation(inventoryRepo *repo.Inventory) *Aggregation {
	return &Aggregation{
		InventoryRepo: inventoryRepo,
	}
}

// Cache: baselineSummary (in-process), 1hr; refreshed by the worker.
func (s *Aggregation) GetBaselineSummary(ctx context.Context) (*model.AggregatedSummary, error) {
	var summary model.AggregatedSummary
	err := cache.BaselineSummary.MutexGetSet(&summary, func() (model.AggregatedSummary, error) {
		observability.AggregationCacheHits.WithLabelValues("baseline", "miss").Inc()
		built, err := s.BuildSummary(ctx, nil)
		if err != nil {
			return model.AggregatedSummary{}, err
		}
		s.touchLastModified("baseline")
		return *built, nil
	}, constant.BaselineCacheTTL)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Cache: aggregatedSummary#dimension|value, 10mins.
func (s *Aggregation) GetFilteredSummary(ctx context.Context, dimension model.Dimension, value string) (*model.AggregatedSummary, error) {
	key := string(dimension) + ":" + value
	var summary model.AggregatedSummary
	calculated, err := cache.FilteredSummary.MutexGetSet(key, &summary, func() (model.AggregatedSummary, error) {
		built, err := s.BuildSummary(ctx, &repo.Filter{Dimension: dimension, Value: value})
		if err != nil {
			return model.AggregatedSummary{}, err
		}
		s.touchLastModified(key)
		return *built, nil
	}, constant.FilteredCacheTTL)
	if err != nil {
		return nil, err
	}

	if calculated {
		observability.AggregationCacheHits.WithLabelValues(string(dimension), "miss").Inc()
	} else {
		observability.AggregationCacheHits.WithLabelValues(string(dimension), "hit").Inc()
	}

	return &summary, nil
}

// BuildSummary computes the aggregated summary from the database, bypassing
// all caches. A nil filter yields the baseline.
func (s *Aggregation) BuildSummary(ctx context.Context, filter *repo.Filter) (*model.AggregatedSummary, error) {
	summary, err := s.InventoryRepo.AggregateTotals(ctx, filter)
	if err != nil {
		return nil, err
	}

	for _, dimension := range model.BreakdownDimensions {
		start := time.Now()
		items, err := s.InventoryRepo.AggregateByDimension(ctx, dimension, filter)
		if err != nil {
			return nil, err
		}
		observability.AggregationQueryDuration.
			WithLabelValues(string(dimension)).
			Observe(time.Since(start).Seconds())

		breakdown := truncateBreakdown(items, model.BreakdownLimits[dimension])
		switch dimension {
		case model.DimensionRVType:
			summary.ByRVType = breakdown
		case model.DimensionCondition:
			summary.ByCondition = breakdown
		case model.DimensionDealerGroup:
			summary.ByDealerGroup = breakdown
		case model.DimensionManufacturer:
			summary.ByManufacturer = breakdown
		case model.DimensionState:
			summary.ByState = breakdown
		case model.DimensionRegion:
			summary.ByRegion = breakdown
		case model.DimensionCity:
			summary.ByCity = breakdown
		case model.DimensionCounty:
			summary.ByCounty = breakdown
		}
	}

	return summary, nil
}

// RefreshBaseline recomputes the baseline summary and installs it into the
// cache, regardless of the cached copy's freshness.
func (s *Aggregation) RefreshBaseline(ctx context.Context) error {
	summary, err := s.BuildSummary(ctx, nil)
	if err != nil {
		return err
	}
	if err := cache.BaselineSummary.Set(*summary, constant.BaselineCacheTTL); err != nil {
		return err
	}
	s.touchLastModified("baseline")
	return nil
}

// FlushCaches drops all aggregation-derived caches. Invoked when a new
// inventory snapshot lands.
func (s *Aggregation) FlushCaches() error {
	return cache.Flush()
}

func (s *Aggregation) touchLastModified(key string) {
	if err := cache.LastModifiedTime.Set("[aggregated#"+key+"]", time.Now(), 0); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to set last modified time")
	}
}

// LastModified reports when the summary under key was last recomputed.
func (s *Aggregation) LastModified(key string) time.Time {
	var t time.Time
	if err := cache.LastModifiedTime.Get("[aggregated#"+key+"]", &t); err != nil {
		return time.Now()
	}
	return t
}

// truncateBreakdown keeps the limit largest buckets by count, ties broken
// by name for stability. A zero limit keeps everything.
func truncateBreakdown(items []*model.AggregationItem, limit int) []*model.AggregationItem {
	q := linq.From(items).
		OrderByDescendingT(func(i *model.AggregationItem) int { return i.Count }).
		ThenByT(func(i *model.AggregationItem) string { return i.Name }).
		Query
	if limit > 0 {
		q = q.Take(limit)
	}

	results := make([]*model.AggregationItem, 0, len(items))
	q.ToSlice(&results)
	return results
}
