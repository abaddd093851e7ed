package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/lotwise/backend/internal/app/appconfig"
	"github.com/lotwise/backend/internal/constant"
	"github.com/lotwise/backend/internal/model"
	"github.com/lotwise/backend/internal/model/cache"
	"github.com/lotwise/backend/internal/repo"
)

type Inventory struct {
	Config        *appconfig.Config
	InventoryRepo *repo.Inventory
}

func NewInventory(conf *appconfig.Config, inventoryRepo *repo.Inventory) *Inventory {
	return &Inventory{
		Config:        conf,
		InventoryRepo: inventoryRepo,
	}
}

// GetUnits returns a bounded page of inventory units. The limit is clamped
// into [1, MaxInventoryLimit] and defaults when unspecified.
func (s *Inventory) GetUnits(ctx context.Context, filter *repo.Filter, limit, offset int) (*model.InventoryPage, error) {
	if limit <= 0 {
		limit = constant.DefaultInventoryLimit
	}
	limit = lo.Clamp(limit, 1, constant.MaxInventoryLimit)
	if offset < 0 {
		offset = 0
	}

	return s.InventoryRepo.GetUnits(ctx, filter, limit, offset)
}

// GetPricedItems returns the priced units used to build a price histogram,
// bounded by the configured item limit.
func (s *Inventory) GetPricedItems(ctx context.Context, filter *repo.Filter) ([]*model.PricedItem, error) {
	return s.InventoryRepo.GetPricedItems(ctx, filter, s.Config.HistogramItemLimit)
}

// Cache: filterOptions (in-process), 1hr.
func (s *Inventory) GetFilterOptions(ctx context.Context) (*model.FilterOptions, error) {
	var options model.FilterOptions
	err := cache.FilterOptions.MutexGetSet(&options, func() (model.FilterOptions, error) {
		return s.buildFilterOptions(ctx)
	}, constant.BaselineCacheTTL)
	if err != nil {
		return nil, err
	}
	return &options, nil
}

func (s *Inventory) buildFilterOptions(ctx context.Context) (model.FilterOptions, error) {
	var options model.FilterOptions
	for _, pair := range []struct {
		dimension model.Dimension
		dest      *[]string
	}{
		{model.DimensionRVType, &options.RVTypes},
		{model.DimensionCondition, &options.Conditions},
		{model.DimensionDealerGroup, &options.DealerGroups},
		{model.DimensionManufacturer, &options.Manufacturers},
		{model.DimensionState, &options.States},
	} {
		values, err := s.InventoryRepo.GetDistinctValues(ctx, pair.dimension)
		if err != nil {
			return model.FilterOptions{}, err
		}
		*pair.dest = values
	}
	return options, nil
}
