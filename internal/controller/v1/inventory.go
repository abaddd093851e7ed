package v1

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"gopkg.in/guregu/null.v3"

	"github.com/lotwise/backend/internal/app/appconfig"
	"github.com/lotwise/backend/internal/dashboard"
	"github.com/lotwise/backend/internal/model"
	"github.com/lotwise/backend/internal/pkg/cachectrl"
	"github.com/lotwise/backend/internal/pkg/lwerr"
	"github.com/lotwise/backend/internal/pkg/rekuest"
	"github.com/lotwise/backend/internal/repo"
	"github.com/lotwise/backend/internal/server/svr"
	"github.com/lotwise/backend/internal/service"
)

type Inventory struct {
	fx.In

	Config             *appconfig.Config
	InventoryService   *service.Inventory
	AggregationService *service.Aggregation
}

func RegisterInventory(v1 *svr.V1, c Inventory) {
	v1.Get("/inventory/aggregated", c.GetAggregated)
	v1.Get("/inventory/price-histogram", c.GetPriceHistogram)
	v1.Get("/inventory", c.GetInventory)
	v1.Get("/filters", c.GetFilters)
}

type priceRangeRequest struct {
	MinPrice float64 `query:"min_price" validate:"omitempty,min=0"`
	MaxPrice float64 `query:"max_price" validate:"omitempty,min=0"`
}

// resolveFilter extracts the single active filter from the query string,
// together with the optional price range. More than one dimension parameter
// at a time is rejected.
func resolveFilter(ctx *fiber.Ctx) (*repo.Filter, error) {
	var filter *repo.Filter
	for _, dimension := range model.Dimensions {
		param, ok := dimension.QueryParam()
		if !ok {
			continue
		}
		value := ctx.Query(param)
		if value == "" {
			continue
		}
		if filter != nil {
			return nil, lwerr.ErrInvalidReq.Msg("at most one filter may be active, got both %s and %s", filter.Dimension, dimension)
		}
		filter = &repo.Filter{Dimension: dimension, Value: value}
	}

	var rng priceRangeRequest
	if err := rekuest.ValidQuery(ctx, &rng); err != nil {
		return nil, err
	}
	if rng.MinPrice > 0 || rng.MaxPrice > 0 {
		if rng.MinPrice > 0 && rng.MaxPrice > 0 && rng.MinPrice > rng.MaxPrice {
			return nil, lwerr.ErrInvalidReq.Msg("min_price must not exceed max_price")
		}
		if filter == nil {
			filter = &repo.Filter{}
		}
		if rng.MinPrice > 0 {
			filter.MinPrice = null.FloatFrom(rng.MinPrice)
		}
		if rng.MaxPrice > 0 {
			filter.MaxPrice = null.FloatFrom(rng.MaxPrice)
		}
	}

	return filter, nil
}

func (c *Inventory) GetAggregated(ctx *fiber.Ctx) error {
	filter, err := resolveFilter(ctx)
	if err != nil {
		return err
	}

	// price-ranged summaries are computed per request; the key space of
	// (dimension, value, bounds) is unbounded so they stay out of the caches
	if filter.HasPriceRange() {
		summary, err := c.AggregationService.BuildSummary(ctx.UserContext(), filter)
		if err != nil {
			return err
		}
		cachectrl.OptOut(ctx)
		return ctx.JSON(summary)
	}

	var summary *model.AggregatedSummary
	lastModifiedKey := "baseline"
	if filter == nil {
		summary, err = c.AggregationService.GetBaselineSummary(ctx.UserContext())
	} else {
		lastModifiedKey = string(filter.Dimension) + ":" + filter.Value
		summary, err = c.AggregationService.GetFilteredSummary(ctx.UserContext(), filter.Dimension, filter.Value)
	}
	if err != nil {
		return err
	}

	cachectrl.OptInCustom(ctx, c.AggregationService.LastModified(lastModifiedKey), c.cacheOffset())

	return ctx.JSON(summary)
}

type inventoryRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=10000"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

func (c *Inventory) GetInventory(ctx *fiber.Ctx) error {
	var req inventoryRequest
	if err := rekuest.ValidQuery(ctx, &req); err != nil {
		return err
	}

	filter, err := resolveFilter(ctx)
	if err != nil {
		return err
	}

	page, err := c.InventoryService.GetUnits(ctx.UserContext(), filter, req.Limit, req.Offset)
	if err != nil {
		return err
	}

	cachectrl.OptOut(ctx)

	return ctx.JSON(page)
}

type priceHistogramRequest struct {
	Bins int `query:"bins" validate:"omitempty,min=1,max=60"`
}

type priceHistogramResponse struct {
	Bins       []*model.HistogramBin `json:"bins"`
	TotalItems int                   `json:"total_items"`
}

func (c *Inventory) GetPriceHistogram(ctx *fiber.Ctx) error {
	var req priceHistogramRequest
	if err := rekuest.ValidQuery(ctx, &req); err != nil {
		return err
	}
	if req.Bins == 0 {
		req.Bins = c.Config.HistogramBinCount
	}

	filter, err := resolveFilter(ctx)
	if err != nil {
		return err
	}

	items, err := c.InventoryService.GetPricedItems(ctx.UserContext(), filter)
	if err != nil {
		return err
	}

	bins := dashboard.BinHistogram(items, req.Bins)

	total := 0
	for _, bin := range bins {
		total += bin.Total()
	}

	return ctx.JSON(priceHistogramResponse{
		Bins:       bins,
		TotalItems: total,
	})
}

func (c *Inventory) GetFilters(ctx *fiber.Ctx) error {
	options, err := c.InventoryService.GetFilterOptions(ctx.UserContext())
	if err != nil {
		return err
	}

	cachectrl.OptInCustom(ctx, c.AggregationService.LastModified("baseline"), c.cacheOffset())

	return ctx.JSON(options)
}

func (c *Inventory) cacheOffset() time.Duration {
	return c.Config.WorkerInterval
}
