package repo

import (
	"context"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"

	"github.com/lotwise/backend/internal/model"
	"github.com/lotwise/backend/internal/pkg/lwerr"
	"github.com/lotwise/backend/internal/repo/selector"
)

// dimensionColumns maps dimensions onto inventory_units columns. Only
// columns listed here may ever be interpolated into a query.
var dimensionColumns = map[model.Dimension]string{
	model.DimensionRVType:       "rv_class",
	model.DimensionCondition:    "condition",
	model.DimensionDealerGroup:  "dealer_group",
	model.DimensionManufacturer: "manufacturer",
	model.DimensionState:        "state",
	model.DimensionRegion:       "region",
	model.DimensionCity:         "city",
	model.DimensionCounty:       "county",
}

// Filter restricts a query to units whose Dimension column equals Value,
// optionally bounded to a price range. A nil *Filter means the unfiltered
// baseline; an empty Dimension with a price bound means price-range only.
type Filter struct {
	Dimension model.Dimension
	Value     string

	MinPrice null.Float
	MaxPrice null.Float
}

// HasPriceRange reports whether either price bound is set.
func (f *Filter) HasPriceRange() bool {
	return f != nil && (f.MinPrice.Valid || f.MaxPrice.Valid)
}

type Inventory struct {
	DB  *bun.DB
	sel selector.S[model.InventoryUnit]
}

func NewInventory(db *bun.DB) *Inventory {
	return &Inventory{
		DB:  db,
		sel: selector.New[model.InventoryUnit](db),
	}
}

func applyFilter(q *bun.SelectQuery, filter *Filter) (*bun.SelectQuery, error) {
	if filter == nil {
		return q, nil
	}
	if filter.Dimension != "" {
		col, ok := dimensionColumns[filter.Dimension]
		if !ok {
			return nil, lwerr.ErrInvalidReq.Msg("unknown dimension: %s", filter.Dimension)
		}
		q = q.Where("? = ?", bun.Ident(col), filter.Value)
	}
	if filter.MinPrice.Valid {
		q = q.Where("price >= ?", filter.MinPrice.Float64)
	}
	if filter.MaxPrice.Valid {
		q = q.Where("price <= ?", filter.MaxPrice.Float64)
	}
	return q, nil
}

// AggregateByDimension computes per-bucket statistics over the given
// dimension, optionally restricted by filter. Units with a NULL value on
// the grouped dimension are excluded. Buckets arrive ordered by count
// descending; truncation to the rendered top-N happens in the service.
func (r *Inventory) AggregateByDimension(ctx context.Context, dimension model.Dimension, filter *Filter) ([]*model.AggregationItem, error) {
	col, ok := dimensionColumns[dimension]
	if !ok {
		return nil, lwerr.ErrInvalidReq.Msg("unknown dimension: %s", dimension)
	}

	var results []*model.AggregationItem
	q := r.DB.NewSelect().
		TableExpr("inventory_units AS iu").
		ColumnExpr("? AS name", bun.Ident(col)).
		ColumnExpr("COUNT(*) AS count").
		ColumnExpr("COALESCE(SUM(price), 0) AS total_value").
		ColumnExpr("COALESCE(AVG(price), 0) AS avg_price").
		ColumnExpr("COALESCE(MIN(price), 0) AS min_price").
		ColumnExpr("COALESCE(MAX(price), 0) AS max_price").
		ColumnExpr("AVG(days_on_lot) AS avg_days_on_lot").
		Where("? IS NOT NULL", bun.Ident(col))

	q, err := applyFilter(q, filter)
	if err != nil {
		return nil, err
	}

	if err := q.
		GroupExpr("?", bun.Ident(col)).
		OrderExpr("count DESC, name ASC").
		Scan(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}

// AggregateTotals computes the summary totals over the optionally filtered
// inventory.
func (r *Inventory) AggregateTotals(ctx context.Context, filter *Filter) (*model.AggregatedSummary, error) {
	var result model.AggregatedSummary
	q := r.DB.NewSelect().
		TableExpr("inventory_units AS iu").
		ColumnExpr("COUNT(*) AS total_units").
		ColumnExpr("COALESCE(SUM(price), 0) AS total_value").
		ColumnExpr("COALESCE(AVG(price), 0) AS avg_price").
		ColumnExpr("COALESCE(MIN(price), 0) AS min_price").
		ColumnExpr("COALESCE(MAX(price), 0) AS max_price")

	q, err := applyFilter(q, filter)
	if err != nil {
		return nil, err
	}

	if err := q.Scan(ctx, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetPricedItems returns up to limit priced units for building a price
// distribution, most expensive first so the upper tail is never truncated
// away. The category is the unit's condition.
func (r *Inventory) GetPricedItems(ctx context.Context, filter *Filter, limit int) ([]*model.PricedItem, error) {
	var results []*model.PricedItem
	q := r.DB.NewSelect().
		TableExpr("inventory_units AS iu").
		ColumnExpr("price").
		ColumnExpr("condition AS category").
		Where("price > 0")

	q, err := applyFilter(q, filter)
	if err != nil {
		return nil, err
	}

	if err := q.
		OrderExpr("price DESC").
		Limit(limit).
		Scan(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}

// GetUnits returns a bounded page of units together with the total count of
// units matching the filter.
func (r *Inventory) GetUnits(ctx context.Context, filter *Filter, limit, offset int) (*model.InventoryPage, error) {
	if filter != nil && filter.Dimension != "" {
		if _, ok := dimensionColumns[filter.Dimension]; !ok {
			return nil, lwerr.ErrInvalidReq.Msg("unknown dimension: %s", filter.Dimension)
		}
	}

	items, err := r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q, _ = applyFilter(q, filter)
		return q.Order("unit_id ASC").Limit(limit).Offset(offset)
	})
	if err != nil {
		return nil, err
	}

	countQ := r.DB.NewSelect().Model((*model.InventoryUnit)(nil))
	countQ, err = applyFilter(countQ, filter)
	if err != nil {
		return nil, err
	}
	total, err := countQ.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &model.InventoryPage{
		Items: items,
		Total: total,
	}, nil
}

// GetDistinctValues returns the distinct non-null values of a dimension in
// ascending order, for filter controls.
func (r *Inventory) GetDistinctValues(ctx context.Context, dimension model.Dimension) ([]string, error) {
	col, ok := dimensionColumns[dimension]
	if !ok {
		return nil, lwerr.ErrInvalidReq.Msg("unknown dimension: %s", dimension)
	}

	var values []string
	err := r.DB.NewSelect().
		TableExpr("inventory_units AS iu").
		ColumnExpr("DISTINCT ?", bun.Ident(col)).
		Where("? IS NOT NULL", bun.Ident(col)).
		OrderExpr("? ASC", bun.Ident(col)).
		Scan(ctx, &values)
	if err != nil {
		return nil, err
	}

	return values, nil
}
