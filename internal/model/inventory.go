package model

import (
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// InventoryUnit is one physical unit on a dealer lot, denormalized from the
// upstream fact and dimension tables by the ingest pipeline.
type InventoryUnit struct {
	bun.BaseModel `bun:"table:inventory_units,alias:iu" swaggerignore:"true"`

	UnitID      int         `bun:",pk,autoincrement" json:"-"`
	StockNumber string      `json:"stock_number"`
	Condition   null.String `json:"condition"`
	Price       null.Float  `json:"price"`
	DaysOnLot   null.Int    `json:"days_on_lot"`

	RVClass      null.String `json:"rv_class"`
	Manufacturer null.String `json:"manufacturer"`
	Model        null.String `json:"model"`
	ModelYear    null.String `json:"model_year"`
	Floorplan    null.String `json:"floorplan"`

	Dealership  null.String `json:"dealership"`
	DealerGroup null.String `json:"dealer_group"`
	Region      null.String `json:"region"`
	City        null.String `json:"city"`
	County      null.String `json:"county"`
	State       null.String `json:"state"`
}

// DimensionValue returns the unit's value on the given dimension.
// Null values report ok == false and are skipped by aggregation.
func (u *InventoryUnit) DimensionValue(d Dimension) (string, bool) {
	var v null.String
	switch d {
	case DimensionRVType:
		v = u.RVClass
	case DimensionCondition:
		v = u.Condition
	case DimensionDealerGroup:
		v = u.DealerGroup
	case DimensionManufacturer:
		v = u.Manufacturer
	case DimensionState:
		v = u.State
	case DimensionRegion:
		v = u.Region
	case DimensionCity:
		v = u.City
	case DimensionCounty:
		v = u.County
	default:
		return "", false
	}
	if !v.Valid || v.String == "" {
		return "", false
	}
	return v.String, true
}

// FilterOptions is the set of distinct values selectable per dimension,
// used by clients to populate filter controls.
type FilterOptions struct {
	RVTypes       []string `json:"rv_types"`
	States        []string `json:"states"`
	Conditions    []string `json:"conditions"`
	DealerGroups  []string `json:"dealer_groups"`
	Manufacturers []string `json:"manufacturers"`
}

// InventoryPage is a bounded listing of inventory units.
type InventoryPage struct {
	Items []*InventoryUnit `json:"items"`
	Total int              `json:"total"`
}
