package v1

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotwise/backend/internal/model"
	"github.com/lotwise/backend/internal/repo"
)

func resolveOn(t *testing.T, target string) (*repo.Filter, error) {
	t.Helper()

	app := fiber.New()
	var filter *repo.Filter
	var ferr error
	app.Get("/", func(c *fiber.Ctx) error {
		filter, ferr = resolveFilter(c)
		return nil
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
	require.NoError(t, err)
	return filter, ferr
}

func TestResolveFilterNoParams(t *testing.T) {
	filter, err := resolveOn(t, "/")
	require.NoError(t, err)
	assert.Nil(t, filter)
}

func TestResolveFilterSingleDimension(t *testing.T) {
	filter, err := resolveOn(t, "/?condition=NEW")
	require.NoError(t, err)
	require.NotNil(t, filter)
	assert.Equal(t, model.DimensionCondition, filter.Dimension)
	assert.Equal(t, "NEW", filter.Value)
	assert.False(t, filter.HasPriceRange())
}

func TestResolveFilterWireParamMapsToDimension(t *testing.T) {
	filter, err := resolveOn(t, "/?rv_class=Class+A")
	require.NoError(t, err)
	require.NotNil(t, filter)
	assert.Equal(t, model.DimensionRVType, filter.Dimension)
	assert.Equal(t, "Class A", filter.Value)
}

func TestResolveFilterRejectsMultipleDimensions(t *testing.T) {
	_, err := resolveOn(t, "/?condition=NEW&state=TX")
	assert.Error(t, err)
}

func TestResolveFilterPriceRange(t *testing.T) {
	filter, err := resolveOn(t, "/?min_price=10000&max_price=50000")
	require.NoError(t, err)
	require.NotNil(t, filter)
	assert.Empty(t, filter.Dimension)
	require.True(t, filter.HasPriceRange())
	assert.Equal(t, float64(10000), filter.MinPrice.Float64)
	assert.Equal(t, float64(50000), filter.MaxPrice.Float64)
}

func TestResolveFilterPriceRangeWithDimension(t *testing.T) {
	filter, err := resolveOn(t, "/?state=TX&max_price=80000")
	require.NoError(t, err)
	require.NotNil(t, filter)
	assert.Equal(t, model.DimensionState, filter.Dimension)
	assert.False(t, filter.MinPrice.Valid)
	assert.Equal(t, float64(80000), filter.MaxPrice.Float64)
}

func TestResolveFilterRejectsInvertedPriceRange(t *testing.T) {
	_, err := resolveOn(t, "/?min_price=50000&max_price=10000")
	assert.Error(t, err)
}
