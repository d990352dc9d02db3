package usecase

import (
	"listing-search-service/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListingsQuery_OnlyPresentFilters(t *testing.T) {
	var filters domain.FilterState
	require.NoError(t, filters.Set(domain.FieldPriceMin, "50000"))
	require.NoError(t, filters.Set(domain.FieldNeighborhood, "Centro"))

	query := BuildListingsQuery(filters, domain.NewPageCursor(1), 30)

	assert.Equal(t, "precio_min=50000&barrio=Centro&limit=30&skip=0", query.Encode())
}

func TestBuildListingsQuery_FixedOrderAndFlags(t *testing.T) {
	var filters domain.FilterState
	values := map[domain.FilterField]string{
		domain.FieldSortOrder:    domain.SortPriceDesc,
		domain.FieldHasYard:      "true",
		domain.FieldPetFriendly:  "on",
		domain.FieldSource:       "argenprop",
		domain.FieldSurfaceMin:   "45.5",
		domain.FieldBedroomsMin:  "2",
		domain.FieldCurrency:     "USD",
		domain.FieldPropertyType: "casa",
		domain.FieldRooms:        "3",
		domain.FieldNeighborhood: "Fisherton",
		domain.FieldPriceMax:     "900000",
		domain.FieldPriceMin:     "100000",
	}
	for field, raw := range values {
		require.NoError(t, filters.Set(field, raw))
	}

	query := BuildListingsQuery(filters, domain.NewPageCursor(3), 30)

	assert.Equal(t, []string{
		"precio_min", "precio_max", "barrio", "ambientes", "tipo", "moneda",
		"dormitorios_min", "superficie_min", "fuente", "mascotas", "patio", "ordenar",
		"limit", "skip",
	}, query.Keys())

	mascotas, _ := query.Get("mascotas")
	assert.Equal(t, "true", mascotas)
	ordenar, _ := query.Get("ordenar")
	assert.Equal(t, "precio_desc", ordenar)
	skip, _ := query.Get("skip")
	assert.Equal(t, "60", skip)
}

func TestBuildListingsQuery_UnsetFlagsAbsent(t *testing.T) {
	var filters domain.FilterState
	require.NoError(t, filters.Set(domain.FieldPetFriendly, "false"))

	query := BuildListingsQuery(filters, domain.PageCursor{}, 30)

	assert.False(t, query.Has("mascotas"))
	assert.False(t, query.Has("patio"))
	assert.Equal(t, "limit=30&skip=0", query.Encode())
}
