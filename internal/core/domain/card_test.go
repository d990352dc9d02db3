package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestNewListingCard_Defaults(t *testing.T) {
	card := NewListingCard(Listing{ID: 7, Source: "zonaprop"})

	assert.Equal(t, "Sin título", card.Title)
	assert.Equal(t, "Consultar", card.Price)
	assert.Equal(t, "Propiedad", card.Badge)
	assert.Equal(t, "Sin barrio, Rosario", card.Location)
	assert.Equal(t, "Zonaprop", card.Source)
	assert.Empty(t, card.Features)
	assert.Empty(t, card.Chips)
	assert.False(t, card.HasMap)
}

func TestNewListingCard_Full(t *testing.T) {
	card := NewListingCard(Listing{
		ID:           1,
		Source:       "argenprop",
		Title:        "Depto luminoso",
		Type:         "departamento",
		Price:        ptr(350000.0),
		Currency:     "ARS",
		Neighborhood: "Centro",
		City:         "Rosario",
		Rooms:        ptr(3),
		Bedrooms:     ptr(2),
		Bathrooms:    ptr(1),
		SurfaceTotal: ptr(64.6),
		PetFriendly:  true,
		HasYard:      true,
		Address:      "Córdoba 1200",
	})

	assert.Equal(t, "Depto luminoso", card.Title)
	assert.Equal(t, "departamento", card.Badge)
	assert.Equal(t, "$ 350.000", card.Price)
	assert.Equal(t, "Centro, Rosario", card.Location)
	assert.Equal(t, []string{"3 amb", "2 dorm", "1 baño", "65 m²"}, card.Features)
	assert.Equal(t, []string{PetFriendlyChip, HasYardChip}, card.Chips)
	assert.True(t, card.HasMap)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "USD 50.000", FormatPrice(ptr(50000.0), "USD"))
	assert.Equal(t, "$ 50.000", FormatPrice(ptr(50000.0), "ARS"))
	assert.Equal(t, "$ 50.000", FormatPrice(ptr(50000.0), ""))
	assert.Equal(t, "Consultar", FormatPrice(nil, "USD"))
	assert.Equal(t, "Consultar", FormatPrice(ptr(0.0), "USD"))
}

func TestListingFeatures_PluralBathrooms(t *testing.T) {
	features := ListingFeatures(Listing{Bathrooms: ptr(2), Rooms: ptr(0)})
	assert.Equal(t, []string{"2 baños"}, features)
}
