package domain

import (
	"fmt"
	"math"
)

// Значения по умолчанию для пустых полей карточки
const (
	DefaultCardTitle        = "Sin título"
	DefaultCardPrice        = "Consultar"
	DefaultCardBadge        = "Propiedad"
	DefaultCardNeighborhood = "Sin barrio"
	CardImagePlaceholder    = "🏠"

	PetFriendlyChip = "🐕 Acepta mascotas"
	HasYardChip     = "🌳 Tiene patio"
)

// ListingCard - проекция объявления для отображения
type ListingCard struct {
	ID       int64
	URL      string
	ImageURL string
	Title    string
	Badge    string
	Location string
	Price    string
	Features []string
	Chips    []string
	Source   string
	// HasMap - у объявления есть хоть какие-то данные для карты
	HasMap bool
}

// NewListingCard строит карточку, подставляя значения по умолчанию для пустых полей.
// Нулевые числовые значения считаются отсутствующими.
func NewListingCard(l Listing) ListingCard {
	card := ListingCard{
		ID:       l.ID,
		URL:      l.URL,
		ImageURL: l.MainImage,
		Title:    orDefault(l.Title, DefaultCardTitle),
		Badge:    orDefault(l.Type, DefaultCardBadge),
		Location: orDefault(l.Neighborhood, DefaultCardNeighborhood) + ", " + orDefault(l.City, DefaultCity),
		Price:    FormatPrice(l.Price, l.Currency),
		Features: ListingFeatures(l),
		Source:   Capitalize(l.Source),
	}

	if l.PetFriendly {
		card.Chips = append(card.Chips, PetFriendlyChip)
	}
	if l.HasYard {
		card.Chips = append(card.Chips, HasYardChip)
	}

	_, hasCoords := l.Coordinates()
	card.HasMap = l.MapURL != "" || hasCoords || GeocodingQuery(l) != ""

	return card
}

// FormatPrice: "USD 50.000" для долларов, "$ 50.000" для остальных валют
func FormatPrice(price *float64, currency string) string {
	if price == nil || *price == 0 {
		return DefaultCardPrice
	}
	symbol := "$"
	if currency == "USD" {
		symbol = "USD"
	}
	return symbol + " " + FormatNumber(*price)
}

// ListingFeatures возвращает список характеристик вида "3 amb", "2 baños", "80 m²"
func ListingFeatures(l Listing) []string {
	var features []string
	if l.Rooms != nil && *l.Rooms != 0 {
		features = append(features, fmt.Sprintf("%d amb", *l.Rooms))
	}
	if l.Bedrooms != nil && *l.Bedrooms != 0 {
		features = append(features, fmt.Sprintf("%d dorm", *l.Bedrooms))
	}
	if l.Bathrooms != nil && *l.Bathrooms != 0 {
		suffix := ""
		if *l.Bathrooms > 1 {
			suffix = "s"
		}
		features = append(features, fmt.Sprintf("%d baño%s", *l.Bathrooms, suffix))
	}
	if l.SurfaceTotal != nil && *l.SurfaceTotal != 0 {
		features = append(features, fmt.Sprintf("%d m²", int64(math.Round(*l.SurfaceTotal))))
	}
	return features
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
