package port

import (
	"context"
	"listing-search-service/internal/core/domain"
)

// GeocoderPort переводит адрес в координаты. (nil, nil) - адрес не найден.
type GeocoderPort interface {
	Geocode(ctx context.Context, address string) (*domain.Coordinates, error)
}

// StaticMapPort строит URL статичного изображения карты без сетевых запросов
type StaticMapPort interface {
	StaticMapURL(center domain.Coordinates) string
}
