package usecase

import (
	"context"
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/core/domain"
	"listing-search-service/internal/core/port"
	"sync"

	"golang.org/x/sync/singleflight"
)

// MapImageResolver выбирает изображение карты для объявления:
// готовый mapa_url, статичная карта по координатам, геокодирование адреса
// или текстовая заглушка. Результаты геокодирования живут столько же, сколько сессия.
type MapImageResolver struct {
	staticMaps port.StaticMapPort
	geocoder   port.GeocoderPort
	metrics    port.SearchMetricsPort

	mu sync.Mutex
	// nil - адрес не найден, повторно не спрашиваем
	geocoded map[string]*domain.Coordinates
	group    singleflight.Group
}

// NewMapImageResolver: staticMaps и geocoder могут быть nil, тогда соответствующие шаги пропускаются
func NewMapImageResolver(staticMaps port.StaticMapPort, geocoder port.GeocoderPort, metrics port.SearchMetricsPort) *MapImageResolver {
	if metrics == nil {
		metrics = port.NopSearchMetrics{}
	}
	return &MapImageResolver{
		staticMaps: staticMaps,
		geocoder:   geocoder,
		metrics:    metrics,
		geocoded:   make(map[string]*domain.Coordinates),
	}
}

func (r *MapImageResolver) Resolve(ctx context.Context, listing domain.Listing) domain.MapImage {
	if listing.MapURL != "" {
		return domain.MapImage{Source: domain.MapImagePrecomputed, URL: listing.MapURL}
	}
	if r.staticMaps == nil {
		return domain.PlaceholderMapImage()
	}

	if coords, ok := listing.Coordinates(); ok {
		return domain.MapImage{Source: domain.MapImageStaticMap, URL: r.staticMaps.StaticMapURL(coords)}
	}

	query := domain.GeocodingQuery(listing)
	if query == "" || r.geocoder == nil {
		return domain.PlaceholderMapImage()
	}

	coords := r.geocode(ctx, query)
	if coords == nil {
		return domain.PlaceholderMapImage()
	}
	return domain.MapImage{Source: domain.MapImageGeocoded, URL: r.staticMaps.StaticMapURL(*coords)}
}

// geocode возвращает координаты по нормализованному адресу.
// Одновременные запросы одного адреса разделяют один вызов провайдера.
// Ошибки провайдера не кэшируются, "не найдено" кэшируется.
func (r *MapImageResolver) geocode(ctx context.Context, query string) *domain.Coordinates {
	key := domain.NormalizeAddress(query)

	if coords, ok := r.cached(key); ok {
		return coords
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MapImageResolver",
		"address":   key,
	})

	result, err, _ := r.group.Do(key, func() (interface{}, error) {
		if coords, ok := r.cached(key); ok {
			return coords, nil
		}

		coords, err := r.geocoder.Geocode(ctx, query)
		r.metrics.GeocodeRequested(err == nil)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.geocoded[key] = coords
		r.mu.Unlock()

		if coords == nil {
			logger.Debug("Address not found by geocoder", nil)
		}
		return coords, nil
	})
	if err != nil {
		logger.Warn("Geocoding failed, using placeholder", port.Fields{"error": err.Error()})
		return nil
	}

	return result.(*domain.Coordinates)
}

func (r *MapImageResolver) cached(key string) (*domain.Coordinates, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	coords, ok := r.geocoded[key]
	return coords, ok
}
