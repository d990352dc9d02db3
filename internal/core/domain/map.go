package domain

// Coordinates - географические координаты в градусах
type Coordinates struct {
	Lat float64
	Lon float64
}

// MapImageSource - откуда взято изображение карты
type MapImageSource string

const (
	MapImagePrecomputed MapImageSource = "precomputed"
	MapImageStaticMap   MapImageSource = "static_map"
	MapImageGeocoded    MapImageSource = "geocoded"
	MapImagePlaceholder MapImageSource = "placeholder"
)

// MapPlaceholderText показывается вместо карты, когда изображение недоступно
const MapPlaceholderText = "📍 Mapa no disponible"

// MapImage - результат разрешения изображения карты для карточки
type MapImage struct {
	Source      MapImageSource
	URL         string
	Placeholder string
}

// PlaceholderMapImage - текстовая заглушка вместо карты
func PlaceholderMapImage() MapImage {
	return MapImage{Source: MapImagePlaceholder, Placeholder: MapPlaceholderText}
}

// MapMarker - маркер на карте, объединяющий объявления одной ячейки geohash
type MapMarker struct {
	Geohash    string
	Center     Coordinates
	ListingIDs []int64
}
