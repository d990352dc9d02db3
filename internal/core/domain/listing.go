package domain

import "time"

// Listing - объявление в том виде, в котором его отдает API.
// Сессия поиска никогда не изменяет объявления, только отображает их.
type Listing struct {
	ID        int64
	Source    string
	URL       string
	Title     string
	Type      string
	Operation string

	Price    *float64
	Currency string
	Expenses *float64

	Address      string
	Neighborhood string
	City         string
	Latitude     *float64
	Longitude    *float64
	MapURL       string

	Rooms        *int
	Bedrooms     *int
	Bathrooms    *int
	SurfaceTotal *float64

	PetFriendly bool
	HasYard     bool
	MainImage   string
	ScrapedAt   *time.Time
}

// Coordinates возвращает координаты объявления, если они есть
func (l Listing) Coordinates() (Coordinates, bool) {
	if l.Latitude == nil || l.Longitude == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *l.Latitude, Lon: *l.Longitude}, true
}

// ListingDetail - детальная информация об объявлении (/propiedades/{id})
type ListingDetail struct {
	Listing
	Description    string
	SurfaceCovered *float64
	Garages        *int
	Furnished      bool
	Images         []string
}

// Stats - общая статистика по активным объявлениям
type Stats struct {
	TotalListings int
	BySource      []AggregationRow
	AveragePrice  *float64
	MinPrice      *float64
	MaxPrice      *float64
}

// AggregationRow - строка группировки: значение измерения и количество объявлений
type AggregationRow struct {
	Value string
	Count int
}
