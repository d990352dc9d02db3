package usecase

import (
	"listing-search-service/internal/constants"
	"listing-search-service/internal/core/domain"

	"github.com/mmcloughlin/geohash"
)

// BuildMapMarkers группирует объявления с координатами по ячейкам geohash.
// Порядок маркеров совпадает с порядком первого объявления в каждой ячейке.
func BuildMapMarkers(listings []domain.Listing) []domain.MapMarker {
	markers := make([]domain.MapMarker, 0)
	byHash := make(map[string]int)

	for _, l := range listings {
		coords, ok := l.Coordinates()
		if !ok {
			continue
		}

		hash := geohash.EncodeWithPrecision(coords.Lat, coords.Lon, constants.MarkerGeohashPrecision)
		if i, found := byHash[hash]; found {
			markers[i].ListingIDs = append(markers[i].ListingIDs, l.ID)
			continue
		}

		lat, lon := geohash.DecodeCenter(hash)
		byHash[hash] = len(markers)
		markers = append(markers, domain.MapMarker{
			Geohash:    hash,
			Center:     domain.Coordinates{Lat: lat, Lon: lon},
			ListingIDs: []int64{l.ID},
		})
	}

	return markers
}
