package rest

import (
	"listing-search-service/internal/core/domain"
	"time"
)

type ChangeFilterRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type GoToPageRequest struct {
	Page int `json:"page"`
}

// ListingResponse - DTO объявления
type ListingResponse struct {
	ID           int64    `json:"id"`
	Source       string   `json:"source"`
	URL          string   `json:"url,omitempty"`
	Title        string   `json:"title,omitempty"`
	Type         string   `json:"type,omitempty"`
	Operation    string   `json:"operation,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Currency     string   `json:"currency,omitempty"`
	Expenses     *float64 `json:"expenses,omitempty"`
	Address      string   `json:"address,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	City         string   `json:"city,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	MapURL       string   `json:"map_url,omitempty"`
	Rooms        *int     `json:"rooms,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *int     `json:"bathrooms,omitempty"`
	SurfaceTotal *float64 `json:"surface_total,omitempty"`
	PetFriendly  bool     `json:"pet_friendly"`
	HasYard      bool     `json:"has_yard"`
	MainImage    string   `json:"main_image,omitempty"`
	ScrapedAt    *string  `json:"scraped_at,omitempty"`
}

type ListingDetailResponse struct {
	ListingResponse
	Description    string   `json:"description,omitempty"`
	SurfaceCovered *float64 `json:"surface_covered,omitempty"`
	Garages        *int     `json:"garages,omitempty"`
	Furnished      bool     `json:"furnished"`
	Images         []string `json:"images"`
}

type StatsResponse struct {
	TotalListings int               `json:"total_listings"`
	BySource      []OptionResponse  `json:"by_source"`
	AveragePrice  *float64          `json:"average_price"`
	MinPrice      *float64          `json:"min_price"`
	MaxPrice      *float64          `json:"max_price"`
	Display       map[string]string `json:"display"`
}

// OptionResponse - значение справочника с количеством и подписью для списка
type OptionResponse struct {
	Value string `json:"value"`
	Count int    `json:"count"`
	Label string `json:"label,omitempty"`
}

// OutcomeResponse - краткий итог поиска; HTML приходит по SSE
type OutcomeResponse struct {
	Moved        bool   `json:"moved"`
	Generation   uint64 `json:"generation"`
	Kind         string `json:"kind"`
	Stale        bool   `json:"stale"`
	Count        int    `json:"count"`
	Page         int    `json:"page"`
	HasPrev      bool   `json:"has_prev"`
	HasMore      bool   `json:"has_more"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type MapImageResponse struct {
	Source      string `json:"source"`
	URL         string `json:"url,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
}

type MarkerResponse struct {
	Geohash    string  `json:"geohash"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	ListingIDs []int64 `json:"listing_ids"`
}

func toListingResponse(l domain.Listing) ListingResponse {
	resp := ListingResponse{
		ID:           l.ID,
		Source:       l.Source,
		URL:          l.URL,
		Title:        l.Title,
		Type:         l.Type,
		Operation:    l.Operation,
		Price:        l.Price,
		Currency:     l.Currency,
		Expenses:     l.Expenses,
		Address:      l.Address,
		Neighborhood: l.Neighborhood,
		City:         l.City,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		MapURL:       l.MapURL,
		Rooms:        l.Rooms,
		Bedrooms:     l.Bedrooms,
		Bathrooms:    l.Bathrooms,
		SurfaceTotal: l.SurfaceTotal,
		PetFriendly:  l.PetFriendly,
		HasYard:      l.HasYard,
		MainImage:    l.MainImage,
	}
	if l.ScrapedAt != nil {
		scrapedAt := l.ScrapedAt.Format(time.RFC3339)
		resp.ScrapedAt = &scrapedAt
	}
	return resp
}

func toListingsResponse(listings []domain.Listing) []ListingResponse {
	resp := make([]ListingResponse, len(listings))
	for i, l := range listings {
		resp[i] = toListingResponse(l)
	}
	return resp
}

func toListingDetailResponse(d *domain.ListingDetail) ListingDetailResponse {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return ListingDetailResponse{
		ListingResponse: toListingResponse(d.Listing),
		Description:     d.Description,
		SurfaceCovered:  d.SurfaceCovered,
		Garages:         d.Garages,
		Furnished:       d.Furnished,
		Images:          images,
	}
}

func toOptionsResponse(rows []domain.AggregationRow, label func(domain.AggregationRow) string) []OptionResponse {
	resp := make([]OptionResponse, 0, len(rows))
	for _, row := range rows {
		option := OptionResponse{Value: row.Value, Count: row.Count}
		if label != nil {
			option.Label = label(row)
		}
		resp = append(resp, option)
	}
	return resp
}

func toOutcomeResponse(o domain.SearchOutcome, moved bool) OutcomeResponse {
	return OutcomeResponse{
		Moved:        moved,
		Generation:   o.Generation,
		Kind:         string(o.Kind),
		Stale:        o.Stale,
		Count:        len(o.Listings),
		Page:         o.Page,
		HasPrev:      o.HasPrev,
		HasMore:      o.HasMore,
		ErrorMessage: o.ErrorMessage,
	}
}

func toMapImageResponse(img domain.MapImage) MapImageResponse {
	return MapImageResponse{Source: string(img.Source), URL: img.URL, Placeholder: img.Placeholder}
}

func toMarkersResponse(markers []domain.MapMarker) []MarkerResponse {
	resp := make([]MarkerResponse, len(markers))
	for i, m := range markers {
		resp[i] = MarkerResponse{Geohash: m.Geohash, Lat: m.Center.Lat, Lon: m.Center.Lon, ListingIDs: m.ListingIDs}
	}
	return resp
}
