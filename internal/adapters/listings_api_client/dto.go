package listings_api_client

import (
	"encoding/json"
	"listing-search-service/internal/core/domain"
	"strings"
	"time"
)

// ListingResponse - объявление в формате API (/propiedades, /buscar)
type ListingResponse struct {
	ID        int64   `json:"id"`
	Source    string  `json:"fuente"`
	URL       string  `json:"url"`
	Title     *string `json:"titulo"`
	Type      *string `json:"tipo"`
	Operation *string `json:"operacion"`

	Price    *float64 `json:"precio"`
	Currency *string  `json:"moneda"`
	Expenses *float64 `json:"expensas"`

	Address      *string  `json:"direccion"`
	Neighborhood *string  `json:"barrio"`
	City         *string  `json:"ciudad"`
	Latitude     *float64 `json:"latitud"`
	Longitude    *float64 `json:"longitud"`
	MapURL       *string  `json:"mapa_url"`

	Rooms        *int     `json:"ambientes"`
	Bedrooms     *int     `json:"dormitorios"`
	Bathrooms    *int     `json:"banos"`
	SurfaceTotal *float64 `json:"superficie_total"`

	PetFriendly *bool   `json:"mascotas"`
	HasYard     *bool   `json:"patio"`
	MainImage   *string `json:"imagen_principal"`
	ScrapedAt   *string `json:"fecha_scraping"`
}

// ListingDetailResponse - ответ /propiedades/{id}
type ListingDetailResponse struct {
	ListingResponse
	Description    *string         `json:"descripcion"`
	SurfaceCovered *float64        `json:"superficie_cubierta"`
	Garages        *int            `json:"cocheras"`
	Furnished      *bool           `json:"amoblado"`
	Images         json.RawMessage `json:"imagenes"`
}

type StatsResponse struct {
	TotalListings *int          `json:"total_propiedades"`
	BySource      []SourceCount `json:"por_fuente"`
	AveragePrice  *float64      `json:"precio_promedio"`
	MinPrice      *float64      `json:"precio_min"`
	MaxPrice      *float64      `json:"precio_max"`
}

type SourceCount struct {
	Source string `json:"fuente"`
	Count  int    `json:"cantidad"`
}

type NeighborhoodCount struct {
	Neighborhood string `json:"barrio"`
	Count        int    `json:"cantidad"`
}

// API отдает datetime без часового пояса, иногда с микросекундами
var scrapedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (r ListingResponse) toDomain() domain.Listing {
	return domain.Listing{
		ID:           r.ID,
		Source:       r.Source,
		URL:          r.URL,
		Title:        deref(r.Title),
		Type:         deref(r.Type),
		Operation:    deref(r.Operation),
		Price:        r.Price,
		Currency:     deref(r.Currency),
		Expenses:     r.Expenses,
		Address:      deref(r.Address),
		Neighborhood: deref(r.Neighborhood),
		City:         deref(r.City),
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		MapURL:       deref(r.MapURL),
		Rooms:        r.Rooms,
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		SurfaceTotal: r.SurfaceTotal,
		PetFriendly:  r.PetFriendly != nil && *r.PetFriendly,
		HasYard:      r.HasYard != nil && *r.HasYard,
		MainImage:    deref(r.MainImage),
		ScrapedAt:    parseScrapedAt(r.ScrapedAt),
	}
}

func (r ListingDetailResponse) toDomain() domain.ListingDetail {
	return domain.ListingDetail{
		Listing:        r.ListingResponse.toDomain(),
		Description:    deref(r.Description),
		SurfaceCovered: r.SurfaceCovered,
		Garages:        r.Garages,
		Furnished:      r.Furnished != nil && *r.Furnished,
		Images:         parseImages(r.Images),
	}
}

func (r StatsResponse) toDomain() domain.Stats {
	stats := domain.Stats{
		AveragePrice: r.AveragePrice,
		MinPrice:     r.MinPrice,
		MaxPrice:     r.MaxPrice,
		BySource:     make([]domain.AggregationRow, 0, len(r.BySource)),
	}
	if r.TotalListings != nil {
		stats.TotalListings = *r.TotalListings
	}
	for _, s := range r.BySource {
		stats.BySource = append(stats.BySource, domain.AggregationRow{Value: s.Source, Count: s.Count})
	}
	return stats
}

// parseImages понимает JSON-массив, строку с JSON-массивом и строку со ссылками через запятую
func parseImages(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return compact(list)
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil
	}
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "[") {
		if err := json.Unmarshal([]byte(text), &list); err == nil {
			return compact(list)
		}
	}
	return compact(strings.Split(text, ","))
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseScrapedAt(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	for _, layout := range scrapedAtLayouts {
		if t, err := time.Parse(layout, *raw); err == nil {
			return &t
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
