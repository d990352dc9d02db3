package port

import (
	"context"
	"listing-search-service/internal/core/domain"
)

// ListingsAPIPort - контракт удаленного API объявлений
type ListingsAPIPort interface {
	// FindListings выполняет запрос /propiedades с уже собранными параметрами
	FindListings(ctx context.Context, query domain.ListingsQuery) ([]domain.Listing, error)
	GetListing(ctx context.Context, id int64) (*domain.ListingDetail, error)
	SearchText(ctx context.Context, text string, limit int) ([]domain.Listing, error)

	GetStats(ctx context.Context) (*domain.Stats, error)
	GetNeighborhoods(ctx context.Context) ([]domain.AggregationRow, error)
	GetSources(ctx context.Context) ([]domain.AggregationRow, error)

	// BaseURL нужен для текста ошибки "API недоступно по адресу ..."
	BaseURL() string
}
