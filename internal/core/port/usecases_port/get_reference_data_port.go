package usecases_port

import (
	"context"
	"listing-search-service/internal/core/domain"
)

// GetReferenceDataUseCase отдает справочные данные через кэш
type GetReferenceDataUseCase interface {
	Stats(ctx context.Context) (*domain.Stats, error)
	Neighborhoods(ctx context.Context) ([]domain.AggregationRow, error)
	Sources(ctx context.Context) ([]domain.AggregationRow, error)
}
