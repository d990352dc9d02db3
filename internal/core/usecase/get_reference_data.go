package usecase

import (
	"context"
	"listing-search-service/internal/constants"
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/core/domain"
	"listing-search-service/internal/core/port"
)

type GetReferenceDataUseCase struct {
	api   port.ListingsAPIPort
	cache *ReferenceCache
}

func NewGetReferenceDataUseCase(api port.ListingsAPIPort, cache *ReferenceCache) *GetReferenceDataUseCase {
	return &GetReferenceDataUseCase{api: api, cache: cache}
}

func (uc *GetReferenceDataUseCase) Stats(ctx context.Context) (*domain.Stats, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "GetReferenceData.Stats"})

	stats, err := GetOrFetch(ctx, uc.cache, constants.StatsCacheKey, func(ctx context.Context) (domain.Stats, error) {
		s, err := uc.api.GetStats(ctx)
		if err != nil {
			return domain.Stats{}, err
		}
		return *s, nil
	})
	if err != nil {
		logger.Error("Failed to get stats", err, nil)
		return nil, err
	}

	return &stats, nil
}

func (uc *GetReferenceDataUseCase) Neighborhoods(ctx context.Context) ([]domain.AggregationRow, error) {
	return GetOrFetch(ctx, uc.cache, constants.NeighborhoodsCacheKey, uc.api.GetNeighborhoods)
}

func (uc *GetReferenceDataUseCase) Sources(ctx context.Context) ([]domain.AggregationRow, error) {
	return GetOrFetch(ctx, uc.cache, constants.SourcesCacheKey, uc.api.GetSources)
}
