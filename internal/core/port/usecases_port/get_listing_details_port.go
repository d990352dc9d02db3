package usecases_port

import (
	"context"
	"listing-search-service/internal/core/domain"
)

type GetListingDetailsUseCase interface {
	Execute(ctx context.Context, id int64) (*domain.ListingDetail, error)
}
