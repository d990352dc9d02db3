package usecases_port

import (
	"context"
	"listing-search-service/internal/core/domain"
)

type FindListingsByTextUseCase interface {
	Execute(ctx context.Context, text string, limit int) ([]domain.Listing, error)
}
