package usecase

import (
	"context"
	"errors"
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/core/domain"
	"listing-search-service/internal/core/port"
)

type GetListingDetailsUseCase struct {
	api port.ListingsAPIPort
}

func NewGetListingDetailsUseCase(api port.ListingsAPIPort) *GetListingDetailsUseCase {
	return &GetListingDetailsUseCase{api: api}
}

func (uc *GetListingDetailsUseCase) Execute(ctx context.Context, id int64) (*domain.ListingDetail, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetListingDetails",
		"listing_id": id,
	})

	detail, err := uc.api.GetListing(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			ucLogger.Info("Listing not found", nil)
		} else {
			ucLogger.Error("Failed to get listing details", err, nil)
		}
		return nil, err
	}

	ucLogger.Debug("Listing details received", port.Fields{"images_count": len(detail.Images)})
	return detail, nil
}
