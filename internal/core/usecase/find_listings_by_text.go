package usecase

import (
	"context"
	"fmt"
	"listing-search-service/internal/constants"
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/core/domain"
	"listing-search-service/internal/core/port"
	"strings"
	"unicode/utf8"
)

type FindListingsByTextUseCase struct {
	api port.ListingsAPIPort
}

func NewFindListingsByTextUseCase(api port.ListingsAPIPort) *FindListingsByTextUseCase {
	return &FindListingsByTextUseCase{api: api}
}

// Execute ищет по тексту в заголовке, описании, адресе и баррио.
// limit = 0 означает значение по умолчанию.
func (uc *FindListingsByTextUseCase) Execute(ctx context.Context, text string, limit int) ([]domain.Listing, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < constants.TextSearchMinRunes {
		return nil, fmt.Errorf("%w: at least %d characters required", domain.ErrQueryTooShort, constants.TextSearchMinRunes)
	}

	if limit == 0 {
		limit = constants.TextSearchDefaultLim
	}
	if limit < 1 || limit > constants.TextSearchMaxLim {
		return nil, fmt.Errorf("%w: must be between 1 and %d", domain.ErrInvalidLimit, constants.TextSearchMaxLim)
	}

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindListingsByText",
		"query":    text,
		"limit":    limit,
	})

	listings, err := uc.api.SearchText(ctx, text, limit)
	if err != nil {
		ucLogger.Error("Text search failed", err, nil)
		return nil, err
	}

	ucLogger.Info("Text search finished", port.Fields{"found": len(listings)})
	return listings, nil
}
