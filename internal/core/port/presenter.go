package port

import (
	"context"
	"listing-search-service/internal/core/domain"
)

// SearchPresenterPort отображает результат поиска для конкретной сессии.
// Вызывается только для актуальных (не устаревших) результатов и строго по порядку поколений.
type SearchPresenterPort interface {
	Present(ctx context.Context, sessionID string, outcome domain.SearchOutcome)
}
