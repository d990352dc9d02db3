package usecases_port

import (
	"context"
	"listing-search-service/internal/core/domain"
)

// SearchSessionUseCase - поисковая сессия одного пользователя
type SearchSessionUseCase interface {
	ID() string

	// ChangeFilter применяет новое значение фильтра и запускает поиск:
	// сразу для дискретных полей, после паузы для непрерывных.
	ChangeFilter(ctx context.Context, field domain.FilterField, raw string) error
	ClearFilters(ctx context.Context) domain.SearchOutcome
	SearchNow(ctx context.Context) domain.SearchOutcome

	// NextPage и PrevPage возвращают false, если переход невозможен
	NextPage(ctx context.Context) (domain.SearchOutcome, bool)
	PrevPage(ctx context.Context) (domain.SearchOutcome, bool)
	GoToPage(ctx context.Context, page int) domain.SearchOutcome

	Filters() domain.FilterState
	LastOutcome() (domain.SearchOutcome, bool)

	MapImage(ctx context.Context, listingID int64) (domain.MapImage, error)
	Markers() []domain.MapMarker

	Close()
}

// SessionRegistryUseCase хранит сессии по идентификатору
type SessionRegistryUseCase interface {
	GetOrCreate(ctx context.Context, sessionID string) SearchSessionUseCase
	Get(sessionID string) (SearchSessionUseCase, bool)
}
