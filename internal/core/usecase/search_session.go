package usecase

import (
	"context"
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/core/domain"
	"listing-search-service/internal/core/port"
	"sync"
	"time"
)

type SearchSessionConfig struct {
	PageSize int
	Debounce time.Duration
}

// SearchSession - состояние поиска одного пользователя: фильтры, курсор страницы,
// отложенный поиск и номер поколения, по которому отбрасываются устаревшие ответы.
type SearchSession struct {
	id        string
	api       port.ListingsAPIPort
	presenter port.SearchPresenterPort
	metrics   port.SearchMetricsPort
	maps      *MapImageResolver
	debouncer *Debouncer
	pageSize  int
	now       func() time.Time

	mu         sync.Mutex
	filters    domain.FilterState
	cursor     domain.PageCursor
	generation uint64
	// dirty - фильтры изменились после последнего показанного результата
	dirty        bool
	last         *domain.SearchOutcome
	results      map[int64]domain.Listing
	lastActivity time.Time

	// presentMu гарантирует, что результаты показываются в порядке поколений
	presentMu sync.Mutex
}

func NewSearchSession(
	id string,
	cfg SearchSessionConfig,
	api port.ListingsAPIPort,
	presenter port.SearchPresenterPort,
	maps *MapImageResolver,
	metrics port.SearchMetricsPort,
) *SearchSession {
	if metrics == nil {
		metrics = port.NopSearchMetrics{}
	}
	if maps == nil {
		maps = NewMapImageResolver(nil, nil, metrics)
	}

	return &SearchSession{
		id:           id,
		api:          api,
		presenter:    presenter,
		metrics:      metrics,
		maps:         maps,
		debouncer:    NewDebouncer(cfg.Debounce),
		pageSize:     cfg.PageSize,
		now:          time.Now,
		cursor:       domain.NewPageCursor(1),
		results:      make(map[int64]domain.Listing),
		lastActivity: time.Now(),
	}
}

func (s *SearchSession) ID() string {
	return s.id
}

// ChangeFilter применяет значение фильтра и сбрасывает курсор на первую страницу.
// Непрерывные поля (цена, площадь) запускают поиск после паузы,
// остальные отменяют отложенный поиск и ищут сразу.
func (s *SearchSession) ChangeFilter(ctx context.Context, field domain.FilterField, raw string) error {
	logger := s.logger(ctx).WithFields(port.Fields{"field": field})

	s.mu.Lock()
	if err := s.filters.Set(field, raw); err != nil {
		s.mu.Unlock()
		logger.Warn("Rejected filter value", port.Fields{"value": raw, "error": err.Error()})
		return err
	}
	s.cursor.Reset()
	s.dirty = true
	// поиски, начатые со старыми фильтрами, становятся устаревшими
	s.generation++
	s.touch()
	s.mu.Unlock()

	if field.InputKind() == domain.InputContinuous {
		logger.Debug("Search scheduled", nil)
		detached := contextkeys.DetachedContext(ctx)
		s.debouncer.Schedule(func() {
			s.search(detached)
		})
		return nil
	}

	s.debouncer.Cancel()
	s.search(ctx)
	return nil
}

// ClearFilters сбрасывает все фильтры и сразу выполняет поиск
func (s *SearchSession) ClearFilters(ctx context.Context) domain.SearchOutcome {
	s.mu.Lock()
	s.filters = domain.FilterState{}
	s.cursor.Reset()
	s.dirty = true
	s.generation++
	s.touch()
	s.mu.Unlock()

	s.debouncer.Cancel()
	return s.search(ctx)
}

// SearchNow - явный запуск поиска (Enter): отложенный поиск отменяется, поиск идет с первой страницы
func (s *SearchSession) SearchNow(ctx context.Context) domain.SearchOutcome {
	s.mu.Lock()
	s.cursor.Reset()
	s.touch()
	s.mu.Unlock()

	s.debouncer.Cancel()
	return s.search(ctx)
}

// NextPage переходит на следующую страницу, только если последний показанный
// результат относится к текущим фильтрам и текущей странице и был полной страницей.
func (s *SearchSession) NextPage(ctx context.Context) (domain.SearchOutcome, bool) {
	s.mu.Lock()
	if s.dirty || s.last == nil || !s.last.HasMore || s.last.Page != s.cursor.Page() {
		s.mu.Unlock()
		return domain.SearchOutcome{}, false
	}
	s.cursor.Next()
	s.touch()
	s.mu.Unlock()

	s.debouncer.Cancel()
	return s.search(ctx), true
}

// PrevPage на первой странице ничего не делает
func (s *SearchSession) PrevPage(ctx context.Context) (domain.SearchOutcome, bool) {
	s.mu.Lock()
	if !s.cursor.Prev() {
		s.mu.Unlock()
		return domain.SearchOutcome{}, false
	}
	s.touch()
	s.mu.Unlock()

	s.debouncer.Cancel()
	return s.search(ctx), true
}

// GoToPage открывает страницу по номеру, значения меньше 1 означают первую страницу
func (s *SearchSession) GoToPage(ctx context.Context, page int) domain.SearchOutcome {
	s.mu.Lock()
	s.cursor = domain.NewPageCursor(page)
	s.touch()
	s.mu.Unlock()

	s.debouncer.Cancel()
	return s.search(ctx)
}

func (s *SearchSession) Filters() domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *SearchSession) LastOutcome() (domain.SearchOutcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return domain.SearchOutcome{}, false
	}
	return *s.last, true
}

// MapImage разрешает изображение карты для объявления из текущих результатов
func (s *SearchSession) MapImage(ctx context.Context, listingID int64) (domain.MapImage, error) {
	s.mu.Lock()
	listing, ok := s.results[listingID]
	s.touch()
	s.mu.Unlock()

	if !ok {
		return domain.MapImage{}, domain.ErrListingNotFound
	}
	return s.maps.Resolve(ctx, listing), nil
}

// Markers - маркеры карты для текущей страницы результатов
func (s *SearchSession) Markers() []domain.MapMarker {
	s.mu.Lock()
	var listings []domain.Listing
	if s.last != nil {
		listings = s.last.Listings
	}
	s.mu.Unlock()

	return BuildMapMarkers(listings)
}

// LastActivity - время последнего действия пользователя
func (s *SearchSession) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Close отменяет отложенный поиск
func (s *SearchSession) Close() {
	s.debouncer.Cancel()
}

// search выполняет один цикл: снимок состояния под блокировкой, запрос к API без блокировки,
// затем показ результата, если за это время не начался более новый поиск.
func (s *SearchSession) search(ctx context.Context) domain.SearchOutcome {
	s.mu.Lock()
	s.generation++
	generation := s.generation
	filters := s.filters
	cursor := s.cursor
	s.mu.Unlock()

	logger := s.logger(ctx).WithFields(port.Fields{
		"generation": generation,
		"page":       cursor.Page(),
	})

	query := BuildListingsQuery(filters, cursor, s.pageSize)
	logger.Debug("Searching listings", port.Fields{"query": query.Encode()})

	listings, err := s.api.FindListings(ctx, query)
	outcome := domain.ClassifySearchResult(listings, err, cursor.Page(), s.pageSize, s.api.BaseURL())
	outcome.Generation = generation

	s.presentMu.Lock()
	defer s.presentMu.Unlock()

	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		outcome.Stale = true
		s.metrics.StaleOutcomeDiscarded()
		logger.Debug("Discarding stale search result", port.Fields{"kind": outcome.Kind})
		return outcome
	}
	s.last = &outcome
	s.dirty = false
	s.results = make(map[int64]domain.Listing, len(outcome.Listings))
	for _, l := range outcome.Listings {
		s.results[l.ID] = l
	}
	s.mu.Unlock()

	if outcome.Kind == domain.OutcomeError {
		logger.Error("Search failed", outcome.Err, nil)
	} else {
		logger.Info("Search finished", port.Fields{"kind": outcome.Kind, "count": len(outcome.Listings)})
	}

	s.metrics.SearchCompleted(outcome.Kind)
	if s.presenter != nil {
		s.presenter.Present(ctx, s.id, outcome)
	}
	return outcome
}

func (s *SearchSession) logger(ctx context.Context) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "SearchSession",
		"session_id": s.id,
	})
}

// touch вызывается под s.mu
func (s *SearchSession) touch() {
	s.lastActivity = s.now()
}
