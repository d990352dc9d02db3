package rest

import (
	"bytes"
	"context"
	"io"
	"listing-search-service/internal/adapters/render"
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/core/domain"
	"listing-search-service/internal/core/port"
	"listing-search-service/internal/core/port/usecases_port"
	"net/http"

	"golang.org/x/sync/errgroup"
)

type pageRenderer interface {
	RenderPage(w io.Writer, data render.PageData) error
}

// PageHandler отдает страницу поиска с заполненной статистикой и списками
type PageHandler struct {
	referenceUC usecases_port.GetReferenceDataUseCase
	registry    usecases_port.SessionRegistryUseCase
	renderer    pageRenderer
	title       string
	lazyMargin  int
}

func NewPageHandler(
	referenceUC usecases_port.GetReferenceDataUseCase,
	registry usecases_port.SessionRegistryUseCase,
	renderer pageRenderer,
	title string,
	lazyMargin int,
) *PageHandler {
	return &PageHandler{
		referenceUC: referenceUC,
		registry:    registry,
		renderer:    renderer,
		title:       title,
		lazyMargin:  lazyMargin,
	}
}

// GetPage обрабатывает GET /
func (h *PageHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"handler": "GetPage"})

	stats, neighborhoods, sources := h.loadReferenceData(ctx, logger)
	data := render.NewPageData(h.title, stats, neighborhoods, sources, h.lazyMargin)

	// при перезагрузке страницы показываем фильтры и последний результат сессии
	if session, ok := h.registry.Get(contextkeys.SessionIDFromContext(ctx)); ok {
		data = data.WithFilters(session.Filters())
		if outcome, ok := session.LastOutcome(); ok {
			data.Outcome = render.NewOutcomeView(outcome)
		}
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderPage(&buf, data); err != nil {
		logger.Error("Failed to render page", err, nil)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// loadReferenceData загружает справочники параллельно. Ошибка любого из них
// не мешает отрисовке: панель покажет "-", список останется пустым.
func (h *PageHandler) loadReferenceData(ctx context.Context, logger port.LoggerPort) (*domain.Stats, []domain.AggregationRow, []domain.AggregationRow) {
	var (
		stats         *domain.Stats
		neighborhoods []domain.AggregationRow
		sources       []domain.AggregationRow
		g             errgroup.Group
	)

	g.Go(func() error {
		var err error
		if stats, err = h.referenceUC.Stats(ctx); err != nil {
			logger.Warn("Stats unavailable", port.Fields{"error": err.Error()})
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if neighborhoods, err = h.referenceUC.Neighborhoods(ctx); err != nil {
			logger.Warn("Neighborhoods unavailable", port.Fields{"error": err.Error()})
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if sources, err = h.referenceUC.Sources(ctx); err != nil {
			logger.Warn("Sources unavailable", port.Fields{"error": err.Error()})
		}
		return nil
	})
	g.Wait()

	return stats, neighborhoods, sources
}
