package presenter

import (
	"context"
	"listing-search-service/internal/adapters/render"
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/core/domain"
	"listing-search-service/internal/core/port"
)

// OutcomeEventType - имя SSE-события с отрисованным результатом
const OutcomeEventType = "outcome"

type outcomeRenderer interface {
	RenderOutcome(outcome domain.SearchOutcome) (render.RenderedOutcome, error)
}

type sessionNotifier interface {
	Notify(ctx context.Context, sessionID, eventType string, payload any)
}

// OutcomeEvent - тело SSE-события, которое страница подставляет в #results и #pagination
type OutcomeEvent struct {
	Generation     uint64 `json:"generation"`
	Kind           string `json:"kind"`
	Page           int    `json:"page"`
	HasPrev        bool   `json:"has_prev"`
	HasMore        bool   `json:"has_more"`
	ResultsHTML    string `json:"results_html"`
	PaginationHTML string `json:"pagination_html"`
}

// WebPresenter отрисовывает результат в HTML и отправляет его вкладкам сессии
type WebPresenter struct {
	renderer outcomeRenderer
	notifier sessionNotifier
}

func NewWebPresenter(renderer outcomeRenderer, notifier sessionNotifier) *WebPresenter {
	return &WebPresenter{renderer: renderer, notifier: notifier}
}

func (p *WebPresenter) Present(ctx context.Context, sessionID string, outcome domain.SearchOutcome) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "WebPresenter",
		"session_id": sessionID,
		"generation": outcome.Generation,
	})

	rendered, err := p.renderer.RenderOutcome(outcome)
	if err != nil {
		logger.Error("Failed to render search outcome", err, nil)
		return
	}

	p.notifier.Notify(ctx, sessionID, OutcomeEventType, OutcomeEvent{
		Generation:     outcome.Generation,
		Kind:           string(outcome.Kind),
		Page:           outcome.Page,
		HasPrev:        outcome.HasPrev,
		HasMore:        outcome.HasMore,
		ResultsHTML:    rendered.ResultsHTML,
		PaginationHTML: rendered.PaginationHTML,
	})
	logger.Debug("Search outcome presented", port.Fields{"kind": outcome.Kind})
}
