package presenter

import (
	"context"
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/core/domain"
)

type textOutcomeRenderer interface {
	RenderOutcome(outcome domain.SearchOutcome) error
}

// TextPresenter печатает результаты поиска в терминал
type TextPresenter struct {
	renderer textOutcomeRenderer
}

func NewTextPresenter(renderer textOutcomeRenderer) *TextPresenter {
	return &TextPresenter{renderer: renderer}
}

func (p *TextPresenter) Present(ctx context.Context, _ string, outcome domain.SearchOutcome) {
	if err := p.renderer.RenderOutcome(outcome); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to print search outcome", err, nil)
	}
}
