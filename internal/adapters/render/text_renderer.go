package render

import (
	"fmt"
	"io"
	"listing-search-service/internal/core/domain"
	"strings"
)

// TextRenderer выводит результаты в терминал
type TextRenderer struct {
	w io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) RenderOutcome(outcome domain.SearchOutcome) error {
	switch outcome.Kind {
	case domain.OutcomeEmpty:
		_, err := fmt.Fprintln(r.w, "No se encontraron propiedades. Intenta ajustar los filtros de búsqueda.")
		return err
	case domain.OutcomeEndOfResults:
		_, err := fmt.Fprintf(r.w, "No hay más propiedades (página %d).\n", outcome.Page)
		return err
	case domain.OutcomeError:
		_, err := fmt.Fprintf(r.w, "Error al cargar propiedades. %s\n", outcome.ErrorMessage)
		return err
	}

	for _, l := range outcome.Listings {
		if err := r.RenderCard(domain.NewListingCard(l)); err != nil {
			return err
		}
	}

	nav := []string{fmt.Sprintf("Página %d", outcome.Page)}
	if outcome.HasPrev {
		nav = append([]string{"← anterior"}, nav...)
	}
	if outcome.HasMore {
		nav = append(nav, "siguiente →")
	}
	_, err := fmt.Fprintln(r.w, strings.Join(nav, " | "))
	return err
}

func (r *TextRenderer) RenderCard(card domain.ListingCard) error {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s (%s)\n", card.ID, card.Title, card.Badge)
	fmt.Fprintf(&b, "    📍 %s\n", card.Location)
	fmt.Fprintf(&b, "    %s", card.Price)
	if len(card.Features) > 0 {
		fmt.Fprintf(&b, " · %s", strings.Join(card.Features, " · "))
	}
	b.WriteString("\n")
	if len(card.Chips) > 0 {
		fmt.Fprintf(&b, "    %s\n", strings.Join(card.Chips, " "))
	}
	fmt.Fprintf(&b, "    %s", card.Source)
	if card.URL != "" {
		fmt.Fprintf(&b, " %s", card.URL)
	}
	b.WriteString("\n\n")

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *TextRenderer) RenderStats(stats *domain.Stats) error {
	view := NewStatsView(stats)
	_, err := fmt.Fprintf(r.w, "Propiedades: %s\nPrecio promedio: %s\nPrecio mínimo: %s\nPrecio máximo: %s\n",
		view.Total, view.Average, view.Min, view.Max)
	return err
}

func (r *TextRenderer) RenderOptions(options []OptionView) error {
	for _, o := range options {
		if _, err := fmt.Fprintln(r.w, o.Label); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) RenderDetail(detail *domain.ListingDetail) error {
	if err := r.RenderCard(domain.NewListingCard(detail.Listing)); err != nil {
		return err
	}
	if detail.Description != "" {
		if _, err := fmt.Fprintf(r.w, "%s\n\n", detail.Description); err != nil {
			return err
		}
	}
	for _, img := range detail.Images {
		if _, err := fmt.Fprintf(r.w, "🖼  %s\n", img); err != nil {
			return err
		}
	}
	return nil
}
