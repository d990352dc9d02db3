package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"listing-search-service/internal/core/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed assets
var assetsFS embed.FS

// HTMLRenderer отрисовывает страницу поиска и фрагменты результатов
type HTMLRenderer struct {
	templates *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("listing-search").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &HTMLRenderer{templates: tmpl}, nil
}

func (r *HTMLRenderer) RenderPage(w io.Writer, data PageData) error {
	return r.templates.ExecuteTemplate(w, "page", data)
}

// RenderedOutcome - готовые HTML-фрагменты для результатов и пагинации
type RenderedOutcome struct {
	ResultsHTML    string
	PaginationHTML string
}

func (r *HTMLRenderer) RenderOutcome(outcome domain.SearchOutcome) (RenderedOutcome, error) {
	view := NewOutcomeView(outcome)

	var results, pagination bytes.Buffer
	if err := r.templates.ExecuteTemplate(&results, "results", view); err != nil {
		return RenderedOutcome{}, fmt.Errorf("failed to render results: %w", err)
	}
	if err := r.templates.ExecuteTemplate(&pagination, "pagination", view); err != nil {
		return RenderedOutcome{}, fmt.Errorf("failed to render pagination: %w", err)
	}

	return RenderedOutcome{ResultsHTML: results.String(), PaginationHTML: pagination.String()}, nil
}

// Assets - статические файлы страницы (app.js, styles.css)
func Assets() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
