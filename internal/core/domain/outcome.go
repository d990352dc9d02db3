package domain

import "fmt"

// OutcomeKind - одно из взаимоисключающих состояний результата поиска
type OutcomeKind string

const (
	OutcomeResults OutcomeKind = "results"
	// OutcomeEmpty - на первой странице ничего не найдено
	OutcomeEmpty OutcomeKind = "empty"
	// OutcomeEndOfResults - пустая страница после последней полной
	OutcomeEndOfResults OutcomeKind = "end_of_results"
	OutcomeError        OutcomeKind = "error"
)

// SearchOutcome - результат одного цикла поиска
type SearchOutcome struct {
	Kind       OutcomeKind
	Generation uint64
	// Stale - ответ пришел после более нового запроса и не отображается
	Stale bool

	Listings []Listing
	Page     int
	PageSize int
	HasPrev  bool
	HasMore  bool

	ErrorMessage string
	Err          error
}

// ShowPagination - нужно ли показывать панель пагинации
func (o SearchOutcome) ShowPagination() bool {
	return o.Kind == OutcomeResults || o.Kind == OutcomeEndOfResults
}

// ClassifySearchResult сопоставляет ответ API одному из состояний интерфейса
func ClassifySearchResult(listings []Listing, err error, page, pageSize int, apiURL string) SearchOutcome {
	outcome := SearchOutcome{
		Page:     page,
		PageSize: pageSize,
		HasPrev:  page > 1,
	}

	switch {
	case err != nil:
		outcome.Kind = OutcomeError
		outcome.Err = err
		outcome.HasPrev = false
		outcome.ErrorMessage = fmt.Sprintf("Verifica que la API esté corriendo en %s", apiURL)
	case len(listings) == 0 && page <= 1:
		outcome.Kind = OutcomeEmpty
	case len(listings) == 0:
		outcome.Kind = OutcomeEndOfResults
	default:
		outcome.Kind = OutcomeResults
		outcome.Listings = listings
		outcome.HasMore = HasMorePages(len(listings), pageSize)
	}

	return outcome
}
