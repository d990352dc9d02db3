package usecase

import (
	"listing-search-service/internal/constants"
	"listing-search-service/internal/core/domain"
	"strconv"
)

// BuildListingsQuery собирает параметры запроса /propiedades.
// В запрос попадают только заданные фильтры, в фиксированном порядке,
// затем всегда limit и skip. Сортировку выполняет API, ordenar передается как есть.
func BuildListingsQuery(filters domain.FilterState, cursor domain.PageCursor, pageSize int) domain.ListingsQuery {
	var query domain.ListingsQuery

	for _, field := range domain.FilterFields() {
		if value, ok := filters.Value(field); ok {
			query.Add(string(field), value)
		}
	}

	query.Add(constants.LimitParam, strconv.Itoa(pageSize))
	query.Add(constants.SkipParam, strconv.Itoa(cursor.Offset(pageSize)))

	return query
}
