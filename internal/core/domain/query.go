package domain

import (
	"net/url"
	"strings"
)

// QueryParam - один параметр запроса к API
type QueryParam struct {
	Key   string
	Value string
}

// ListingsQuery - упорядоченный набор параметров запроса /propiedades.
// url.Values сортирует ключи при кодировании, поэтому порядок храним сами.
type ListingsQuery struct {
	Params []QueryParam
}

func (q *ListingsQuery) Add(key, value string) {
	q.Params = append(q.Params, QueryParam{Key: key, Value: value})
}

// Get возвращает значение первого параметра с указанным ключом
func (q ListingsQuery) Get(key string) (string, bool) {
	for _, p := range q.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

func (q ListingsQuery) Has(key string) bool {
	_, ok := q.Get(key)
	return ok
}

// Keys возвращает ключи в порядке добавления
func (q ListingsQuery) Keys() []string {
	keys := make([]string, 0, len(q.Params))
	for _, p := range q.Params {
		keys = append(keys, p.Key)
	}
	return keys
}

// Encode кодирует параметры в query-строку, сохраняя порядок
func (q ListingsQuery) Encode() string {
	var b strings.Builder
	for i, p := range q.Params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Values - представление в виде url.Values
func (q ListingsQuery) Values() url.Values {
	values := make(url.Values, len(q.Params))
	for _, p := range q.Params {
		values.Add(p.Key, p.Value)
	}
	return values
}
