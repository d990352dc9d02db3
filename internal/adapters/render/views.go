package render

import (
	"fmt"
	"listing-search-service/internal/core/domain"
	"strconv"
)

// OptionView - пункт выпадающего списка
type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

// StatsView - панель статистики, "-" для отсутствующих значений
type StatsView struct {
	Total   string
	Average string
	Min     string
	Max     string
}

// OutcomeView - данные для шаблонов результатов и пагинации
type OutcomeView struct {
	Kind           string
	Cards          []domain.ListingCard
	Page           int
	HasPrev        bool
	HasMore        bool
	ShowPagination bool
	ErrorMessage   string
}

// PageData - данные страницы поиска
type PageData struct {
	Title            string
	Stats            StatsView
	Neighborhoods    []OptionView
	Sources          []OptionView
	RoomOptions      []OptionView
	BedroomOptions   []OptionView
	TypeOptions      []OptionView
	CurrencyOptions  []OptionView
	SortOptions      []OptionView
	// Filters - значения полей ввода и чекбоксов по имени фильтра
	Filters          map[string]string
	Outcome          OutcomeView
	LazyLoadMarginPx int
}

var sortOptions = []OptionView{
	{Value: domain.SortPriceAsc, Label: "Menor precio"},
	{Value: domain.SortPriceDesc, Label: "Mayor precio"},
	{Value: domain.SortSurfaceDesc, Label: "Mayor superficie"},
	{Value: domain.SortMostRecent, Label: "Más recientes"},
}

var typeOptions = []OptionView{
	{Value: "departamento", Label: "Departamento"},
	{Value: "casa", Label: "Casa"},
	{Value: "ph", Label: "PH"},
	{Value: "monoambiente", Label: "Monoambiente"},
}

var currencyOptions = []OptionView{
	{Value: "ARS", Label: "ARS"},
	{Value: "USD", Label: "USD"},
}

func roomOptions() []OptionView {
	options := make([]OptionView, 0, 5)
	for i := 1; i <= 4; i++ {
		options = append(options, OptionView{Value: strconv.Itoa(i), Label: strconv.Itoa(i)})
	}
	return append(options, OptionView{Value: "5", Label: "5+"})
}

// NewPageData собирает данные страницы. Отсутствующая статистика или списки не мешают отрисовке.
func NewPageData(title string, stats *domain.Stats, neighborhoods, sources []domain.AggregationRow, lazyMargin int) PageData {
	return PageData{
		Title:            title,
		Stats:            NewStatsView(stats),
		Neighborhoods:    NeighborhoodOptions(neighborhoods),
		Sources:          SourceOptions(sources),
		RoomOptions:      roomOptions(),
		BedroomOptions:   roomOptions(),
		TypeOptions:      typeOptions,
		CurrencyOptions:  currencyOptions,
		SortOptions:      sortOptions,
		Filters:          map[string]string{},
		LazyLoadMarginPx: lazyMargin,
	}
}

// WithFilters отмечает в элементах управления текущие фильтры сессии,
// чтобы после перезагрузки страница показывала то, по чему идет поиск.
func (d PageData) WithFilters(filters domain.FilterState) PageData {
	values := make(map[string]string)
	for _, field := range domain.FilterFields() {
		if value, ok := filters.Value(field); ok {
			values[string(field)] = value
		}
	}

	d.Filters = values
	d.Neighborhoods = selectOption(d.Neighborhoods, values[string(domain.FieldNeighborhood)])
	d.Sources = selectOption(d.Sources, values[string(domain.FieldSource)])
	d.RoomOptions = selectOption(d.RoomOptions, values[string(domain.FieldRooms)])
	d.BedroomOptions = selectOption(d.BedroomOptions, values[string(domain.FieldBedroomsMin)])
	d.TypeOptions = selectOption(d.TypeOptions, values[string(domain.FieldPropertyType)])
	d.CurrencyOptions = selectOption(d.CurrencyOptions, values[string(domain.FieldCurrency)])
	d.SortOptions = selectOption(d.SortOptions, values[string(domain.FieldSortOrder)])
	return d
}

// selectOption возвращает копию списка с отмеченным значением.
// Значение, которого нет в списке, добавляется отдельным пунктом.
func selectOption(options []OptionView, value string) []OptionView {
	selected := make([]OptionView, len(options), len(options)+1)
	copy(selected, options)
	if value == "" {
		return selected
	}

	found := false
	for i := range selected {
		selected[i].Selected = selected[i].Value == value
		found = found || selected[i].Selected
	}
	if !found {
		selected = append(selected, OptionView{Value: value, Label: value, Selected: true})
	}
	return selected
}

func NewStatsView(stats *domain.Stats) StatsView {
	if stats == nil {
		return StatsView{Total: "0", Average: "-", Min: "-", Max: "-"}
	}
	return StatsView{
		Total:   strconv.Itoa(stats.TotalListings),
		Average: statPrice(stats.AveragePrice),
		Min:     statPrice(stats.MinPrice),
		Max:     statPrice(stats.MaxPrice),
	}
}

func statPrice(v *float64) string {
	if v == nil || *v == 0 {
		return "-"
	}
	return "$" + domain.FormatNumber(*v)
}

// NeighborhoodOptions: "Centro (20)"
func NeighborhoodOptions(rows []domain.AggregationRow) []OptionView {
	options := make([]OptionView, 0, len(rows))
	for _, row := range rows {
		if row.Value == "" {
			continue
		}
		options = append(options, OptionView{Value: row.Value, Label: fmt.Sprintf("%s (%d)", row.Value, row.Count)})
	}
	return options
}

// SourceOptions: "Zonaprop (42)"
func SourceOptions(rows []domain.AggregationRow) []OptionView {
	options := make([]OptionView, 0, len(rows))
	for _, row := range rows {
		options = append(options, OptionView{Value: row.Value, Label: fmt.Sprintf("%s (%d)", domain.Capitalize(row.Value), row.Count)})
	}
	return options
}

func NewOutcomeView(outcome domain.SearchOutcome) OutcomeView {
	cards := make([]domain.ListingCard, 0, len(outcome.Listings))
	for _, l := range outcome.Listings {
		cards = append(cards, domain.NewListingCard(l))
	}
	return OutcomeView{
		Kind:           string(outcome.Kind),
		Cards:          cards,
		Page:           outcome.Page,
		HasPrev:        outcome.HasPrev,
		HasMore:        outcome.HasMore,
		ShowPagination: outcome.ShowPagination(),
		ErrorMessage:   outcome.ErrorMessage,
	}
}
