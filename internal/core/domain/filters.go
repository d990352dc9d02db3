package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FilterField - имя фильтра, совпадает с именем query-параметра API
type FilterField string

const (
	FieldPriceMin     FilterField = "precio_min"
	FieldPriceMax     FilterField = "precio_max"
	FieldNeighborhood FilterField = "barrio"
	FieldRooms        FilterField = "ambientes"
	FieldPropertyType FilterField = "tipo"
	FieldCurrency     FilterField = "moneda"
	FieldBedroomsMin  FilterField = "dormitorios_min"
	FieldSurfaceMin   FilterField = "superficie_min"
	FieldSource       FilterField = "fuente"
	FieldPetFriendly  FilterField = "mascotas"
	FieldHasYard      FilterField = "patio"
	FieldSortOrder    FilterField = "ordenar"
)

// InputKind описывает, как пользователь вводит значение фильтра
type InputKind int

const (
	// InputDiscrete - выпадающие списки и чекбоксы, поиск запускается сразу
	InputDiscrete InputKind = iota
	// InputContinuous - числовые поля ввода, поиск запускается после паузы
	InputContinuous
)

// filterFields хранит порядок, в котором фильтры попадают в запрос
var filterFields = []FilterField{
	FieldPriceMin,
	FieldPriceMax,
	FieldNeighborhood,
	FieldRooms,
	FieldPropertyType,
	FieldCurrency,
	FieldBedroomsMin,
	FieldSurfaceMin,
	FieldSource,
	FieldPetFriendly,
	FieldHasYard,
	FieldSortOrder,
}

var filterInputKinds = map[FilterField]InputKind{
	FieldPriceMin:     InputContinuous,
	FieldPriceMax:     InputContinuous,
	FieldSurfaceMin:   InputContinuous,
	FieldNeighborhood: InputDiscrete,
	FieldRooms:        InputDiscrete,
	FieldPropertyType: InputDiscrete,
	FieldCurrency:     InputDiscrete,
	FieldBedroomsMin:  InputDiscrete,
	FieldSource:       InputDiscrete,
	FieldPetFriendly:  InputDiscrete,
	FieldHasYard:      InputDiscrete,
	FieldSortOrder:    InputDiscrete,
}

// FilterFields возвращает все поля фильтров в порядке построения запроса
func FilterFields() []FilterField {
	fields := make([]FilterField, len(filterFields))
	copy(fields, filterFields)
	return fields
}

// ParseFilterField проверяет, что имя поля известно
func ParseFilterField(name string) (FilterField, error) {
	field := FilterField(strings.TrimSpace(name))
	if _, ok := filterInputKinds[field]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	return field, nil
}

// InputKind возвращает способ ввода поля
func (f FilterField) InputKind() InputKind {
	return filterInputKinds[f]
}

// Sort keys, понятные API. Значение передается как есть, сортирует сервер.
const (
	SortPriceAsc    = "precio_asc"
	SortPriceDesc   = "precio_desc"
	SortSurfaceDesc = "superficie_desc"
	SortMostRecent  = "reciente"
)

// FilterState - текущие значения фильтров поисковой сессии.
// Числовые поля хранятся указателями: nil означает "не задано", а не ноль.
type FilterState struct {
	PriceMin     *float64
	PriceMax     *float64
	Neighborhood string
	Rooms        *int
	PropertyType string
	Currency     string
	BedroomsMin  *int
	SurfaceMin   *float64
	Source       string
	PetFriendly  bool
	HasYard      bool
	SortOrder    string
}

// Set применяет "сырое" значение из элемента управления.
// Пустая строка сбрасывает поле.
func (s *FilterState) Set(field FilterField, raw string) error {
	value := strings.TrimSpace(raw)

	switch field {
	case FieldPriceMin:
		return setFloat(&s.PriceMin, field, value)
	case FieldPriceMax:
		return setFloat(&s.PriceMax, field, value)
	case FieldSurfaceMin:
		return setFloat(&s.SurfaceMin, field, value)
	case FieldRooms:
		return setInt(&s.Rooms, field, value)
	case FieldBedroomsMin:
		return setInt(&s.BedroomsMin, field, value)
	case FieldNeighborhood:
		s.Neighborhood = value
	case FieldPropertyType:
		s.PropertyType = value
	case FieldCurrency:
		s.Currency = value
	case FieldSource:
		s.Source = value
	case FieldSortOrder:
		s.SortOrder = value
	case FieldPetFriendly:
		return setFlag(&s.PetFriendly, field, value)
	case FieldHasYard:
		return setFlag(&s.HasYard, field, value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFilter, field)
	}
	return nil
}

// Value возвращает значение поля в виде для query-строки.
// Второе значение false, если поле не задано и в запрос не попадает.
func (s FilterState) Value(field FilterField) (string, bool) {
	switch field {
	case FieldPriceMin:
		return formatFloat(s.PriceMin)
	case FieldPriceMax:
		return formatFloat(s.PriceMax)
	case FieldSurfaceMin:
		return formatFloat(s.SurfaceMin)
	case FieldRooms:
		return formatInt(s.Rooms)
	case FieldBedroomsMin:
		return formatInt(s.BedroomsMin)
	case FieldNeighborhood:
		return s.Neighborhood, s.Neighborhood != ""
	case FieldPropertyType:
		return s.PropertyType, s.PropertyType != ""
	case FieldCurrency:
		return s.Currency, s.Currency != ""
	case FieldSource:
		return s.Source, s.Source != ""
	case FieldSortOrder:
		return s.SortOrder, s.SortOrder != ""
	case FieldPetFriendly:
		return "true", s.PetFriendly
	case FieldHasYard:
		return "true", s.HasYard
	}
	return "", false
}

// IsEmpty - true, если не задан ни один фильтр
func (s FilterState) IsEmpty() bool {
	for _, field := range filterFields {
		if _, ok := s.Value(field); ok {
			return false
		}
	}
	return true
}

func setFloat(dst **float64, field FilterField, value string) error {
	if value == "" {
		*dst = nil
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	// NaN и Inf ParseFloat принимает, API их не понимает
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return fmt.Errorf("%w: %s=%q", ErrInvalidFilterValue, field, value)
	}
	*dst = &parsed
	return nil
}

func setInt(dst **int, field FilterField, value string) error {
	if value == "" {
		*dst = nil
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidFilterValue, field, value)
	}
	*dst = &parsed
	return nil
}

// setFlag понимает значения чекбокса из формы ("on") и обычные bool-строки
func setFlag(dst *bool, field FilterField, value string) error {
	switch strings.ToLower(value) {
	case "", "off":
		*dst = false
		return nil
	case "on":
		*dst = true
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidFilterValue, field, value)
	}
	*dst = parsed
	return nil
}

func formatFloat(v *float64) (string, bool) {
	if v == nil {
		return "", false
	}
	return strconv.FormatFloat(*v, 'f', -1, 64), true
}

func formatInt(v *int) (string, bool) {
	if v == nil {
		return "", false
	}
	return strconv.Itoa(*v), true
}
