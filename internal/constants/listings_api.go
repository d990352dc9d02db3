package constants

import "time"

// Пути удаленного API объявлений
const (
	StatsPath         = "/stats"
	NeighborhoodsPath = "/barrios"
	SourcesPath       = "/fuentes"
	ListingsPath      = "/propiedades"
	TextSearchPath    = "/buscar"
)

// Параметры пагинации в запросе /propiedades
const (
	LimitParam = "limit"
	SkipParam  = "skip"
)

// Значения по умолчанию для поисковой сессии
const (
	DefaultPageSize          = 30
	DefaultDebounce          = 300 * time.Millisecond
	DefaultReferenceCacheTTL = 60 * time.Second
	DefaultSessionIdleTTL    = 30 * time.Minute
	DefaultLazyLoadMarginPx  = 200
)

// Ограничения API
const (
	MaxListingsLimit     = 200
	TextSearchMinRunes   = 3
	TextSearchDefaultLim = 20
	TextSearchMaxLim     = 100
)

// Ключи кэша справочных данных
const (
	StatsCacheKey         = "reference:stats"
	NeighborhoodsCacheKey = "reference:barrios"
	SourcesCacheKey       = "reference:fuentes"
)

// Точность geohash для группировки маркеров на карте (~150 м)
const MarkerGeohashPrecision = 7

// Пространство имен метрик Prometheus
const MetricsNamespace = "listing_search"

// Период проверки неактивных сессий
const SessionEvictionInterval = time.Minute
