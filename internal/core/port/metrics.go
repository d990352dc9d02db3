package port

import (
	"listing-search-service/internal/core/domain"
	"time"
)

// SearchMetricsPort - метрики поиска и кэшей
type SearchMetricsPort interface {
	SearchCompleted(kind domain.OutcomeKind)
	StaleOutcomeDiscarded()
	ReferenceCacheLookup(key string, hit bool)
	GeocodeRequested(success bool)
	ObserveAPIRequest(endpoint string, duration time.Duration, err error)
	SessionsActive(count int)
}

// NopSearchMetrics ничего не делает, используется в CLI и тестах
type NopSearchMetrics struct{}

func (NopSearchMetrics) SearchCompleted(domain.OutcomeKind)             {}
func (NopSearchMetrics) StaleOutcomeDiscarded()                         {}
func (NopSearchMetrics) ReferenceCacheLookup(string, bool)              {}
func (NopSearchMetrics) GeocodeRequested(bool)                          {}
func (NopSearchMetrics) ObserveAPIRequest(string, time.Duration, error) {}
func (NopSearchMetrics) SessionsActive(int)                             {}
