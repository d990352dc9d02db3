package metrics

import (
	"listing-search-service/internal/core/domain"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics реализует SearchMetricsPort на собственном реестре
type PrometheusMetrics struct {
	registry *prometheus.Registry

	searches        *prometheus.CounterVec
	staleDiscarded  prometheus.Counter
	cacheLookups    *prometheus.CounterVec
	geocodeRequests *prometheus.CounterVec
	apiDuration     *prometheus.HistogramVec
	activeSessions  prometheus.Gauge
}

func NewPrometheusMetrics(namespace string) *PrometheusMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &PrometheusMetrics{
		registry: registry,
		searches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of presented search outcomes by kind",
			},
			[]string{"kind"},
		),
		staleDiscarded: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_stale_discarded_total",
				Help:      "Search completions discarded because a newer search was started",
			},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reference_cache_lookups_total",
				Help:      "Reference cache lookups by key and result",
			},
			[]string{"key", "result"},
		),
		geocodeRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "geocode_requests_total",
				Help:      "Geocoding provider calls by result",
			},
			[]string{"result"},
		),
		apiDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "listings_api_request_duration_seconds",
				Help:      "Duration of listings API requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint", "success"},
		),
		activeSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "search_sessions_active",
				Help:      "Number of live search sessions",
			},
		),
	}
}

func (m *PrometheusMetrics) SearchCompleted(kind domain.OutcomeKind) {
	m.searches.WithLabelValues(string(kind)).Inc()
}

func (m *PrometheusMetrics) StaleOutcomeDiscarded() {
	m.staleDiscarded.Inc()
}

func (m *PrometheusMetrics) ReferenceCacheLookup(key string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(key, result).Inc()
}

func (m *PrometheusMetrics) GeocodeRequested(success bool) {
	result := "error"
	if success {
		result = "ok"
	}
	m.geocodeRequests.WithLabelValues(result).Inc()
}

func (m *PrometheusMetrics) ObserveAPIRequest(endpoint string, duration time.Duration, err error) {
	m.apiDuration.WithLabelValues(endpoint, strconv.FormatBool(err == nil)).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) SessionsActive(count int) {
	m.activeSessions.Set(float64(count))
}

// Handler отдает метрики в формате Prometheus
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
