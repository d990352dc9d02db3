package metrics

import (
	"errors"
	"io"
	"listing-search-service/internal/core/domain"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_Exposition(t *testing.T) {
	m := NewPrometheusMetrics("listing_search")

	m.SearchCompleted(domain.OutcomeResults)
	m.SearchCompleted(domain.OutcomeEmpty)
	m.StaleOutcomeDiscarded()
	m.ReferenceCacheLookup("reference:stats", true)
	m.GeocodeRequested(false)
	m.ObserveAPIRequest("propiedades", 120*time.Millisecond, nil)
	m.ObserveAPIRequest("stats", time.Second, errors.New("down"))
	m.SessionsActive(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Contains(t, text, `listing_search_searches_total{kind="results"} 1`)
	assert.Contains(t, text, `listing_search_searches_total{kind="empty"} 1`)
	assert.Contains(t, text, `listing_search_search_stale_discarded_total 1`)
	assert.Contains(t, text, `listing_search_reference_cache_lookups_total{key="reference:stats",result="hit"} 1`)
	assert.Contains(t, text, `listing_search_geocode_requests_total{result="error"} 1`)
	assert.Contains(t, text, `listing_search_listings_api_request_duration_seconds_count{endpoint="stats",success="false"} 1`)
	assert.Contains(t, text, `listing_search_search_sessions_active 3`)
}
