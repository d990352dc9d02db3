package usecase

import (
	"context"
	"fmt"
	"listing-search-service/internal/core/domain"
	"listing-search-service/internal/core/port"
	"sync"
	"time"
)

type fakeListingsAPI struct {
	mu      sync.Mutex
	queries []domain.ListingsQuery

	findFn   func(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error)
	detailFn func(ctx context.Context, id int64) (*domain.ListingDetail, error)
	textFn   func(ctx context.Context, text string, limit int) ([]domain.Listing, error)

	stats      *domain.Stats
	statsErr   error
	statsCalls int

	neighborhoods      []domain.AggregationRow
	neighborhoodsCalls int
}

func (f *fakeListingsAPI) FindListings(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	fn := f.findFn
	f.mu.Unlock()

	if fn == nil {
		return nil, nil
	}
	return fn(ctx, q)
}

func (f *fakeListingsAPI) GetListing(ctx context.Context, id int64) (*domain.ListingDetail, error) {
	if f.detailFn == nil {
		return nil, domain.ErrListingNotFound
	}
	return f.detailFn(ctx, id)
}

func (f *fakeListingsAPI) SearchText(ctx context.Context, text string, limit int) ([]domain.Listing, error) {
	if f.textFn == nil {
		return nil, nil
	}
	return f.textFn(ctx, text, limit)
}

func (f *fakeListingsAPI) GetStats(ctx context.Context) (*domain.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsCalls++
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.stats, nil
}

func (f *fakeListingsAPI) GetNeighborhoods(ctx context.Context) ([]domain.AggregationRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.neighborhoodsCalls++
	return f.neighborhoods, nil
}

func (f *fakeListingsAPI) GetSources(ctx context.Context) ([]domain.AggregationRow, error) {
	return []domain.AggregationRow{{Value: "zonaprop", Count: 3}}, nil
}

func (f *fakeListingsAPI) BaseURL() string {
	return "http://listings.test"
}

func (f *fakeListingsAPI) recordedQueries() []domain.ListingsQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ListingsQuery, len(f.queries))
	copy(out, f.queries)
	return out
}

type recordingPresenter struct {
	mu       sync.Mutex
	outcomes []domain.SearchOutcome
}

func (p *recordingPresenter) Present(ctx context.Context, sessionID string, outcome domain.SearchOutcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outcomes = append(p.outcomes, outcome)
}

func (p *recordingPresenter) presented() []domain.SearchOutcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.SearchOutcome, len(p.outcomes))
	copy(out, p.outcomes)
	return out
}

type mapCacheStore struct {
	mu      sync.Mutex
	entries map[string]port.CacheEntry
}

func newMapCacheStore() *mapCacheStore {
	return &mapCacheStore{entries: make(map[string]port.CacheEntry)}
}

func (s *mapCacheStore) Get(ctx context.Context, key string) (*port.CacheEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (s *mapCacheStore) Set(ctx context.Context, key string, entry port.CacheEntry, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
	return nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func makeListings(firstID int64, n int) []domain.Listing {
	listings := make([]domain.Listing, n)
	for i := range listings {
		id := firstID + int64(i)
		listings[i] = domain.Listing{ID: id, Title: fmt.Sprintf("Depto %d", id), Source: "zonaprop"}
	}
	return listings
}

func floatPtr(v float64) *float64 { return &v }
