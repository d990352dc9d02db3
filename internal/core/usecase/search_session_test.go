package usecase

import (
	"context"
	"errors"
	"listing-search-service/internal/core/domain"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(api *fakeListingsAPI, presenter *recordingPresenter, debounce time.Duration) *SearchSession {
	return NewSearchSession("sess-1", SearchSessionConfig{PageSize: 30, Debounce: debounce}, api, presenter, nil, nil)
}

func TestSearchSession_EmptyFirstPage(t *testing.T) {
	api := &fakeListingsAPI{findFn: func(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
		return []domain.Listing{}, nil
	}}
	presenter := &recordingPresenter{}
	session := newTestSession(api, presenter, time.Second)

	outcome := session.SearchNow(context.Background())

	assert.Equal(t, domain.OutcomeEmpty, outcome.Kind)
	assert.False(t, outcome.ShowPagination())
	require.Len(t, presenter.presented(), 1)
}

func TestSearchSession_FullPageEnablesNext(t *testing.T) {
	api := &fakeListingsAPI{findFn: func(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
		if skip, _ := q.Get("skip"); skip == "0" {
			return makeListings(1, 30), nil
		}
		return makeListings(31, 4), nil
	}}
	presenter := &recordingPresenter{}
	session := newTestSession(api, presenter, time.Second)
	ctx := context.Background()

	first := session.SearchNow(ctx)
	assert.Equal(t, domain.OutcomeResults, first.Kind)
	assert.True(t, first.HasMore)
	assert.False(t, first.HasPrev)

	second, moved := session.NextPage(ctx)
	require.True(t, moved)
	assert.Equal(t, 2, second.Page)
	assert.False(t, second.HasMore)
	assert.True(t, second.HasPrev)

	queries := api.recordedQueries()
	require.Len(t, queries, 2)
	skip, _ := queries[1].Get("skip")
	assert.Equal(t, "30", skip)

	// последняя страница неполная: дальше идти некуда
	_, moved = session.NextPage(ctx)
	assert.False(t, moved)
	assert.Len(t, api.recordedQueries(), 2)
}

func TestSearchSession_PrevAtFirstPageIsNoop(t *testing.T) {
	api := &fakeListingsAPI{findFn: func(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
		return makeListings(1, 30), nil
	}}
	session := newTestSession(api, &recordingPresenter{}, time.Second)
	ctx := context.Background()

	session.SearchNow(ctx)
	_, moved := session.PrevPage(ctx)

	assert.False(t, moved)
	assert.Len(t, api.recordedQueries(), 1)
}

func TestSearchSession_FilterChangeResetsCursor(t *testing.T) {
	api := &fakeListingsAPI{findFn: func(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
		return makeListings(1, 30), nil
	}}
	session := newTestSession(api, &recordingPresenter{}, time.Second)
	ctx := context.Background()

	session.SearchNow(ctx)
	_, moved := session.NextPage(ctx)
	require.True(t, moved)
	_, moved = session.NextPage(ctx)
	require.True(t, moved)

	require.NoError(t, session.ChangeFilter(ctx, domain.FieldNeighborhood, "Centro"))

	queries := api.recordedQueries()
	require.Len(t, queries, 4)
	last := queries[3]
	assert.Equal(t, "barrio=Centro&limit=30&skip=0", last.Encode())

	outcome, ok := session.LastOutcome()
	require.True(t, ok)
	assert.Equal(t, 1, outcome.Page)
}

func TestSearchSession_ContinuousChangesAreDebounced(t *testing.T) {
	api := &fakeListingsAPI{findFn: func(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
		return makeListings(1, 3), nil
	}}
	presenter := &recordingPresenter{}
	session := newTestSession(api, presenter, 30*time.Millisecond)
	ctx := context.Background()

	for _, v := range []string{"5", "50", "500", "5000", "50000"} {
		require.NoError(t, session.ChangeFilter(ctx, domain.FieldPriceMin, v))
	}
	assert.Empty(t, api.recordedQueries())

	require.Eventually(t, func() bool { return len(presenter.presented()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)

	queries := api.recordedQueries()
	require.Len(t, queries, 1)
	assert.Equal(t, "precio_min=50000&limit=30&skip=0", queries[0].Encode())
}

func TestSearchSession_DiscreteChangeCancelsPendingSearch(t *testing.T) {
	api := &fakeListingsAPI{findFn: func(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
		return makeListings(1, 3), nil
	}}
	session := newTestSession(api, &recordingPresenter{}, 30*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, session.ChangeFilter(ctx, domain.FieldPriceMax, "900000"))
	require.NoError(t, session.ChangeFilter(ctx, domain.FieldSource, "argenprop"))

	time.Sleep(80 * time.Millisecond)

	queries := api.recordedQueries()
	require.Len(t, queries, 1)
	assert.Equal(t, "precio_max=900000&fuente=argenprop&limit=30&skip=0", queries[0].Encode())
}

func TestSearchSession_NextBlockedWhileFiltersPending(t *testing.T) {
	api := &fakeListingsAPI{findFn: func(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
		return makeListings(1, 30), nil
	}}
	session := newTestSession(api, &recordingPresenter{}, time.Hour)
	ctx := context.Background()

	session.SearchNow(ctx)
	require.NoError(t, session.ChangeFilter(ctx, domain.FieldSurfaceMin, "40"))

	_, moved := session.NextPage(ctx)
	assert.False(t, moved)
	session.Close()
}

func TestSearchSession_StaleCompletionIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	api := &fakeListingsAPI{findFn: func(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			<-release
			return makeListings(1, 30), nil
		}
		return makeListings(100, 2), nil
	}}
	presenter := &recordingPresenter{}
	session := newTestSession(api, presenter, time.Second)
	ctx := context.Background()

	done := make(chan domain.SearchOutcome, 1)
	go func() { done <- session.SearchNow(ctx) }()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, time.Millisecond)

	newer := session.SearchNow(ctx)
	close(release)
	older := <-done

	assert.True(t, older.Stale)
	assert.False(t, newer.Stale)
	assert.Greater(t, newer.Generation, older.Generation)

	presented := presenter.presented()
	require.Len(t, presented, 1)
	assert.Equal(t, newer.Generation, presented[0].Generation)

	last, ok := session.LastOutcome()
	require.True(t, ok)
	require.Len(t, last.Listings, 2)
	assert.Equal(t, int64(100), last.Listings[0].ID)
}

func TestSearchSession_OldFilterCompletionAfterChangeIsStale(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	api := &fakeListingsAPI{findFn: func(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			<-release
			return makeListings(1, 30), nil
		}
		return makeListings(100, 2), nil
	}}
	presenter := &recordingPresenter{}
	session := newTestSession(api, presenter, 30*time.Millisecond)
	ctx := context.Background()

	done := make(chan domain.SearchOutcome, 1)
	go func() { done <- session.SearchNow(ctx) }()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, time.Millisecond)

	require.NoError(t, session.ChangeFilter(ctx, domain.FieldPriceMin, "50000"))
	close(release)
	older := <-done

	assert.True(t, older.Stale)

	// до результата с новыми фильтрами листать нельзя
	_, moved := session.NextPage(ctx)
	assert.False(t, moved)

	require.Eventually(t, func() bool { return len(presenter.presented()) == 1 }, time.Second, 5*time.Millisecond)

	queries := api.recordedQueries()
	require.Len(t, queries, 2)
	assert.Equal(t, "limit=30&skip=0", queries[0].Encode())
	assert.Equal(t, "precio_min=50000&limit=30&skip=0", queries[1].Encode())

	last, ok := session.LastOutcome()
	require.True(t, ok)
	assert.Equal(t, 1, last.Page)
	assert.Equal(t, int64(100), last.Listings[0].ID)
}

func TestSearchSession_PrevFromSecondPage(t *testing.T) {
	api := &fakeListingsAPI{findFn: func(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
		return makeListings(1, 30), nil
	}}
	session := newTestSession(api, &recordingPresenter{}, time.Second)
	ctx := context.Background()

	session.SearchNow(ctx)
	_, moved := session.NextPage(ctx)
	require.True(t, moved)

	outcome, moved := session.PrevPage(ctx)
	require.True(t, moved)
	assert.Equal(t, 1, outcome.Page)
	assert.False(t, outcome.HasPrev)

	queries := api.recordedQueries()
	require.Len(t, queries, 3)
	assert.Equal(t, "limit=30&skip=0", queries[2].Encode())
}

func TestSearchSession_GoToPage(t *testing.T) {
	api := &fakeListingsAPI{findFn: func(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
		return makeListings(1, 30), nil
	}}
	session := newTestSession(api, &recordingPresenter{}, time.Second)
	ctx := context.Background()

	outcome := session.GoToPage(ctx, 3)
	assert.Equal(t, 3, outcome.Page)
	assert.True(t, outcome.HasPrev)

	outcome = session.GoToPage(ctx, 0)
	assert.Equal(t, 1, outcome.Page)
	assert.False(t, outcome.HasPrev)

	queries := api.recordedQueries()
	require.Len(t, queries, 2)
	assert.Equal(t, "limit=30&skip=60", queries[0].Encode())
	assert.Equal(t, "limit=30&skip=0", queries[1].Encode())
}

func TestSearchSession_GoToPageCancelsPendingSearch(t *testing.T) {
	api := &fakeListingsAPI{findFn: func(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
		return makeListings(1, 30), nil
	}}
	session := newTestSession(api, &recordingPresenter{}, 30*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, session.ChangeFilter(ctx, domain.FieldSurfaceMin, "40"))
	session.GoToPage(ctx, 2)

	time.Sleep(80 * time.Millisecond)

	queries := api.recordedQueries()
	require.Len(t, queries, 1)
	assert.Equal(t, "superficie_min=40&limit=30&skip=30", queries[0].Encode())
}

func TestSearchSession_APIErrorShowsErrorState(t *testing.T) {
	api := &fakeListingsAPI{findFn: func(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
		return nil, errors.New("dial tcp: connection refused")
	}}
	session := newTestSession(api, &recordingPresenter{}, time.Second)

	outcome := session.SearchNow(context.Background())

	assert.Equal(t, domain.OutcomeError, outcome.Kind)
	assert.Contains(t, outcome.ErrorMessage, "http://listings.test")
	assert.False(t, outcome.ShowPagination())
}

func TestSearchSession_ClearFilters(t *testing.T) {
	api := &fakeListingsAPI{findFn: func(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
		return makeListings(1, 3), nil
	}}
	session := newTestSession(api, &recordingPresenter{}, time.Hour)
	ctx := context.Background()

	require.NoError(t, session.ChangeFilter(ctx, domain.FieldNeighborhood, "Centro"))
	require.NoError(t, session.ChangeFilter(ctx, domain.FieldPriceMin, "1000"))
	session.ClearFilters(ctx)

	assert.True(t, session.Filters().IsEmpty())
	queries := api.recordedQueries()
	require.Len(t, queries, 2)
	assert.Equal(t, "limit=30&skip=0", queries[1].Encode())
}

func TestSearchSession_InvalidFilterValueKeepsState(t *testing.T) {
	api := &fakeListingsAPI{}
	session := newTestSession(api, &recordingPresenter{}, time.Second)

	err := session.ChangeFilter(context.Background(), domain.FieldRooms, "tres")

	assert.True(t, errors.Is(err, domain.ErrInvalidFilterValue))
	assert.Empty(t, api.recordedQueries())
}

func TestSearchSession_MapImageUnknownListing(t *testing.T) {
	api := &fakeListingsAPI{findFn: func(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
		l := makeListings(1, 1)
		l[0].MapURL = "https://maps.test/1.png"
		return l, nil
	}}
	session := newTestSession(api, &recordingPresenter{}, time.Second)
	ctx := context.Background()
	session.SearchNow(ctx)

	img, err := session.MapImage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.MapImagePrecomputed, img.Source)

	_, err = session.MapImage(ctx, 42)
	assert.True(t, errors.Is(err, domain.ErrListingNotFound))
}
