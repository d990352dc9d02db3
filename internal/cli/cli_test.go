package cli

import (
	"bytes"
	"context"
	"errors"
	"listing-search-service/internal/core/domain"
	"listing-search-service/internal/core/port"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockListingsAPI for testing
type MockListingsAPI struct {
	mock.Mock
}

func (m *MockListingsAPI) FindListings(ctx context.Context, query domain.ListingsQuery) ([]domain.Listing, error) {
	args := m.Called(query.Encode())
	return listingsArg(args, 0), args.Error(1)
}

func (m *MockListingsAPI) GetListing(ctx context.Context, id int64) (*domain.ListingDetail, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ListingDetail), args.Error(1)
}

func (m *MockListingsAPI) SearchText(ctx context.Context, text string, limit int) ([]domain.Listing, error) {
	args := m.Called(text, limit)
	return listingsArg(args, 0), args.Error(1)
}

func (m *MockListingsAPI) GetStats(ctx context.Context) (*domain.Stats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

func (m *MockListingsAPI) GetNeighborhoods(ctx context.Context) ([]domain.AggregationRow, error) {
	args := m.Called()
	return args.Get(0).([]domain.AggregationRow), args.Error(1)
}

func (m *MockListingsAPI) GetSources(ctx context.Context) ([]domain.AggregationRow, error) {
	args := m.Called()
	return args.Get(0).([]domain.AggregationRow), args.Error(1)
}

func (m *MockListingsAPI) BaseURL() string {
	return "http://api.test"
}

func listingsArg(args mock.Arguments, i int) []domain.Listing {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([]domain.Listing)
}

func runCLI(t *testing.T, api port.ListingsAPIPort, stdin string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand(Options{APIURL: "http://api.test", PageSize: 2, Debounce: time.Millisecond},
		func(string, time.Duration) port.ListingsAPIPort { return api })

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func price(v float64) *float64 { return &v }

func TestSearchCommand(t *testing.T) {
	api := new(MockListingsAPI)
	api.On("FindListings", "precio_max=80000&barrio=Centro&limit=2&skip=2").Return([]domain.Listing{
		{ID: 1, Title: "Depto", Price: price(75000), Currency: "USD", Source: "zonaprop"},
	}, nil)

	output, err := runCLI(t, api, "", "search", "-f", "barrio=Centro", "--filter", "precio_max=80000", "--page", "2")
	require.NoError(t, err)

	assert.Contains(t, output, "[1] Depto (Propiedad)")
	assert.Contains(t, output, "USD 75.000")
	assert.Contains(t, output, "← anterior | Página 2")
	assert.NotContains(t, output, "siguiente")
	api.AssertExpectations(t)
}

func TestSearchCommand_InvalidFilter(t *testing.T) {
	api := new(MockListingsAPI)

	_, err := runCLI(t, api, "", "search", "-f", "color=rojo")
	assert.ErrorIs(t, err, domain.ErrUnknownFilter)

	_, err = runCLI(t, api, "", "search", "-f", "barrio")
	assert.Error(t, err)

	api.AssertNotCalled(t, "FindListings", mock.Anything)
}

func TestSearchCommand_APIError(t *testing.T) {
	api := new(MockListingsAPI)
	api.On("FindListings", "limit=2&skip=0").Return(nil, domain.ErrAPIUnavailable)

	output, err := runCLI(t, api, "", "search")
	assert.ErrorIs(t, err, domain.ErrAPIUnavailable)
	assert.Contains(t, output, "Verifica que la API esté corriendo en http://api.test")
}

func TestReferenceCommands(t *testing.T) {
	api := new(MockListingsAPI)
	api.On("GetStats").Return(&domain.Stats{TotalListings: 10, MinPrice: price(1000)}, nil)
	api.On("GetNeighborhoods").Return([]domain.AggregationRow{{Value: "Centro", Count: 4}}, nil)
	api.On("GetSources").Return([]domain.AggregationRow{{Value: "argenprop", Count: 6}}, nil)

	output, err := runCLI(t, api, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, output, "Propiedades: 10")
	assert.Contains(t, output, "Precio mínimo: $1.000")

	output, err = runCLI(t, api, "", "barrios")
	require.NoError(t, err)
	assert.Equal(t, "Centro (4)\n", output)

	output, err = runCLI(t, api, "", "fuentes")
	require.NoError(t, err)
	assert.Equal(t, "Argenprop (6)\n", output)
}

func TestShowAndFindCommands(t *testing.T) {
	api := new(MockListingsAPI)
	api.On("GetListing", int64(3)).Return(&domain.ListingDetail{
		Listing:     domain.Listing{ID: 3, Title: "Casa", Source: "zonaprop"},
		Description: "Con pileta",
		Images:      []string{"https://img.test/1.jpg"},
	}, nil)
	api.On("GetListing", int64(4)).Return(nil, domain.ErrListingNotFound)
	api.On("SearchText", "pileta", 20).Return([]domain.Listing{{ID: 3, Title: "Casa"}}, nil)

	output, err := runCLI(t, api, "", "show", "3")
	require.NoError(t, err)
	assert.Contains(t, output, "[3] Casa")
	assert.Contains(t, output, "Con pileta")
	assert.Contains(t, output, "https://img.test/1.jpg")

	_, err = runCLI(t, api, "", "show", "4")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)

	_, err = runCLI(t, api, "", "show", "abc")
	assert.Error(t, err)

	output, err = runCLI(t, api, "", "find", "pileta")
	require.NoError(t, err)
	assert.Contains(t, output, "[3] Casa")

	_, err = runCLI(t, api, "", "find", "ab")
	assert.ErrorIs(t, err, domain.ErrQueryTooShort)
}

func TestBrowseCommand(t *testing.T) {
	api := new(MockListingsAPI)
	fullPage := []domain.Listing{{ID: 1, Title: "Uno"}, {ID: 2, Title: "Dos"}}
	api.On("FindListings", "limit=2&skip=0").Return(fullPage, nil)
	api.On("FindListings", "limit=2&skip=2").Return([]domain.Listing{{ID: 3, Title: "Tres"}}, nil)
	api.On("FindListings", "barrio=Centro&limit=2&skip=0").Return(nil, nil)

	stdin := strings.Join([]string{
		"next",
		"next",
		"prev",
		"set barrio Centro",
		"filters",
		"bogus",
		"quit",
	}, "\n")

	output, err := runCLI(t, api, stdin, "browse")
	require.NoError(t, err)

	assert.Contains(t, output, "[3] Tres")
	assert.Contains(t, output, "No hay página siguiente.")
	assert.Contains(t, output, "barrio=Centro")
	assert.Contains(t, output, "No se encontraron propiedades")
	assert.Contains(t, output, `unknown command "bogus"`)
	api.AssertExpectations(t)
}

func TestParseFilterArgs(t *testing.T) {
	filters, err := parseFilterArgs([]string{"mascotas=true", "ambientes=3"})
	require.NoError(t, err)

	value, ok := filters.Value(domain.FieldRooms)
	assert.True(t, ok)
	assert.Equal(t, "3", value)
	assert.True(t, filters.PetFriendly)

	_, err = parseFilterArgs([]string{"ambientes=tres"})
	assert.True(t, errors.Is(err, domain.ErrInvalidFilterValue))
}
