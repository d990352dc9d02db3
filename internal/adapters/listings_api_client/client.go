package listings_api_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"listing-search-service/internal/constants"
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/contracts"
	"listing-search-service/internal/core/domain"
	"listing-search-service/internal/core/port"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const maxResponseBytes = 10 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    port.SearchMetricsPort
}

func NewClient(baseURL string, timeout time.Duration, metrics port.SearchMetricsPort) *Client {
	if metrics == nil {
		metrics = port.NopSearchMetrics{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    metrics,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// requestSpec описывает один GET-запрос к API
type requestSpec struct {
	endpoint string
	path     string
	query    string
	schema   string
	// notFound возвращается вместо общей ошибки при ответе 404
	notFound error
}

// getJSON выполняет запрос, проверяет статус и контракт ответа и декодирует тело в out
func (c *Client) getJSON(ctx context.Context, spec requestSpec, out interface{}) error {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "ListingsApiClient",
		"endpoint":  spec.endpoint,
	})

	fullURL := c.baseURL + spec.path
	if spec.query != "" {
		fullURL += "?" + spec.query
	}
	clientLogger.Debug("Sending request to listings api", port.Fields{"url": fullURL})

	start := time.Now()
	err := c.fetch(ctx, clientLogger, fullURL, spec, out)
	c.metrics.ObserveAPIRequest(spec.endpoint, time.Since(start), err)
	return err
}

func (c *Client) fetch(ctx context.Context, logger port.LoggerPort, fullURL string, spec requestSpec, out interface{}) error {
	resp, err := c.doRequest(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		logger.Error("Failed to perform request to listings api", err, nil)
		return fmt.Errorf("%w: %w", domain.ErrAPIUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && spec.notFound != nil {
		return spec.notFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("%w: listings api returned non-success status code %d: %s",
			domain.ErrAPIUnavailable, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
		logger.Error("Received error response from listings api", err, port.Fields{"status_code": resp.StatusCode})
		return err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		logger.Error("Failed to read response from listings api", err, nil)
		return fmt.Errorf("%w: %w", domain.ErrAPIUnavailable, err)
	}

	if err := contracts.Validate(spec.schema, contracts.V1, body); err != nil {
		logger.Error("Listings api response violates contract", err, nil)
		return fmt.Errorf("%w: %w", domain.ErrInvalidResponse, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		logger.Error("Failed to decode response from listings api", err, nil)
		return fmt.Errorf("%w: %w", domain.ErrInvalidResponse, err)
	}

	return nil
}

func (c *Client) FindListings(ctx context.Context, query domain.ListingsQuery) ([]domain.Listing, error) {
	var listings []ListingResponse
	err := c.getJSON(ctx, requestSpec{
		endpoint: "propiedades",
		path:     constants.ListingsPath,
		query:    query.Encode(),
		schema:   contracts.ListingsResponse,
	}, &listings)
	if err != nil {
		return nil, err
	}

	return toDomainListings(listings), nil
}

func (c *Client) GetListing(ctx context.Context, id int64) (*domain.ListingDetail, error) {
	var detail ListingDetailResponse
	err := c.getJSON(ctx, requestSpec{
		endpoint: "propiedad",
		path:     constants.ListingsPath + "/" + strconv.FormatInt(id, 10),
		schema:   contracts.ListingDetailResponse,
		notFound: fmt.Errorf("%w: id %d", domain.ErrListingNotFound, id),
	}, &detail)
	if err != nil {
		return nil, err
	}

	result := detail.toDomain()
	return &result, nil
}

func (c *Client) SearchText(ctx context.Context, text string, limit int) ([]domain.Listing, error) {
	params := url.Values{}
	params.Set("q", text)
	params.Set(constants.LimitParam, strconv.Itoa(limit))

	var listings []ListingResponse
	err := c.getJSON(ctx, requestSpec{
		endpoint: "buscar",
		path:     constants.TextSearchPath,
		query:    params.Encode(),
		schema:   contracts.ListingsResponse,
	}, &listings)
	if err != nil {
		return nil, err
	}

	return toDomainListings(listings), nil
}

func (c *Client) GetStats(ctx context.Context) (*domain.Stats, error) {
	var stats StatsResponse
	err := c.getJSON(ctx, requestSpec{
		endpoint: "stats",
		path:     constants.StatsPath,
		schema:   contracts.StatsResponse,
	}, &stats)
	if err != nil {
		return nil, err
	}

	result := stats.toDomain()
	return &result, nil
}

func (c *Client) GetNeighborhoods(ctx context.Context) ([]domain.AggregationRow, error) {
	var rows []NeighborhoodCount
	err := c.getJSON(ctx, requestSpec{
		endpoint: "barrios",
		path:     constants.NeighborhoodsPath,
		schema:   contracts.NeighborhoodsResponse,
	}, &rows)
	if err != nil {
		return nil, err
	}

	result := make([]domain.AggregationRow, len(rows))
	for i, row := range rows {
		result[i] = domain.AggregationRow{Value: row.Neighborhood, Count: row.Count}
	}
	return result, nil
}

func (c *Client) GetSources(ctx context.Context) ([]domain.AggregationRow, error) {
	var rows []SourceCount
	err := c.getJSON(ctx, requestSpec{
		endpoint: "fuentes",
		path:     constants.SourcesPath,
		schema:   contracts.SourcesResponse,
	}, &rows)
	if err != nil {
		return nil, err
	}

	result := make([]domain.AggregationRow, len(rows))
	for i, row := range rows {
		result[i] = domain.AggregationRow{Value: row.Source, Count: row.Count}
	}
	return result, nil
}

func toDomainListings(items []ListingResponse) []domain.Listing {
	result := make([]domain.Listing, len(items))
	for i, item := range items {
		result[i] = item.toDomain()
	}
	return result
}
