package geocoding_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/core/domain"
	"listing-search-service/internal/core/port"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

type Config struct {
	// GeocodeURL - базовый адрес API геокодирования (LocationIQ-совместимый)
	GeocodeURL string
	// StaticMapURL - базовый адрес API статичных карт
	StaticMapURL string
	APIKey       string
	Zoom         int
	ImageSize    string
	// RatePerSec и Burst ограничивают частоту запросов геокодирования
	RatePerSec float64
	Burst      int
	Timeout    time.Duration
}

// Client строит ссылки на статичные карты и выполняет геокодирование адресов
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(cfg Config) *Client {
	if cfg.Zoom == 0 {
		cfg.Zoom = 15
	}
	if cfg.ImageSize == "" {
		cfg.ImageSize = "400x200"
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.Burst),
	}
}

// StaticMapURL не выполняет запросов, только собирает ссылку
func (c *Client) StaticMapURL(center domain.Coordinates) string {
	point := formatCoord(center.Lat) + "," + formatCoord(center.Lon)

	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("center", point)
	params.Set("zoom", strconv.Itoa(c.cfg.Zoom))
	params.Set("size", c.cfg.ImageSize)
	params.Set("markers", "icon:small-red-cutout|"+point)

	return strings.TrimRight(c.cfg.StaticMapURL, "/") + "/v3/staticmap?" + params.Encode()
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode ищет координаты адреса. (nil, nil) означает, что адрес не найден.
func (c *Client) Geocode(ctx context.Context, address string) (*domain.Coordinates, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "GeocodingClient",
		"address":   address,
	})

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %w", domain.ErrGeocodingFailed, err)
	}

	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")
	fullURL := strings.TrimRight(c.cfg.GeocodeURL, "/") + "/v1/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Geocoding request failed", err, nil)
		return nil, fmt.Errorf("%w: %w", domain.ErrGeocodingFailed, err)
	}
	defer resp.Body.Close()

	// провайдер отвечает 404, если ничего не нашел
	if resp.StatusCode == http.StatusNotFound {
		logger.Debug("Address not found", nil)
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		err := fmt.Errorf("%w: provider returned status %d: %s", domain.ErrGeocodingFailed, resp.StatusCode, string(bodyBytes))
		logger.Error("Geocoding provider returned an error", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", domain.ErrGeocodingFailed, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLon != nil {
		return nil, fmt.Errorf("%w: invalid coordinates %q,%q", domain.ErrGeocodingFailed, results[0].Lat, results[0].Lon)
	}

	logger.Debug("Address geocoded", port.Fields{"lat": lat, "lon": lon})
	return &domain.Coordinates{Lat: lat, Lon: lon}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
