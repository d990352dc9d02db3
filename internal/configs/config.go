package configs

import (
	"fmt"
	"listing-search-service/internal/constants"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type RESTConfig struct {
	Port           string
	AllowedOrigins []string
}

// ListingsAPIConfig - удаленное API объявлений
type ListingsAPIConfig struct {
	URL     string
	Timeout time.Duration
}

type SearchConfig struct {
	PageSize          int
	Debounce          time.Duration
	ReferenceCacheTTL time.Duration
	SessionIdleTTL    time.Duration
	LazyLoadMarginPx  int
}

// MapsConfig - провайдер статичных карт и геокодирования.
// Пустой APIKey отключает провайдера: карточки без mapa_url показывают заглушку.
type MapsConfig struct {
	StaticMapURL   string
	GeocodeURL     string
	APIKey         string
	Zoom           int
	ImageSize      string
	GeocodeRate    float64
	GeocodeBurst   int
	RequestTimeout time.Duration
}

// RedisConfig - общий кэш справочников. Пустой Addr - кэш в памяти процесса.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StdoutLogConfig struct {
	Level string
	JSON  bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Rest         RESTConfig
	ListingsAPI  ListingsAPIConfig
	Search       SearchConfig
	Maps         MapsConfig
	Redis        RedisConfig
	StdoutLogger StdoutLogConfig
	FluentBit    FluentBitConfig
}

// LoadConfig загружает конфигурацию из .env (если файл есть) и переменных окружения
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using environment only.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "listing-search-service")

	cfg.Rest.Port = getEnvAsString("PORT", "8080")
	cfg.Rest.AllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS")

	cfg.ListingsAPI.URL = strings.TrimRight(getEnvAsString("LISTINGS_API_URL", "http://localhost:8000"), "/")
	if _, err := url.ParseRequestURI(cfg.ListingsAPI.URL); err != nil {
		return nil, fmt.Errorf("LISTINGS_API_URL is not a valid URL: %w", err)
	}
	cfg.ListingsAPI.Timeout = getEnvAsDuration("LISTINGS_API_TIMEOUT", 10*time.Second)

	cfg.Search.PageSize = getEnvAsInt("SEARCH_PAGE_SIZE", constants.DefaultPageSize)
	if cfg.Search.PageSize < 1 || cfg.Search.PageSize > constants.MaxListingsLimit {
		return nil, fmt.Errorf("SEARCH_PAGE_SIZE must be between 1 and %d, got %d", constants.MaxListingsLimit, cfg.Search.PageSize)
	}
	cfg.Search.Debounce = getEnvAsDuration("SEARCH_DEBOUNCE", constants.DefaultDebounce)
	cfg.Search.ReferenceCacheTTL = getEnvAsDuration("REFERENCE_CACHE_TTL", constants.DefaultReferenceCacheTTL)
	cfg.Search.SessionIdleTTL = getEnvAsDuration("SESSION_IDLE_TTL", constants.DefaultSessionIdleTTL)
	cfg.Search.LazyLoadMarginPx = getEnvAsInt("LAZY_LOAD_MARGIN_PX", constants.DefaultLazyLoadMarginPx)

	cfg.Maps.StaticMapURL = getEnvAsString("MAP_PROVIDER_URL", "https://maps.locationiq.com")
	cfg.Maps.GeocodeURL = getEnvAsString("MAP_GEOCODE_URL", "https://us1.locationiq.com")
	cfg.Maps.APIKey = os.Getenv("MAP_API_KEY")
	cfg.Maps.Zoom = getEnvAsInt("MAP_ZOOM", 15)
	cfg.Maps.ImageSize = getEnvAsString("MAP_IMAGE_SIZE", "400x200")
	cfg.Maps.GeocodeRate = getEnvAsFloat("GEOCODE_RATE_PER_SEC", 1)
	cfg.Maps.GeocodeBurst = getEnvAsInt("GEOCODE_BURST", 1)
	cfg.Maps.RequestTimeout = getEnvAsDuration("MAP_REQUEST_TIMEOUT", 5*time.Second)

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.JSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as float: %v. Using default value: %g\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration понимает "300ms", "1m" и т.п.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvAsList разбирает список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
