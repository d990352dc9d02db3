package internal

import (
	"context"
	"fmt"
	"listing-search-service/internal/adapters/cache"
	"listing-search-service/internal/adapters/geocoding_client"
	"listing-search-service/internal/adapters/listings_api_client"
	logger_adapter "listing-search-service/internal/adapters/logger"
	"listing-search-service/internal/adapters/metrics"
	"listing-search-service/internal/adapters/notifier"
	"listing-search-service/internal/adapters/presenter"
	"listing-search-service/internal/adapters/render"
	"listing-search-service/internal/adapters/rest"
	"listing-search-service/internal/configs"
	"listing-search-service/internal/constants"
	"listing-search-service/internal/core/port"
	"listing-search-service/internal/core/usecase"
	fluentlogger "listing-search-service/pkg/fluent_logger"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server
	registry  *usecase.SessionRegistry
	notifier  *notifier.SSENotifier

	redisStore   *cache.RedisStore
	logger       port.LoggerPort
	fluentClient *fluent.Fluent
}

// NewLogger собирает логгер приложения: stdout (tint) и, если включен, Fluent Bit
func NewLogger(cfg *configs.AppConfig) (port.LoggerPort, *fluent.Fluent, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLevel(cfg.StdoutLogger.Level),
		IsJSON:   cfg.StdoutLogger.JSON,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if cfg.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
			Timeout:   3 * time.Second,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLevel(cfg.FluentBit.Level))
		if err != nil {
			fluentClient.Close()
			return nil, nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	return multiLogger.WithFields(port.Fields{"service_name": cfg.AppName}), fluentClient, nil
}

// NewMapProviders возвращает провайдер карт и геокодер. Без ключа API оба nil.
func NewMapProviders(cfg configs.MapsConfig) (port.StaticMapPort, port.GeocoderPort) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	client := geocoding_client.NewClient(geocoding_client.Config{
		GeocodeURL:   cfg.GeocodeURL,
		StaticMapURL: cfg.StaticMapURL,
		APIKey:       cfg.APIKey,
		Zoom:         cfg.Zoom,
		ImageSize:    cfg.ImageSize,
		RatePerSec:   cfg.GeocodeRate,
		Burst:        cfg.GeocodeBurst,
		Timeout:      cfg.RequestTimeout,
	})
	return client, client
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ЛОГГЕРЫ ---
	baseLogger, fluentClient, err := NewLogger(appConfig)
	if err != nil {
		return nil, err
	}

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{"fluent_enabled": appConfig.FluentBit.Enabled})

	// --- 2. АДАПТЕРЫ ---
	searchMetrics := metrics.NewPrometheusMetrics(constants.MetricsNamespace)
	listingsClient := listings_api_client.NewClient(appConfig.ListingsAPI.URL, appConfig.ListingsAPI.Timeout, searchMetrics)

	var (
		cacheStore port.CacheStorePort
		redisStore *cache.RedisStore
	)
	if appConfig.Redis.Addr != "" {
		redisStore = cache.NewRedisStore(cache.RedisConfig{
			Addr:     appConfig.Redis.Addr,
			Password: appConfig.Redis.Password,
			DB:       appConfig.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisStore.Ping(pingCtx)
		cancel()
		if err != nil {
			appLogger.Error("Failed to connect to Redis", err, port.Fields{"addr": appConfig.Redis.Addr})
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		cacheStore = redisStore
		appLogger.Info("Reference cache uses Redis", port.Fields{"addr": appConfig.Redis.Addr})
	} else {
		cacheStore = cache.NewMemoryStore()
		appLogger.Info("Reference cache uses process memory", nil)
	}

	staticMaps, geocoder := NewMapProviders(appConfig.Maps)
	if staticMaps == nil {
		appLogger.Warn("MAP_API_KEY is not set, listings without map URL will show a placeholder", nil)
	}

	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		return nil, err
	}
	sseNotifier := notifier.NewSSENotifier(baseLogger)
	webPresenter := presenter.NewWebPresenter(renderer, sseNotifier)

	// --- 3. USE CASES ---
	referenceCache := usecase.NewReferenceCache(cacheStore, appConfig.Search.ReferenceCacheTTL, searchMetrics)
	referenceUC := usecase.NewGetReferenceDataUseCase(listingsClient, referenceCache)
	detailsUC := usecase.NewGetListingDetailsUseCase(listingsClient)
	findUC := usecase.NewFindListingsByTextUseCase(listingsClient)

	sessionCfg := usecase.SearchSessionConfig{
		PageSize: appConfig.Search.PageSize,
		Debounce: appConfig.Search.Debounce,
	}
	registry := usecase.NewSessionRegistry(func(sessionID string) *usecase.SearchSession {
		// кэш геокодирования у каждой сессии свой
		maps := usecase.NewMapImageResolver(staticMaps, geocoder, searchMetrics)
		return usecase.NewSearchSession(sessionID, sessionCfg, listingsClient, webPresenter, maps, searchMetrics)
	}, appConfig.Search.SessionIdleTTL, searchMetrics)

	appLogger.Info("All use cases initialized", nil)

	// --- 4. HTTP ---
	apiServer := rest.NewServer(
		rest.ServerConfig{
			Port:           appConfig.Rest.Port,
			AllowedOrigins: appConfig.Rest.AllowedOrigins,
			Assets:         render.Assets(),
			Metrics:        searchMetrics.Handler(),
		},
		rest.NewPageHandler(referenceUC, registry, renderer, "Buscador de Propiedades", appConfig.Search.LazyLoadMarginPx),
		rest.NewReferenceHandler(referenceUC, detailsUC, findUC),
		rest.NewSessionHandler(registry, sseNotifier, 15*time.Second),
		baseLogger,
	)

	return &App{
		config:       appConfig,
		apiServer:    apiServer,
		registry:     registry,
		notifier:     sseNotifier,
		redisStore:   redisStore,
		logger:       appLogger,
		fluentClient: fluentClient,
	}, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		a.registry.Close()
		a.notifier.Close()

		if a.redisStore != nil {
			if err := a.redisStore.Close(); err != nil {
				a.logger.Error("Error closing Redis client", err, nil)
			}
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	go a.registry.RunEvictionLoop(appCtx, constants.SessionEvictionInterval)

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed, shutting down", err, nil)
		runErr = err
	}

	cancelApp()

	return runErr
}
