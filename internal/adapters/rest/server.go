package rest

import (
	"context"
	"fmt"
	"io/fs"
	"listing-search-service/internal/core/port"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ServerConfig - параметры HTTP-сервера
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	// Assets - статические файлы страницы, раздаются по /static/
	Assets fs.FS
	// Metrics - обработчик /metrics, может быть nil
	Metrics http.Handler
}

// Server - HTTP-сервер страницы поиска и ее API
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(
	cfg ServerConfig,
	page *PageHandler,
	reference *ReferenceHandler,
	session *SessionHandler,
	baseLogger port.LoggerPort,
) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, page, reference, session, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

// NewRouter собирает маршруты. Вынесен отдельно, чтобы тесты работали без сокета.
func NewRouter(
	cfg ServerConfig,
	page *PageHandler,
	reference *ReferenceHandler,
	session *SessionHandler,
	baseLogger port.LoggerPort,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
			ExposedHeaders:   []string{"X-Trace-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}
	if cfg.Assets != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(cfg.Assets))))
	}

	r.With(SessionMiddleware).Get("/", page.GetPage)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stats", reference.GetStats)
		r.Get("/barrios", reference.GetNeighborhoods)
		r.Get("/fuentes", reference.GetSources)
		r.Get("/listings/{listingID}", reference.GetListingDetails)
		r.Get("/find", reference.FindListings)

		r.Route("/session", func(r chi.Router) {
			r.Use(SessionMiddleware)

			r.Get("/filters", session.GetFilters)
			r.Post("/filters", session.ChangeFilter)
			r.Post("/filters/clear", session.ClearFilters)
			r.Post("/search", session.SearchNow)
			r.Post("/page", session.GoToPage)
			r.Post("/page/next", session.NextPage)
			r.Post("/page/prev", session.PrevPage)
			r.Get("/events", session.Subscribe)
			r.Get("/listings/{listingID}/map-image", session.GetMapImage)
			r.Get("/markers", session.GetMarkers)
		})
	})

	return r
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
