package rest

import (
	"fmt"
	"listing-search-service/internal/adapters/render"
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/core/domain"
	"listing-search-service/internal/core/port"
	"listing-search-service/internal/core/port/usecases_port"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ReferenceHandler отдает справочные данные и объявления без привязки к сессии
type ReferenceHandler struct {
	referenceUC usecases_port.GetReferenceDataUseCase
	detailsUC   usecases_port.GetListingDetailsUseCase
	findUC      usecases_port.FindListingsByTextUseCase
}

func NewReferenceHandler(
	referenceUC usecases_port.GetReferenceDataUseCase,
	detailsUC usecases_port.GetListingDetailsUseCase,
	findUC usecases_port.FindListingsByTextUseCase,
) *ReferenceHandler {
	return &ReferenceHandler{
		referenceUC: referenceUC,
		detailsUC:   detailsUC,
		findUC:      findUC,
	}
}

// GetStats обрабатывает GET /api/v1/stats
func (h *ReferenceHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetStats"})

	stats, err := h.referenceUC.Stats(r.Context())
	if err != nil {
		logger.Error("Failed to get stats", err, nil)
		WriteJSONError(w, errorStatus(err), "Failed to get stats")
		return
	}

	view := render.NewStatsView(stats)
	RespondWithJSON(w, http.StatusOK, StatsResponse{
		TotalListings: stats.TotalListings,
		BySource:      toOptionsResponse(stats.BySource, nil),
		AveragePrice:  stats.AveragePrice,
		MinPrice:      stats.MinPrice,
		MaxPrice:      stats.MaxPrice,
		Display: map[string]string{
			"total":   view.Total,
			"average": view.Average,
			"min":     view.Min,
			"max":     view.Max,
		},
	})
}

// GetNeighborhoods обрабатывает GET /api/v1/barrios
func (h *ReferenceHandler) GetNeighborhoods(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetNeighborhoods"})

	rows, err := h.referenceUC.Neighborhoods(r.Context())
	if err != nil {
		logger.Error("Failed to get neighborhoods", err, nil)
		WriteJSONError(w, errorStatus(err), "Failed to get neighborhoods")
		return
	}

	RespondWithJSON(w, http.StatusOK, toOptionsResponse(rows, func(row domain.AggregationRow) string {
		return fmt.Sprintf("%s (%d)", row.Value, row.Count)
	}))
}

// GetSources обрабатывает GET /api/v1/fuentes
func (h *ReferenceHandler) GetSources(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetSources"})

	rows, err := h.referenceUC.Sources(r.Context())
	if err != nil {
		logger.Error("Failed to get sources", err, nil)
		WriteJSONError(w, errorStatus(err), "Failed to get sources")
		return
	}

	RespondWithJSON(w, http.StatusOK, toOptionsResponse(rows, func(row domain.AggregationRow) string {
		return fmt.Sprintf("%s (%d)", domain.Capitalize(row.Value), row.Count)
	}))
}

// GetListingDetails обрабатывает GET /api/v1/listings/{listingID}
func (h *ReferenceHandler) GetListingDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetListingDetails"})

	listingID, err := strconv.ParseInt(chi.URLParam(r, "listingID"), 10, 64)
	if err != nil {
		logger.Warn("Invalid listing ID format in URL", port.Fields{"provided_id": chi.URLParam(r, "listingID")})
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing ID in URL")
		return
	}

	detail, err := h.detailsUC.Execute(r.Context(), listingID)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusNotFound {
			logger.Warn("Listing not found", port.Fields{"listing_id": listingID})
			WriteJSONError(w, status, "Listing not found")
			return
		}
		logger.Error("GetListingDetails use case failed", err, port.Fields{"listing_id": listingID})
		WriteJSONError(w, status, "Failed to get listing details")
		return
	}

	RespondWithJSON(w, http.StatusOK, toListingDetailResponse(detail))
}

// FindListings обрабатывает GET /api/v1/find?q=...&limit=...
func (h *ReferenceHandler) FindListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "FindListings"})

	query := r.URL.Query()
	limit, err := parseIntParam(query.Get("limit"), 0)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
		return
	}

	listings, err := h.findUC.Execute(r.Context(), query.Get("q"), limit)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusBadRequest {
			logger.Warn("Invalid text search request", port.Fields{"error": err.Error()})
			WriteJSONError(w, status, err.Error())
			return
		}
		logger.Error("FindListings use case failed", err, nil)
		WriteJSONError(w, status, "Failed to search listings")
		return
	}

	logger.Info("Text search completed", port.Fields{"found": len(listings)})
	RespondWithJSON(w, http.StatusOK, toListingsResponse(listings))
}
