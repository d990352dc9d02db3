package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"listing-search-service/internal/adapters/notifier"
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/core/domain"
	"listing-search-service/internal/core/port"
	"listing-search-service/internal/core/port/usecases_port"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type sessionSubscriber interface {
	AddClient(sessionID string) notifier.ClientChannel
	RemoveClient(sessionID string, ch notifier.ClientChannel)
}

// SessionHandler - действия пользователя в поисковой сессии
type SessionHandler struct {
	registry   usecases_port.SessionRegistryUseCase
	subscriber sessionSubscriber
	keepAlive  time.Duration
}

func NewSessionHandler(registry usecases_port.SessionRegistryUseCase, subscriber sessionSubscriber, keepAlive time.Duration) *SessionHandler {
	if keepAlive <= 0 {
		keepAlive = 15 * time.Second
	}
	return &SessionHandler{
		registry:   registry,
		subscriber: subscriber,
		keepAlive:  keepAlive,
	}
}

func (h *SessionHandler) session(r *http.Request) usecases_port.SearchSessionUseCase {
	return h.registry.GetOrCreate(r.Context(), contextkeys.SessionIDFromContext(r.Context()))
}

// ChangeFilter обрабатывает POST /api/v1/session/filters
func (h *SessionHandler) ChangeFilter(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ChangeFilter"})

	var req ChangeFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode filter change request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	field, err := domain.ParseFilterField(req.Field)
	if err != nil {
		logger.Warn("Unknown filter field", port.Fields{"field": req.Field})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.session(r).ChangeFilter(r.Context(), field, req.Value); err != nil {
		logger.Warn("Invalid filter value", port.Fields{"field": field, "error": err.Error()})
		WriteJSONError(w, errorStatus(err), err.Error())
		return
	}

	// результат поиска придет по SSE
	RespondWithJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// ClearFilters обрабатывает POST /api/v1/session/filters/clear
func (h *SessionHandler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	outcome := h.session(r).ClearFilters(r.Context())
	RespondWithJSON(w, http.StatusOK, toOutcomeResponse(outcome, true))
}

// SearchNow обрабатывает POST /api/v1/session/search
func (h *SessionHandler) SearchNow(w http.ResponseWriter, r *http.Request) {
	outcome := h.session(r).SearchNow(r.Context())
	RespondWithJSON(w, http.StatusOK, toOutcomeResponse(outcome, true))
}

// NextPage обрабатывает POST /api/v1/session/page/next
func (h *SessionHandler) NextPage(w http.ResponseWriter, r *http.Request) {
	outcome, moved := h.session(r).NextPage(r.Context())
	RespondWithJSON(w, http.StatusOK, toOutcomeResponse(outcome, moved))
}

// PrevPage обрабатывает POST /api/v1/session/page/prev
func (h *SessionHandler) PrevPage(w http.ResponseWriter, r *http.Request) {
	outcome, moved := h.session(r).PrevPage(r.Context())
	RespondWithJSON(w, http.StatusOK, toOutcomeResponse(outcome, moved))
}

// GoToPage обрабатывает POST /api/v1/session/page
func (h *SessionHandler) GoToPage(w http.ResponseWriter, r *http.Request) {
	var req GoToPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Page < 1 {
		WriteJSONError(w, http.StatusBadRequest, "Field 'page' must be a positive integer")
		return
	}

	outcome := h.session(r).GoToPage(r.Context(), req.Page)
	RespondWithJSON(w, http.StatusOK, toOutcomeResponse(outcome, true))
}

// GetFilters обрабатывает GET /api/v1/session/filters
func (h *SessionHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	filters := h.session(r).Filters()

	values := make(map[string]string)
	for _, field := range domain.FilterFields() {
		if value, ok := filters.Value(field); ok {
			values[string(field)] = value
		}
	}
	RespondWithJSON(w, http.StatusOK, values)
}

// GetMapImage обрабатывает GET /api/v1/session/listings/{listingID}/map-image
func (h *SessionHandler) GetMapImage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetMapImage"})

	listingID, err := strconv.ParseInt(chi.URLParam(r, "listingID"), 10, 64)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing ID in URL")
		return
	}

	img, err := h.session(r).MapImage(r.Context(), listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			logger.Debug("Listing is not in current results", port.Fields{"listing_id": listingID})
			WriteJSONError(w, http.StatusNotFound, "Listing is not in current results")
			return
		}
		logger.Error("Failed to resolve map image", err, port.Fields{"listing_id": listingID})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to resolve map image")
		return
	}

	RespondWithJSON(w, http.StatusOK, toMapImageResponse(img))
}

// GetMarkers обрабатывает GET /api/v1/session/markers
func (h *SessionHandler) GetMarkers(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, toMarkersResponse(h.session(r).Markers()))
}

// Subscribe обрабатывает GET /api/v1/session/events
func (h *SessionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	sessionID := contextkeys.SessionIDFromContext(r.Context())
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Subscribe"})

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteJSONError(w, http.StatusInternalServerError, "Streaming is not supported")
		return
	}

	// сессия должна существовать до первого события
	h.session(r)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := h.subscriber.AddClient(sessionID)
	defer h.subscriber.RemoveClient(sessionID, clientChan)

	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case data := <-clientChan:
			if _, err := w.Write(data); err != nil {
				logger.Error("Error writing to client, closing SSE connection", err, nil)
				return
			}
			flusher.Flush()

		case <-ticker.C:
			// строки SSE, начинающиеся с ':', браузер считает комментариями
			if _, err := fmt.Fprintf(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			logger.Debug("SSE client disconnected.", nil)
			return
		}
	}
}
