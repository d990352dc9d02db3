package rest

import (
	"encoding/json"
	"errors"
	"listing-search-service/internal/core/domain"
	"net/http"
	"strconv"
	"strings"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// errorStatus сопоставляет доменную ошибку HTTP-статусу
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrListingNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrQueryTooShort),
		errors.Is(err, domain.ErrInvalidLimit),
		errors.Is(err, domain.ErrUnknownFilter),
		errors.Is(err, domain.ErrInvalidFilterValue):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAPIUnavailable), errors.Is(err, domain.ErrInvalidResponse):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}
