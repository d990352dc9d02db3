package rest

import (
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/core/port"
	"net/http"

	"github.com/google/uuid"
)

// SessionCookieName - cookie с идентификатором поисковой сессии
const SessionCookieName = "search_session"

// SessionMiddleware достает ID сессии из cookie или выдает новый
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				sessionID = cookie.Value
			}
		}

		if sessionID == "" {
			sessionID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := contextkeys.ContextWithSessionID(r.Context(), sessionID)
		logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"session_id": sessionID})
		ctx = contextkeys.ContextWithLogger(ctx, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
