package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/intunemindset/IM-BookingService/internal/api/handlers"
)

const adminTokenHeader = "X-Admin-Token"

// AdminAuth защищает операторские маршруты статическим токеном
// Пустой настроенный токен закрывает операторский доступ полностью
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				handlers.RespondError(w, http.StatusForbidden, "operator access is not configured")
				return
			}

			provided := r.Header.Get(adminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				handlers.RespondError(w, http.StatusUnauthorized, "invalid operator token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
