package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/authtoken"
)

const (
	msgMissingToken = "требуется заголовок Authorization: Bearer <token>"
	msgInvalidToken = "недействительный токен"
)

// Auth проверяет Bearer JWT и кладёт domain.Actor в контекст запроса
func Auth(tokens TokenParser, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				logger.Warn("%s %s - missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				logger.Warn("%s %s - invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), ActorFromClaims(claims))))
		})
	}
}

// ActorFromClaims конвертирует claims токена в сотрудника.
// store_id = 0 означает сотрудника без магазина
func ActorFromClaims(c *authtoken.Claims) domain.Actor {
	actor := domain.Actor{
		UserID: c.UserID,
		Role:   domain.Role(c.Role),
		Name:   c.Name,
	}
	if c.StoreID > 0 {
		storeID := c.StoreID
		actor.StoreID = &storeID
	}
	return actor
}
