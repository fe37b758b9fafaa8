package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// Заголовки, через которые внешний слой аутентификации передаёт актора
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserName  = "X-User-Name"
	HeaderUserEmail = "X-User-Email"
)

const msgMissingUserID = "отсутствует заголовок X-User-ID"

type actorCtxKey struct{}

// Auth middleware извлекает актора из заголовков запроса.
// Сервис не аутентифицирует сам - идентичность приходит от внешнего слоя
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
			return
		}

		actor := domain.Actor{ID: userID}

		if name := strings.TrimSpace(r.Header.Get(HeaderUserName)); name != "" {
			actor.Name = &name
		}
		if email := strings.TrimSpace(r.Header.Get(HeaderUserEmail)); email != "" {
			actor.Email = &email
		}

		ctx := context.WithValue(r.Context(), actorCtxKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext возвращает актора, положенного Auth middleware
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey{}).(domain.Actor)
	return actor, ok
}
