package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RoomReservations/internal/api/handlers"
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
)

const (
	// HeaderUserID ID сотрудника, проставляется шлюзом после аутентификации
	HeaderUserID = "X-User-ID"
	// HeaderCapabilities возможности сотрудника через запятую: approve, admin
	HeaderCapabilities = "X-User-Capabilities"

	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
)

type actorKey struct{}

// Auth кладёт в контекст актора из заголовков шлюза
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		personID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || personID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		actor := domain.NewActor(personID, domain.ParseActions(r.Header.Get(HeaderCapabilities))...)
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// WithActor кладёт актора в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor возвращает актора из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
