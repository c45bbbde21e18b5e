package middleware

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

type ctxKey int

const (
	actorKey ctxKey = iota
	requestIDKey
)

// WithActor кладёт сотрудника в контекст запроса
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor возвращает сотрудника, проверенного middleware Auth
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetRequestID возвращает идентификатор запроса
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
