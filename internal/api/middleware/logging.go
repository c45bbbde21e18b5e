package middleware

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

// RequestIDHeader заголовок корреляции запросов
const RequestIDHeader = "X-Request-ID"

// RequestLogger логирует каждый запрос с X-Request-ID и перехватывает паники
func RequestLogger(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			rec := newStatusRecorder(w)
			ctx := context.WithValue(r.Context(), requestIDKey, requestID)

			defer func() {
				if p := recover(); p != nil {
					logger.Error("%s %s - panic request_id=%s: %v\n%s", r.Method, r.URL.Path, requestID, p, debug.Stack())
					handlers.RespondInternalError(rec)
				}

				duration := time.Since(start)
				switch {
				case rec.status >= http.StatusInternalServerError:
					logger.Error("%s %s status=%d duration=%s request_id=%s", r.Method, r.URL.Path, rec.status, duration, requestID)
				case rec.status >= http.StatusBadRequest:
					logger.Warn("%s %s status=%d duration=%s request_id=%s", r.Method, r.URL.Path, rec.status, duration, requestID)
				default:
					logger.Info("%s %s status=%d duration=%s request_id=%s", r.Method, r.URL.Path, rec.status, duration, requestID)
				}
			}()

			next.ServeHTTP(rec, r.WithContext(ctx))
		})
	}
}
