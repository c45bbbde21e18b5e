package middleware

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/pkg/authtoken"
)

// TokenParser проверяет JWT сотрудника
type TokenParser interface {
	Parse(token string) (*authtoken.Claims, error)
}

// HTTPMetrics сборщик HTTP метрик
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
