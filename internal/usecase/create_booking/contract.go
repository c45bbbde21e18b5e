package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/events"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/directory"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// OrderRepository интерфейс репозитория заказов кофе-брейка
type OrderRepository interface {
	Save(ctx context.Context, order *domain.RefreshmentOrder) (*domain.RefreshmentOrder, error)
}

// ConflictDetector проверяет, что интервал переговорной свободен
type ConflictDetector interface {
	EnsureFree(ctx context.Context, room string, start, end time.Time, excludeID *int64) error
}

// DirectoryClient интерфейс справочника сотрудников
type DirectoryClient interface {
	GetUser(ctx context.Context, userID int64) (*directory.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, event *events.BookingEvent) error
}

// Metrics доменные метрики
type Metrics interface {
	IncBookingCreated()
	IncBookingConflict()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
