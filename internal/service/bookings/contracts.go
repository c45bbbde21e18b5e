package bookings

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	ToggleRoomClean(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// OrderRepository интерфейс репозитория заказов кофе-брейка
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RefreshmentOrder, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.RefreshmentOrder, error)
	ToggleDeliveryStatus(ctx context.Context, id int64) (domain.DeliveryStatus, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, event *events.BookingEvent) error
}

// Metrics доменные метрики
type Metrics interface {
	IncStatusTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
