package availability

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/directory"
)

// BookingRepository источник бронирований для календаря
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// OrderRepository источник заказов кофе-брейка
type OrderRepository interface {
	GetByBookingIDs(ctx context.Context, bookingIDs []int64) (map[int64]*domain.RefreshmentOrder, error)
}

// DirectoryClient справочник для отображаемых имён
type DirectoryClient interface {
	GetUser(ctx context.Context, userID int64) (*directory.User, error)
	GetCustomer(ctx context.Context, customerID int64) (*directory.Customer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RoomCatalog отображаемые названия переговорных
type RoomCatalog interface {
	RoomName(code string) string
}
