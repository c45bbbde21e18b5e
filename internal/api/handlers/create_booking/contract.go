package create_booking

import (
	"context"

	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
)

// CreateBookingUseCase проверяет, авторизует и сохраняет бронь переговорной вместе с заказом
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
