package get_today_orders

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	TodayOrders(ctx context.Context) (*models.TodayOrdersResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
