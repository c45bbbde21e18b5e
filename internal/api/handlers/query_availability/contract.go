package query_availability

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	QueryAvailability(ctx context.Context, req *models.QueryRequest) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
