package get_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/availability"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	QueryPeriod(ctx context.Context, period availability.Period, ref time.Time, includeInactive bool) ([]*domain.Booking, time.Time, time.Time, error)
	Summarize(ctx context.Context, bookings []*domain.Booking) []models.BookingSummary
	Location() *time.Location
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
