package get_calendar

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/availability/models"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	Period   string                  `json:"period"`
	Start    time.Time               `json:"start"`
	End      time.Time               `json:"end"`
	Bookings []models.BookingSummary `json:"bookings"`
}
