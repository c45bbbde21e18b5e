package update_booking

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request полная замена изменяемых полей бронирования.
// Магазин и автор не меняются и в запросе отсутствуют
type Request struct {
	Actor domain.Actor
	ID    int64

	ResponsibleID int64
	ClientID      *int64
	SpecifierID   *int64
	Room          string
	Reason        string
	Start         time.Time
	End           time.Time
	GuestCount    int

	WantsRefreshments bool
	Items             json.RawMessage
}

// Response обновлённое бронирование и его заказ (nil без кофе-брейка)
type Response struct {
	Booking *domain.Booking
	Order   *domain.RefreshmentOrder
}
