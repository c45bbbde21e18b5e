package create_booking

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor domain.Actor

	StoreID       int64
	ResponsibleID int64
	ClientID      *int64
	SpecifierID   *int64
	Room          string
	Reason        string
	Start         time.Time
	End           time.Time
	GuestCount    int

	WantsRefreshments bool
	Items             json.RawMessage // список позиций или {категория: [названия]}
}

// Response созданное бронирование и его заказ (nil без кофе-брейка)
type Response struct {
	Booking *domain.Booking
	Order   *domain.RefreshmentOrder
}
