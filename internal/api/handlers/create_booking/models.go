package create_booking

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model. Время в RFC 3339 с часовым поясом
type CreateBookingRequest struct {
	StoreID       int64     `json:"storeId"`
	ResponsibleID int64     `json:"responsibleId"`
	ClientID      *int64    `json:"clientId,omitempty"`
	SpecifierID   *int64    `json:"specifierId,omitempty"`
	Room          string    `json:"room"`
	Reason        string    `json:"reason"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	GuestCount    int       `json:"guestCount"`

	WantsRefreshments bool            `json:"wantsRefreshments"`
	Items             json.RawMessage `json:"items,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) *createBooking.Request {
	return &createBooking.Request{
		Actor:             actor,
		StoreID:           r.StoreID,
		ResponsibleID:     r.ResponsibleID,
		ClientID:          r.ClientID,
		SpecifierID:       r.SpecifierID,
		Room:              r.Room,
		Reason:            r.Reason,
		Start:             r.Start,
		End:               r.End,
		GuestCount:        r.GuestCount,
		WantsRefreshments: r.WantsRefreshments,
		Items:             r.Items,
	}
}
