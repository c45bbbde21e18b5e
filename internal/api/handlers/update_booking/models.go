package update_booking

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	updateBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model: полная замена изменяемых полей
type UpdateBookingRequest struct {
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
func (r *UpdateBookingRequest) ToUseCaseRequest(id int64, actor domain.Actor) *updateBooking.Request {
	return &updateBooking.Request{
		Actor:             actor,
		ID:                id,
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
