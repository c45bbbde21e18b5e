package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_available_slots"
)

// SlotResponse слот сетки переговорной
type SlotResponse struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Free      bool      `json:"free"`
	BookingID *int64    `json:"bookingId,omitempty"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Room        string         `json:"room"`
	Date        string         `json:"date"`
	SlotMinutes int            `json:"slotMinutes"`
	FreeCount   int            `json:"freeCount"`
	Slots       []SlotResponse `json:"slots"`
}

// ToUseCaseRequest разбирает дату YYYY-MM-DD в часовом поясе магазинов
func ToUseCaseRequest(room, date string, loc *time.Location) (*getAvailableSlots.Request, error) {
	day, err := time.ParseInLocation(domain.DateFormat, date, loc)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{Room: room, Date: day}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Start:     s.Start,
			End:       s.End,
			Free:      s.IsFree(),
			BookingID: s.BookingID,
		})
	}

	return &AvailableSlotsResponse{
		Room:        resp.Room,
		Date:        resp.Date.Format(domain.DateFormat),
		SlotMinutes: resp.SlotMinutes,
		FreeCount:   resp.FreeCount(),
		Slots:       slots,
	}
}
