package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модель запроса сетки слотов переговорной
type Request struct {
	Room string
	Date time.Time // календарная дата, время суток игнорируется
}

// Response сетка слотов переговорной на дату
type Response struct {
	Room        string
	Date        time.Time // полночь даты в часовом поясе магазинов
	SlotMinutes int
	Slots       []domain.RoomSlot
}

// FreeCount возвращает количество свободных слотов
func (r *Response) FreeCount() int {
	n := 0
	for i := range r.Slots {
		if r.Slots[i].IsFree() {
			n++
		}
	}
	return n
}
