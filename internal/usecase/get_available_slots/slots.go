package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// generateSlots строит сетку рабочего дня с фиксированным шагом.
// Слот, выходящий за время закрытия, не создаётся.
// Для сегодняшней даты отбрасываются слоты, начавшиеся до now
func generateSlots(day time.Time, cfg domain.SlotsConfig, now time.Time) []domain.RoomSlot {
	open, closeAt := cfg.Hours.On(day)
	step := cfg.SlotDuration()

	slots := make([]domain.RoomSlot, 0)
	for start := open; !start.Add(step).After(closeAt); start = start.Add(step) {
		if start.Before(now) {
			continue
		}
		slots = append(slots, domain.RoomSlot{Start: start, End: start.Add(step)})
	}
	return slots
}

// markBusy помечает слоты, пересекающиеся с активными бронированиями.
// Граничащие интервалы (конец бронирования = начало слота) пересечением не считаются
func markBusy(slots []domain.RoomSlot, bookings []*domain.Booking) {
	for i := range slots {
		for _, b := range bookings {
			if !b.IsActive() {
				continue
			}
			if domain.Overlaps(slots[i].Start, slots[i].End, b.Start, b.End) {
				id := b.ID
				slots[i].BookingID = &id
				break
			}
		}
	}
}

// startOfDay возвращает полночь даты в loc
func startOfDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
