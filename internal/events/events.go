// Package events публикует события жизненного цикла бронирований в NATS
// для внешней рассылки уведомлений.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Type тип события, совпадает с NATS subject
type Type string

const (
	BookingCreated       Type = "bookings.created"
	BookingUpdated       Type = "bookings.updated"
	BookingStatusChanged Type = "bookings.status_changed"
	BookingDeleted       Type = "bookings.deleted"
	RoomCleanToggled     Type = "bookings.room_clean_toggled"
	DeliveryToggled      Type = "bookings.delivery_toggled"
)

// BookingEvent событие по бронированию
type BookingEvent struct {
	ID             uuid.UUID `json:"id"`
	Type           Type      `json:"type"`
	BookingID      int64     `json:"booking_id"`
	StoreID        int64     `json:"store_id"`
	Room           string    `json:"room"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Status         string    `json:"status"`
	ResponsibleID  int64     `json:"responsible_id"`
	ActorID        int64     `json:"actor_id"`
	RoomClean      *bool     `json:"room_clean,omitempty"`
	DeliveryStatus *string   `json:"delivery_status,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Subject NATS subject события
func (e *BookingEvent) Subject() string {
	return string(e.Type)
}

// NewBookingEvent создаёт событие по текущему состоянию бронирования
func NewBookingEvent(t Type, b *domain.Booking, actorID int64) *BookingEvent {
	return &BookingEvent{
		ID:            uuid.New(),
		Type:          t,
		BookingID:     b.ID,
		StoreID:       b.StoreID,
		Room:          b.Room,
		Start:         b.Start,
		End:           b.End,
		Status:        b.Status.String(),
		ResponsibleID: b.ResponsibleID,
		ActorID:       actorID,
		OccurredAt:    time.Now().UTC(),
	}
}
