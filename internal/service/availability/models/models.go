package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// QueryRequest окно календаря
type QueryRequest struct {
	Room            *string // nil - все переговорные
	Start           time.Time
	End             time.Time
	IncludeInactive bool
}

// BookingSummary строка календаря
type BookingSummary struct {
	ID              int64     `json:"id"`
	Room            string    `json:"room"`
	RoomName        string    `json:"roomName,omitempty"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	ResponsibleID   int64     `json:"responsibleId"`
	ResponsibleName string    `json:"responsibleName"`
	ClientID        *int64    `json:"clientId,omitempty"`
	ClientName      string    `json:"clientName,omitempty"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
}

// AvailabilityResponse занятость переговорных в окне
type AvailabilityResponse struct {
	Start    time.Time        `json:"start"`
	End      time.Time        `json:"end"`
	Bookings []BookingSummary `json:"bookings"`
}

// OrderItem позиция заказа
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// TodayOrder бронирование с заказом на сегодня
type TodayOrder struct {
	BookingID      int64       `json:"bookingId"`
	OrderID        int64       `json:"orderId"`
	Room           string      `json:"room"`
	Start          time.Time   `json:"start"`
	End            time.Time   `json:"end"`
	GuestCount     int         `json:"guestCount"`
	Status         string      `json:"status"`
	RoomClean      bool        `json:"roomClean"`
	Items          []OrderItem `json:"items"`
	DeliveryStatus string      `json:"deliveryStatus"`
}

// TodayOrdersResponse операционный список кофе-брейков на сегодня
type TodayOrdersResponse struct {
	Date   string       `json:"date"` // YYYY-MM-DD
	Orders []TodayOrder `json:"orders"`
}

// FromDomainOrder собирает строку операционного списка
func FromDomainOrder(b *domain.Booking, o *domain.RefreshmentOrder) TodayOrder {
	items := make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItem{Name: item.Name, Quantity: item.Quantity}
	}

	return TodayOrder{
		BookingID:      b.ID,
		OrderID:        o.ID,
		Room:           b.Room,
		Start:          b.Start,
		End:            b.End,
		GuestCount:     b.GuestCount,
		Status:         string(b.Status),
		RoomClean:      b.RoomClean,
		Items:          items,
		DeliveryStatus: string(o.DeliveryStatus),
	}
}
