package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модели

// ChangeStatusRequest запрос на смену статуса бронирования
type ChangeStatusRequest struct {
	Actor  domain.Actor
	Status string
}

// Response модели

// OrderItemResponse позиция заказа
type OrderItemResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// OrderResponse заказ кофе-брейка
type OrderResponse struct {
	ID             int64               `json:"id"`
	BookingID      int64               `json:"bookingId"`
	Items          []OrderItemResponse `json:"items"`
	DeliveryStatus string              `json:"deliveryStatus"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64     `json:"id"`
	StoreID       int64     `json:"storeId"`
	ResponsibleID int64     `json:"responsibleId"`
	ClientID      *int64    `json:"clientId,omitempty"`
	SpecifierID   *int64    `json:"specifierId,omitempty"`
	Room          string    `json:"room"`
	Reason        string    `json:"reason"`
	Start         time.Time `json:"start"` // RFC 3339
	End           time.Time `json:"end"`
	GuestCount    int       `json:"guestCount"`
	Status        string    `json:"status"`

	RoomClean         bool           `json:"roomClean"`
	WantsRefreshments bool           `json:"wantsRefreshments"`
	Order             *OrderResponse `json:"order,omitempty"`

	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// RoomCleanResponse результат переключения флага уборки
type RoomCleanResponse struct {
	BookingID int64 `json:"bookingId"`
	RoomClean bool  `json:"roomClean"`
}

// DeliveryStatusResponse результат переключения статуса доставки
type DeliveryStatusResponse struct {
	OrderID        int64  `json:"orderId"`
	BookingID      int64  `json:"bookingId"`
	DeliveryStatus string `json:"deliveryStatus"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO. order может быть nil
func FromDomainBooking(b *domain.Booking, order *domain.RefreshmentOrder) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                b.ID,
		StoreID:           b.StoreID,
		ResponsibleID:     b.ResponsibleID,
		ClientID:          b.ClientID,
		SpecifierID:       b.SpecifierID,
		Room:              b.Room,
		Reason:            b.Reason,
		Start:             b.Start,
		End:               b.End,
		GuestCount:        b.GuestCount,
		Status:            string(b.Status),
		RoomClean:         b.RoomClean,
		WantsRefreshments: b.WantsRefreshments,
		Order:             FromDomainOrder(order),
		CreatedBy:         b.CreatedBy,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// FromDomainOrder конвертирует заказ в DTO
func FromDomainOrder(o *domain.RefreshmentOrder) *OrderResponse {
	if o == nil {
		return nil
	}

	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{Name: item.Name, Quantity: item.Quantity}
	}

	return &OrderResponse{
		ID:             o.ID,
		BookingID:      o.BookingID,
		Items:          items,
		DeliveryStatus: string(o.DeliveryStatus),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, nil); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
