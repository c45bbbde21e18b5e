package memory

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// OrderRepository заказы кофе-брейка в памяти
type OrderRepository struct {
	s *Store
}

// Save создаёт заказ или заменяет позиции существующего, сохраняя статус доставки
func (r *OrderRepository) Save(_ context.Context, order *domain.RefreshmentOrder) (*domain.RefreshmentOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.bookings[order.BookingID]; !ok {
		return nil, fmt.Errorf("%w: booking_id=%d", domain.ErrBookingNotFound, order.BookingID)
	}

	now := r.s.now()
	for _, existing := range r.s.orders {
		if existing.BookingID == order.BookingID {
			existing.Items = append([]domain.OrderItem(nil), order.Items...)
			existing.UpdatedAt = now
			return copyOrder(existing), nil
		}
	}

	r.s.nextOrderID++
	stored := copyOrder(order)
	stored.ID = r.s.nextOrderID
	if stored.DeliveryStatus == "" {
		stored.DeliveryStatus = domain.DeliveryPending
	}
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.orders[stored.ID] = stored

	return copyOrder(stored), nil
}

func (r *OrderRepository) GetByID(_ context.Context, id int64) (*domain.RefreshmentOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", domain.ErrOrderNotFound, id)
	}
	return copyOrder(o), nil
}

func (r *OrderRepository) GetByBookingID(_ context.Context, bookingID int64) (*domain.RefreshmentOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.orders {
		if o.BookingID == bookingID {
			return copyOrder(o), nil
		}
	}
	return nil, fmt.Errorf("%w: booking_id=%d", domain.ErrOrderNotFound, bookingID)
}

func (r *OrderRepository) GetByBookingIDs(_ context.Context, bookingIDs []int64) (map[int64]*domain.RefreshmentOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[int64]struct{}, len(bookingIDs))
	for _, id := range bookingIDs {
		wanted[id] = struct{}{}
	}

	result := make(map[int64]*domain.RefreshmentOrder, len(bookingIDs))
	for _, o := range r.s.orders {
		if _, ok := wanted[o.BookingID]; ok {
			result[o.BookingID] = copyOrder(o)
		}
	}
	return result, nil
}

func (r *OrderRepository) DeleteByBookingID(_ context.Context, bookingID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, o := range r.s.orders {
		if o.BookingID == bookingID {
			delete(r.s.orders, id)
		}
	}
	return nil
}

func (r *OrderRepository) ToggleDeliveryStatus(_ context.Context, id int64) (domain.DeliveryStatus, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return "", fmt.Errorf("%w: id=%d", domain.ErrOrderNotFound, id)
	}
	o.DeliveryStatus = o.DeliveryStatus.Toggled()
	o.UpdatedAt = r.s.now()
	return o.DeliveryStatus, nil
}
