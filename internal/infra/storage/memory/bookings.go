package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingRepository бронирования в памяти
type BookingRepository struct {
	s *Store
}

func (r *BookingRepository) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// тот же инвариант, что и exclusion constraint в Postgres
	if b.IsActive() {
		for _, other := range r.s.bookings {
			if other.Room == b.Room && other.IsActive() && other.OverlapsWith(b) {
				return nil, fmt.Errorf("%w: Create - overlaps booking %d", domain.ErrConflictDetected, other.ID)
			}
		}
	}

	r.s.nextBookingID++
	now := r.s.now()
	b.ID = r.s.nextBookingID
	b.CreatedAt = now
	b.UpdatedAt = now
	r.s.bookings[b.ID] = copyBooking(b)

	return b, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", domain.ErrBookingNotFound, id)
	}
	return copyBooking(b), nil
}

func (r *BookingRepository) Update(_ context.Context, b *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.bookings[b.ID]
	if !ok {
		return fmt.Errorf("%w: id=%d", domain.ErrBookingNotFound, b.ID)
	}

	updated := copyBooking(stored)
	updated.ResponsibleID = b.ResponsibleID
	updated.ClientID = b.ClientID
	updated.SpecifierID = b.SpecifierID
	updated.Room = b.Room
	updated.Start = b.Start
	updated.End = b.End
	updated.GuestCount = b.GuestCount
	updated.Reason = b.Reason
	updated.WantsRefreshments = b.WantsRefreshments
	updated.UpdatedAt = r.s.now()

	if updated.IsActive() {
		for _, other := range r.s.bookings {
			if other.ID != updated.ID && other.Room == updated.Room && other.IsActive() && other.OverlapsWith(updated) {
				return fmt.Errorf("%w: Update - overlaps booking %d", domain.ErrConflictDetected, other.ID)
			}
		}
	}

	r.s.bookings[b.ID] = copyBooking(updated)
	b.UpdatedAt = updated.UpdatedAt
	return nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return fmt.Errorf("%w: id=%d", domain.ErrBookingNotFound, id)
	}
	b.Status = status
	b.UpdatedAt = r.s.now()
	return nil
}

func (r *BookingRepository) ToggleRoomClean(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return false, fmt.Errorf("%w: id=%d", domain.ErrBookingNotFound, id)
	}
	b.RoomClean = !b.RoomClean
	b.UpdatedAt = r.s.now()
	return b.RoomClean, nil
}

// Delete удаляет бронирование вместе с заказом
func (r *BookingRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.bookings[id]; !ok {
		return fmt.Errorf("%w: id=%d", domain.ErrBookingNotFound, id)
	}
	delete(r.s.bookings, id)

	for orderID, o := range r.s.orders {
		if o.BookingID == id {
			delete(r.s.orders, orderID)
		}
	}
	return nil
}

// LockRoom не нужен: транзакции в памяти и так выполняются по одной
func (r *BookingRepository) LockRoom(_ context.Context, _ string) error {
	return nil
}

func (r *BookingRepository) FindOverlapping(_ context.Context, room string, start, end time.Time, excludeID *int64) ([]*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.Room != room || !b.IsActive() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if domain.Overlaps(b.Start, b.End, start, end) {
			result = append(result, copyBooking(b))
		}
	}

	sortByStart(result)
	return result, nil
}

func (r *BookingRepository) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if filter.Matches(b) {
			result = append(result, copyBooking(b))
		}
	}

	sortByStart(result)
	return result, nil
}

func sortByStart(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].Start.Equal(bookings[j].Start) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].Start.Before(bookings[j].Start)
	})
}
