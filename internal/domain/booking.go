package domain

import (
	"fmt"
	"time"
)

// BookingStatus represents the lifecycle status of a room booking
type BookingStatus string

const (
	StatusScheduled BookingStatus = "scheduled"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// validTransitions описывает допустимые переходы статусов.
// Только scheduled может быть источником перехода; остальные статусы терминальные.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusScheduled: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// IsValid returns true if the status is a recognized booking status
func (s BookingStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo returns true if a transition from this status to the target is allowed
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status
func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// HoldsRoom returns true if a booking in this status occupies its room interval
func (s BookingStatus) HoldsRoom() bool {
	return s == StatusScheduled || s == StatusCompleted
}

func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", NewValidationError(FieldError{
			Field:   "status",
			Kind:    KindInvalidEnumValue,
			Message: fmt.Sprintf("unknown status %q", s),
		})
	}
	return status, nil
}

// Booking represents a meeting-room reservation
type Booking struct {
	ID            int64
	StoreID       int64
	ResponsibleID int64
	ClientID      *int64 // reference data only
	SpecifierID   *int64 // reference data only
	Room          string
	Start         time.Time
	End           time.Time
	GuestCount    int
	Reason        string
	Status        BookingStatus

	// RoomClean is a housekeeping flag, independent of Status
	RoomClean         bool
	WantsRefreshments bool

	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking holds its room interval
func (b *Booking) IsActive() bool {
	return b.Status.HoldsRoom()
}

// CanBeModified returns true if time, room or responsible may still be changed
func (b *Booking) CanBeModified() bool {
	return b.Status == StatusScheduled
}

// OverlapsWith returns true if the half-open intervals of both bookings intersect
func (b *Booking) OverlapsWith(other *Booking) bool {
	return Overlaps(b.Start, b.End, other.Start, other.End)
}

// Duration returns the length of the reserved interval
func (b *Booking) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// Overlaps reports whether [s1,e1) and [s2,e2) intersect.
// Touching intervals (e1 == s2) do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// Transition moves the booking to the target status
func Transition(b *Booking, to BookingStatus) error {
	if !to.IsValid() {
		return NewValidationError(FieldError{
			Field:   "status",
			Kind:    KindInvalidEnumValue,
			Message: fmt.Sprintf("unknown status %q", to),
		})
	}
	if !b.Status.CanTransitionTo(to) {
		return &TransitionError{From: b.Status, To: to}
	}
	b.Status = to
	return nil
}

// BookingsFilter фильтр выборки бронирований
type BookingsFilter struct {
	Room *string // nil - все переговорные

	// Пересечение с окном [WindowStart, WindowEnd)
	WindowStart *time.Time
	WindowEnd   *time.Time

	// Начало бронирования в [StartFrom, StartBefore)
	StartFrom   *time.Time
	StartBefore *time.Time

	Status            *BookingStatus
	WantsRefreshments *bool
	IncludeInactive   bool // включать cancelled и no_show
}

// Matches применяет фильтр к бронированию в памяти
func (f BookingsFilter) Matches(b *Booking) bool {
	if f.Room != nil && b.Room != *f.Room {
		return false
	}
	if f.WindowStart != nil && !b.End.After(*f.WindowStart) {
		return false
	}
	if f.WindowEnd != nil && !b.Start.Before(*f.WindowEnd) {
		return false
	}
	if f.StartFrom != nil && b.Start.Before(*f.StartFrom) {
		return false
	}
	if f.StartBefore != nil && !b.Start.Before(*f.StartBefore) {
		return false
	}
	if f.WantsRefreshments != nil && b.WantsRefreshments != *f.WantsRefreshments {
		return false
	}
	if f.Status != nil {
		return b.Status == *f.Status
	}
	return f.IncludeInactive || b.IsActive()
}
