package domain

import (
	"fmt"
	"time"
)

// Catalog справочник переговорных и причин бронирования
type Catalog interface {
	HasRoom(code string) bool
	HasReason(code string) bool
}

// BookingCandidate входные данные для создания или изменения бронирования.
// Нулевые значения означают отсутствующее поле
type BookingCandidate struct {
	StoreID       int64
	ResponsibleID int64
	ClientID      *int64
	SpecifierID   *int64
	Room          string
	Reason        string
	Start         time.Time
	End           time.Time
	GuestCount    int
	Status        BookingStatus

	WantsRefreshments bool
	Items             []OrderItem
}

// ValidateBooking проверяет кандидата и возвращает все ошибки полей сразу.
// Кандидат не изменяется, пустой статус допустим
func ValidateBooking(c *BookingCandidate, catalog Catalog) error {
	var fields []FieldError

	required := func(field string, missing bool) {
		if missing {
			fields = append(fields, FieldError{
				Field:   field,
				Kind:    KindFieldRequired,
				Message: fmt.Sprintf("%s is required", field),
			})
		}
	}

	required("room", c.Room == "")
	required("reason", c.Reason == "")
	required("store", c.StoreID <= 0)
	required("responsible", c.ResponsibleID <= 0)
	required("start", c.Start.IsZero())
	required("end", c.End.IsZero())

	if !c.Start.IsZero() && !c.End.IsZero() && !c.Start.Before(c.End) {
		fields = append(fields, FieldError{
			Field:   "end",
			Kind:    KindInvalidInterval,
			Message: "start must be strictly before end",
		})
	}

	if c.Room != "" && catalog != nil && !catalog.HasRoom(c.Room) {
		fields = append(fields, FieldError{
			Field:   "room",
			Kind:    KindInvalidEnumValue,
			Message: fmt.Sprintf("unknown room %q", c.Room),
		})
	}
	if c.Reason != "" && catalog != nil && !catalog.HasReason(c.Reason) {
		fields = append(fields, FieldError{
			Field:   "reason",
			Kind:    KindInvalidEnumValue,
			Message: fmt.Sprintf("unknown reason %q", c.Reason),
		})
	}

	if c.Status != "" && !c.Status.IsValid() {
		fields = append(fields, FieldError{
			Field:   "status",
			Kind:    KindInvalidEnumValue,
			Message: fmt.Sprintf("unknown status %q", c.Status),
		})
	}

	if c.GuestCount < 0 || c.GuestCount > MaxGuestCount {
		fields = append(fields, FieldError{
			Field:   "guest_count",
			Kind:    KindOutOfRange,
			Message: fmt.Sprintf("guest count must be between 0 and %d", MaxGuestCount),
		})
	}

	if len(fields) > 0 {
		return NewValidationError(fields...)
	}
	return nil
}
