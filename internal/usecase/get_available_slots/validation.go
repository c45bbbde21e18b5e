package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, rooms RoomCatalog) error {
	var fields []domain.FieldError

	switch {
	case strings.TrimSpace(req.Room) == "":
		fields = append(fields, domain.FieldError{Field: "room", Kind: domain.KindFieldRequired})
	case !rooms.HasRoom(req.Room):
		fields = append(fields, domain.FieldError{
			Field:   "room",
			Kind:    domain.KindInvalidEnumValue,
			Message: fmt.Sprintf("unknown room %q", req.Room),
		})
	}

	if req.Date.IsZero() {
		fields = append(fields, domain.FieldError{Field: "date", Kind: domain.KindFieldRequired})
	}

	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше горизонта
func validateDate(day, today time.Time, horizonDays int) error {
	if day.Before(today) {
		return domain.NewValidationError(domain.FieldError{
			Field:   "date",
			Kind:    domain.KindOutOfRange,
			Message: "date is in the past",
		})
	}

	// Если horizonDays = 0, нет ограничений на дату
	if horizonDays == 0 {
		return nil
	}

	if day.After(today.AddDate(0, 0, horizonDays)) {
		return domain.NewValidationError(domain.FieldError{
			Field:   "date",
			Kind:    domain.KindOutOfRange,
			Message: fmt.Sprintf("slots are shown at most %d days ahead", horizonDays),
		})
	}

	return nil
}
