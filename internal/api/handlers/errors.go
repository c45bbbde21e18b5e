package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

const (
	msgValidation        = "некорректные данные бронирования"
	msgMalformedOrder    = "некорректный заказ кофе-брейка"
	msgForbidden         = "недостаточно прав для операции"
	msgBookingNotFound   = "бронирование не найдено"
	msgOrderNotFound     = "заказ не найден"
	msgRoomBusy          = "переговорная уже занята в выбранное время"
	msgInvalidTransition = "недопустимая смена статуса"
)

// FieldErrorDTO ошибка поля
type FieldErrorDTO struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`
}

// ConflictDTO пересекающееся бронирование
type ConflictDTO struct {
	ID    int64     `json:"id"`
	Room  string    `json:"room"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TransitionDTO отклонённый переход
type TransitionDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// IsDomainError сообщает, что ошибка относится к доменной таксономии
// и должна быть показана пользователю, а не скрыта за 500
func IsDomainError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrMalformedOrderPayload) ||
		errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrBookingNotFound) ||
		errors.Is(err, domain.ErrOrderNotFound) ||
		errors.Is(err, domain.ErrConflictDetected) ||
		errors.Is(err, domain.ErrInvalidTransition)
}

// RespondDomainError переводит доменную ошибку в HTTP-ответ.
// Для остальных ошибок отвечает 500
func RespondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			RespondErrorDetails(w, http.StatusBadRequest, msgValidation, fieldErrors(ve))
			return
		}
		RespondBadRequest(w, msgValidation)

	case errors.Is(err, domain.ErrMalformedOrderPayload):
		RespondErrorDetails(w, http.StatusBadRequest, msgMalformedOrder, err.Error())

	case errors.Is(err, domain.ErrUnauthorized):
		var ue *domain.UnauthorizedError
		if errors.As(err, &ue) {
			RespondErrorDetails(w, http.StatusForbidden, msgForbidden, ue.Reason)
			return
		}
		RespondForbidden(w, msgForbidden)

	case errors.Is(err, domain.ErrBookingNotFound):
		RespondNotFound(w, msgBookingNotFound)

	case errors.Is(err, domain.ErrOrderNotFound):
		RespondNotFound(w, msgOrderNotFound)

	case errors.Is(err, domain.ErrConflictDetected):
		conflicts := []ConflictDTO{}
		var ce *domain.ConflictError
		if errors.As(err, &ce) {
			for _, b := range ce.Conflicts {
				conflicts = append(conflicts, ConflictDTO{ID: b.ID, Room: b.Room, Start: b.Start, End: b.End})
			}
		}
		RespondErrorDetails(w, http.StatusConflict, msgRoomBusy, conflicts)

	case errors.Is(err, domain.ErrInvalidTransition):
		var te *domain.TransitionError
		if errors.As(err, &te) {
			RespondErrorDetails(w, http.StatusConflict, msgInvalidTransition, TransitionDTO{From: string(te.From), To: string(te.To)})
			return
		}
		RespondConflict(w, msgInvalidTransition)

	default:
		RespondInternalError(w)
	}
}

func fieldErrors(ve *domain.ValidationError) []FieldErrorDTO {
	out := make([]FieldErrorDTO, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		out = append(out, FieldErrorDTO{Field: f.Field, Kind: string(f.Kind), Message: f.Message})
	}
	return out
}
