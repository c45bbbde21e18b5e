package delete_booking

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingActor     = "сотрудник не аутентифицирован"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bookings/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	if err := h.service.Delete(r.Context(), bookingID, actor); err != nil {
		if handlers.IsDomainError(err) {
			h.logger.Warn("DELETE /bookings/{id} - Rejected: booking_id=%d, actor=%d, error=%v", bookingID, actor.UserID, err)
			handlers.RespondDomainError(w, err)
			return
		}
		h.logger.Error("DELETE /bookings/{id} - Failed to delete booking: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking deleted: booking_id=%d, actor=%d", bookingID, actor.UserID)
	w.WriteHeader(http.StatusNoContent)
}
