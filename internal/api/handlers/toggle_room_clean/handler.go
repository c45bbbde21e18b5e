package toggle_room_clean

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

// Handle PATCH /api/v1/bookings/{bookingId}/room-clean
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/room-clean - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/room-clean - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	resp, err := h.service.ToggleRoomClean(r.Context(), bookingID, actor)
	if err != nil {
		if handlers.IsDomainError(err) {
			h.logger.Warn("PATCH /bookings/{id}/room-clean - Rejected: booking_id=%d, actor=%d, error=%v", bookingID, actor.UserID, err)
			handlers.RespondDomainError(w, err)
			return
		}
		h.logger.Error("PATCH /bookings/{id}/room-clean - Failed to toggle: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
