package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingActor        = "сотрудник не аутентифицирован"
	msgResponsibleNotFound = "ответственный сотрудник не найден"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrResponsibleNotFound):
			h.logger.Warn("POST /bookings - Responsible not found: responsible_id=%d", req.ResponsibleID)
			handlers.RespondBadRequest(w, msgResponsibleNotFound)

		case handlers.IsDomainError(err):
			h.logger.Warn("POST /bookings - Rejected: actor=%d, room=%s, error=%v", actor.UserID, req.Room, err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: actor=%d, room=%s, error=%v",
				actor.UserID, req.Room, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, actor=%d",
		result.Booking.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(result.Booking, result.Order))
}
