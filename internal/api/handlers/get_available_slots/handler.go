package get_available_slots

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/rooms/{room}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	room := mux.Vars(r)["room"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /rooms/{room}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(room, dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /rooms/{room}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.IsDomainError(err) {
			h.logger.Warn("GET /rooms/{room}/slots - Rejected: room=%s, date=%s, error=%v", room, dateStr, err)
			handlers.RespondDomainError(w, err)
			return
		}
		h.logger.Error("GET /rooms/{room}/slots - Failed to get slots: room=%s, date=%s, error=%v", room, dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rooms/{room}/slots - Slots retrieved successfully: room=%s, date=%s, slots_count=%d",
		room, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
