package query_availability

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/availability/models"
)

const (
	msgInvalidWindow   = "некорректное окно, ожидаются start и end в формате RFC 3339"
	msgInvalidInactive = "некорректный параметр includeInactive"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?room=&start=&end=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	start, err := handlers.QueryTime(r, "start")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}
	end, err := handlers.QueryTime(r, "end")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid end: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}
	includeInactive, err := handlers.QueryBool(r, "includeInactive")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid includeInactive: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInactive)
		return
	}

	req := &models.QueryRequest{
		Start:           start,
		End:             end,
		IncludeInactive: includeInactive,
	}
	if room := r.URL.Query().Get("room"); room != "" {
		req.Room = &room
	}

	resp, err := h.service.QueryAvailability(r.Context(), req)
	if err != nil {
		if handlers.IsDomainError(err) {
			h.logger.Warn("GET /availability - Rejected: %v", err)
			handlers.RespondDomainError(w, err)
			return
		}
		h.logger.Error("GET /availability - Failed to query availability: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability - Found %d bookings", len(resp.Bookings))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
