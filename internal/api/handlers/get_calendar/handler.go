package get_calendar

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/availability"
)

const (
	msgInvalidPeriod   = "некорректный период, ожидается day, week или month"
	msgInvalidDate     = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidInactive = "некорректный параметр includeInactive"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
	now     func() time.Time
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// Handle GET /api/v1/calendar?period=day|week|month&date=YYYY-MM-DD
// Без date используется сегодняшняя дата в часовом поясе магазинов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	period, err := availability.ParsePeriod(query.Get("period"))
	if err != nil {
		h.logger.Warn("GET /calendar - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	ref := h.now()
	if raw := query.Get("date"); raw != "" {
		ref, err = time.ParseInLocation(domain.DateFormat, raw, h.service.Location())
		if err != nil {
			h.logger.Warn("GET /calendar - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	includeInactive, err := handlers.QueryBool(r, "includeInactive")
	if err != nil {
		h.logger.Warn("GET /calendar - Invalid includeInactive: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInactive)
		return
	}

	bookings, start, end, err := h.service.QueryPeriod(r.Context(), period, ref, includeInactive)
	if err != nil {
		h.logger.Error("GET /calendar - Failed to query period=%s: %v", period, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &CalendarResponse{
		Period:   string(period),
		Start:    start,
		End:      end,
		Bookings: h.service.Summarize(r.Context(), bookings),
	})
}
