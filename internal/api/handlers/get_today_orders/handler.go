package get_today_orders

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
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

// Handle GET /api/v1/orders/today
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.TodayOrders(r.Context())
	if err != nil {
		h.logger.Error("GET /orders/today - Failed to get today orders: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /orders/today - date=%s orders=%d", resp.Date, len(resp.Orders))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
