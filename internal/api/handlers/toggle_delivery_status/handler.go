package toggle_delivery_status

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
)

const (
	msgInvalidOrderID = "некорректный ID заказа"
	msgMissingActor   = "сотрудник не аутентифицирован"
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

// Handle PATCH /api/v1/orders/{orderId}/delivery
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.PathID(r, "orderId")
	if err != nil {
		h.logger.Warn("PATCH /orders/{id}/delivery - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /orders/{id}/delivery - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	resp, err := h.service.ToggleDeliveryStatus(r.Context(), orderID, actor)
	if err != nil {
		if handlers.IsDomainError(err) {
			h.logger.Warn("PATCH /orders/{id}/delivery - Rejected: order_id=%d, actor=%d, error=%v", orderID, actor.UserID, err)
			handlers.RespondDomainError(w, err)
			return
		}
		h.logger.Error("PATCH /orders/{id}/delivery - Failed to toggle: order_id=%d, error=%v", orderID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /orders/{id}/delivery - order_id=%d delivery_status=%s", orderID, resp.DeliveryStatus)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
