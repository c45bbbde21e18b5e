package get_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

type Handler struct {
	source CatalogSource
}

func NewHandler(source CatalogSource) *Handler {
	return &Handler{source: source}
}

// Handle GET /api/v1/catalog
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, &CatalogResponse{
		Rooms:   h.source.Rooms(),
		Reasons: h.source.Reasons(),
	})
}
