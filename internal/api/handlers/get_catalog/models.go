package get_catalog

import "github.com/m04kA/SMC-RoomBookingService/internal/catalog"

// CatalogResponse HTTP response model
type CatalogResponse struct {
	Rooms   []catalog.Entry `json:"rooms"`
	Reasons []catalog.Entry `json:"reasons"`
}
