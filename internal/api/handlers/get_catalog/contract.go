package get_catalog

import "github.com/m04kA/SMC-RoomBookingService/internal/catalog"

type CatalogSource interface {
	Rooms() []catalog.Entry
	Reasons() []catalog.Entry
}
