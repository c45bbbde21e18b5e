package change_status

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

// ChangeStatusRequest HTTP request model
type ChangeStatusRequest struct {
	Status string `json:"status"` // completed | cancelled | no_show
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ChangeStatusRequest) ToServiceRequest(actor domain.Actor) *models.ChangeStatusRequest {
	return &models.ChangeStatusRequest{
		Actor:  actor,
		Status: r.Status,
	}
}
