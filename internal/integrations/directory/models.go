package directory

import "github.com/m04kA/SMC-RoomBookingService/internal/domain"

// User сотрудник из справочника CRM
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	StoreID  *int64 `json:"store_id"` // null - сотрудник без магазина
}

// ToStaff конвертирует в доменную модель
func (u *User) ToStaff() *domain.Staff {
	return &domain.Staff{
		ID:      u.ID,
		Name:    u.FullName,
		Role:    domain.Role(u.Role),
		StoreID: u.StoreID,
	}
}

// Customer клиент CRM (справочные данные бронирования)
type Customer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
