package domain

// Role роль сотрудника
type Role string

const (
	RoleConsultant    Role = "consultant"
	RoleManager       Role = "manager"
	RoleAdministrator Role = "administrator"
	RoleFacilities    Role = "facilities"
)

// IsValid returns true if the role is recognized
func (r Role) IsValid() bool {
	switch r {
	case RoleConsultant, RoleManager, RoleAdministrator, RoleFacilities:
		return true
	}
	return false
}

// Actor аутентифицированный сотрудник, выполняющий операцию
type Actor struct {
	UserID  int64
	Role    Role
	StoreID *int64 // nil - сотрудник не привязан к магазину
	Name    string
}

// HasStore returns true if the actor is assigned to a store
func (a Actor) HasStore() bool {
	return a.StoreID != nil
}

// InStore returns true if the actor is assigned to the given store
func (a Actor) InStore(storeID int64) bool {
	return a.StoreID != nil && *a.StoreID == storeID
}

// Staff сотрудник из справочника пользователей
type Staff struct {
	ID      int64
	Name    string
	Role    Role
	StoreID *int64
}

// InStore returns true if the staff member belongs to the given store
func (s Staff) InStore(storeID int64) bool {
	return s.StoreID != nil && *s.StoreID == storeID
}
