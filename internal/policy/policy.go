// Package policy централизует правила доступа к бронированиям.
// Все функции чистые: решение зависит только от сотрудника и бронирования.
package policy

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Decision результат проверки прав
type Decision struct {
	Allowed bool
	Reason  string
}

// Err возвращает *domain.UnauthorizedError для запрета и nil для разрешения
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &domain.UnauthorizedError{Reason: d.Reason}
}

func allow(reason string) Decision { return Decision{Allowed: true, Reason: reason} }
func deny(reason string) Decision  { return Decision{Allowed: false, Reason: reason} }

// CanManage проверяет право изменять, отменять или удалять бронирование.
// Правила проверяются по порядку, срабатывает первое подходящее
func CanManage(actor domain.Actor, b *domain.Booking) Decision {
	switch actor.Role {
	case domain.RoleFacilities:
		return allow("facilities operations")

	case domain.RoleConsultant:
		if b.ResponsibleID == actor.UserID {
			return allow("consultant owns the booking")
		}
		return deny("consultant may manage only own bookings")

	case domain.RoleManager:
		// менеджер без магазина ограничен своими бронированиями
		if !actor.HasStore() {
			if b.ResponsibleID == actor.UserID {
				return allow("manager without store owns the booking")
			}
			return deny("manager without store may manage only own bookings")
		}
		if actor.InStore(b.StoreID) {
			return allow("booking belongs to manager's store")
		}
		return deny("booking belongs to another store")

	case domain.RoleAdministrator:
		return allow("administrator")

	default:
		return deny("role is not allowed to manage bookings")
	}
}

// CanCreate проверяет право создать бронирование b с ответственным responsible.
// responsible нужен только менеджеру, создающему бронирование за другого сотрудника
func CanCreate(actor domain.Actor, b *domain.Booking, responsible *domain.Staff) Decision {
	switch actor.Role {
	case domain.RoleFacilities:
		return allow("facilities operations")

	case domain.RoleConsultant:
		if b.ResponsibleID != actor.UserID {
			return deny("consultant may book only for themselves")
		}
		if actor.HasStore() && !actor.InStore(b.StoreID) {
			return deny("consultant may book only in own store")
		}
		return allow("consultant books for themselves")

	case domain.RoleManager:
		return managerAssigns(actor, b.StoreID, b.ResponsibleID, responsible)

	case domain.RoleAdministrator:
		return allow("administrator")

	default:
		return deny("role is not allowed to create bookings")
	}
}

// CanReassign проверяет право сменить ответственного на responsibleID.
// Переназначать могут только менеджер и администратор
func CanReassign(actor domain.Actor, b *domain.Booking, responsibleID int64, responsible *domain.Staff) Decision {
	switch actor.Role {
	case domain.RoleManager:
		return managerAssigns(actor, b.StoreID, responsibleID, responsible)
	case domain.RoleAdministrator:
		return allow("administrator")
	default:
		return deny("only managers and administrators may reassign the responsible")
	}
}

// RequiresStaffLookup сообщает, нужен ли справочник сотрудников для решения
func RequiresStaffLookup(actor domain.Actor, responsibleID int64) bool {
	return actor.Role == domain.RoleManager && actor.HasStore() && responsibleID != actor.UserID
}

func managerAssigns(actor domain.Actor, storeID, responsibleID int64, responsible *domain.Staff) Decision {
	if !actor.HasStore() {
		if responsibleID == actor.UserID {
			return allow("manager without store books for themselves")
		}
		return deny("manager without store may book only for themselves")
	}
	if !actor.InStore(storeID) {
		return deny("booking belongs to another store")
	}
	if responsibleID == actor.UserID {
		return allow("manager books for themselves")
	}
	if responsible == nil || responsible.ID != responsibleID {
		return deny("responsible is unknown")
	}
	if responsible.Role != domain.RoleConsultant {
		return deny("manager may book only for consultants")
	}
	if !responsible.InStore(storeID) {
		return deny("responsible belongs to another store")
	}
	return allow("manager books for a consultant of the store")
}
