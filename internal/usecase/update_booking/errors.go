package update_booking

import "errors"

var (
	// ErrResponsibleNotFound возвращается, когда нового ответственного нет в справочнике
	ErrResponsibleNotFound = errors.New("update_booking: responsible not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
