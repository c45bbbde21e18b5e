package create_booking

import "errors"

var (
	// ErrResponsibleNotFound возвращается, когда ответственного нет в справочнике
	ErrResponsibleNotFound = errors.New("create_booking: responsible not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
