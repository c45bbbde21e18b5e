package availability

import "errors"

var (
	// ErrUnknownPeriod возвращается для периода вне day|week|month
	ErrUnknownPeriod = errors.New("availability: unknown period")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
