package directory

import "errors"

var (
	// ErrUserNotFound возвращается, когда сотрудника нет в справочнике
	ErrUserNotFound = errors.New("directory client: user not found")

	// ErrCustomerNotFound возвращается, когда клиента нет в справочнике
	ErrCustomerNotFound = errors.New("directory client: customer not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("directory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("directory client: invalid response")
)
