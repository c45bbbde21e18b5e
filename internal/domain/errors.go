package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation некорректные или отсутствующие входные данные
	ErrValidation = errors.New("validation failed")

	// ErrConflictDetected переговорная уже занята в запрошенный интервал
	ErrConflictDetected = errors.New("room is already booked for the requested interval")

	// ErrInvalidTransition недопустимая смена статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnauthorized у сотрудника нет прав на операцию
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMalformedOrderPayload не удалось разобрать заказ для кофе-брейка
	ErrMalformedOrderPayload = errors.New("malformed refreshment order payload")

	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrOrderNotFound заказ не найден
	ErrOrderNotFound = errors.New("refreshment order not found")
)

// ValidationKind вид ошибки валидации поля
type ValidationKind string

const (
	KindFieldRequired    ValidationKind = "field_required"
	KindInvalidInterval  ValidationKind = "invalid_interval"
	KindInvalidEnumValue ValidationKind = "invalid_enum_value"
	KindOutOfRange       ValidationKind = "out_of_range"
)

// FieldError ошибка конкретного поля
type FieldError struct {
	Field   string
	Kind    ValidationKind
	Message string
}

// ValidationError набор ошибок полей
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError создает ошибку валидации из списка ошибок полей
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Kind))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Has сообщает, есть ли ошибка указанного вида для поля (пустое поле - любое)
func (e *ValidationError) Has(field string, kind ValidationKind) bool {
	for _, f := range e.Fields {
		if f.Kind == kind && (field == "" || f.Field == field) {
			return true
		}
	}
	return false
}

// ConflictError перечисляет все пересекающиеся бронирования.
// Пустой список означает, что конфликт обнаружен на уровне БД (конкурентная запись)
type ConflictError struct {
	Conflicts []*Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %d overlapping booking(s)", ErrConflictDetected, len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflictDetected
}

// TransitionError недопустимый переход между статусами
type TransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// UnauthorizedError отказ шлюза авторизации с причиной
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnauthorized, e.Reason)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}
