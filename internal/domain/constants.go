package domain

// Ограничения бизнес-валидации
const (
	MaxGuestCount       = 500
	MaxOrderItems       = 100
	MaxOrderItemNameLen = 120
)

// DateFormat формат календарной даты (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// DefaultTimeZone часовой пояс магазинов по умолчанию
const DefaultTimeZone = "America/Manaus"

// ActiveStatuses статусы, занимающие переговорную.
// Только они участвуют в проверке пересечений
var ActiveStatuses = []BookingStatus{
	StatusScheduled,
	StatusCompleted,
}

// InactiveStatuses статусы, освобождающие слот
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}
