package booking

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrLockRoom возвращается, если не удалось взять блокировку переговорной
	ErrLockRoom = errors.New("booking.repository: failed to lock room")
)

// SQLSTATE exclusion_violation: сработал constraint bookings_no_overlap
const codeExclusionViolation = "23P01"
