package refreshment

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("refreshment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("refreshment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("refreshment.repository: failed to scan row")

	// ErrEncodeItems возвращается, если не удалось сериализовать позиции заказа
	ErrEncodeItems = errors.New("refreshment.repository: failed to encode items")
)
