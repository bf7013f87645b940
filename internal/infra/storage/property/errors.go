package property

import "errors"

var (
	// ErrConstraintsNotFound возвращается, когда для объекта не заданы условия проживания
	ErrConstraintsNotFound = errors.New("property.repository: stay constraints not found")

	// ErrPeriodNotFound возвращается, когда период не найден
	ErrPeriodNotFound = errors.New("property.repository: period not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("property.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("property.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("property.repository: failed to scan row")
)
