package stayrequest

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка на проживание не найдена
	ErrRequestNotFound = errors.New("stayrequest.repository: stay request not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("stayrequest.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("stayrequest.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("stayrequest.repository: failed to scan row")
)
