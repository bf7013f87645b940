package create_visit_request

import "errors"

var (
	// ErrInvalidDate возвращается, когда дата визита в прошлом
	ErrInvalidDate = errors.New("create_visit_request: visit date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата визита дальше горизонта записи
	ErrDateTooFarInFuture = errors.New("create_visit_request: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_visit_request: invalid input data")

	// ErrLock возвращается, если не удалось заблокировать ресурс
	ErrLock = errors.New("create_visit_request: failed to lock resource")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_visit_request: internal error")
)
