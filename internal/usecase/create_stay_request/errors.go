package create_stay_request

import "errors"

var (
	// ErrInvalidDate возвращается, когда заезд в прошлом
	ErrInvalidDate = errors.New("create_stay_request: check-in is in the past")

	// ErrDateTooFarInFuture возвращается, когда заезд дальше горизонта бронирования
	ErrDateTooFarInFuture = errors.New("create_stay_request: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_stay_request: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_stay_request: internal error")
)
