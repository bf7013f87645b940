package guard

import "errors"

var (
	// ErrLock возвращается, если не удалось получить блокировку ресурса
	ErrLock = errors.New("guard: failed to lock resource")

	// ErrInvalidCandidate возвращается при некорректном интервале заявки
	ErrInvalidCandidate = errors.New("guard: invalid candidate")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("guard: internal error")
)
