package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается, когда получатель ответил не 2xx
	ErrInvalidResponse = errors.New("notifier client: invalid response")
)
