package health

import "context"

// Checker проверка одной зависимости (БД, Redis)
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}
