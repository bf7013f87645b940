package guard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
	"github.com/m04kA/SMC-EstateBookingService/pkg/locker"
)

// Store хранилище заявок одного вида (проживания или визиты)
type Store interface {
	// ConfirmedIntervals возвращает занятые интервалы подтвержденных заявок ресурса,
	// пересекающиеся с window, кроме заявки excludeID. Внутри транзакции строки блокируются.
	ConfirmedIntervals(ctx context.Context, resourceID int64, window interval.Interval, excludeID int64) ([]interval.Interval, error)
	// SetStatus переводит заявку из статуса from в to.
	// Если заявка уже не в статусе from, возвращается domain.ErrInvalidTransition.
	SetStatus(ctx context.Context, id int64, from, to domain.ReservationStatus, reason *string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker блокировка по ключу ресурса
type Locker interface {
	Lock(ctx context.Context, key string) (locker.UnlockFunc, error)
}

// Metrics метрики подтверждений
type Metrics interface {
	RecordConfirmation(kind, outcome string)
	RecordLockWait(kind string, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
