package create_visit_request

import (
	"context"
	"time"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
	"github.com/m04kA/SMC-EstateBookingService/pkg/locker"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// AppointmentRepository интерфейс репозитория визитов
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	// ListActiveByDate получает визиты ресурса на дату в статусах pending и confirmed.
	// Внутри транзакции строки блокируются (FOR UPDATE).
	ListActiveByDate(ctx context.Context, resourceID int64, date types.Date) ([]*domain.Appointment, error)
}

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	ListByResource(ctx context.Context, resourceID int64) ([]*domain.AvailabilityRule, error)
}

// SlotGenerator интерфейс генератора слотов
type SlotGenerator interface {
	Generate(date types.Date, rule *domain.AvailabilityRule, occupied []interval.Interval, now time.Time) ([]domain.TimeSlot, error)
	Location() *time.Location
}

// Locker блокировка по ключу ресурса
type Locker interface {
	Lock(ctx context.Context, key string) (locker.UnlockFunc, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
