package confirm_request

import (
	"context"
	"time"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/guard"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// StayRequestRepository интерфейс репозитория заявок на проживание
type StayRequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.StayRequest, error)
}

// AppointmentRepository интерфейс репозитория визитов
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

// PropertyRepository интерфейс репозитория условий проживания
type PropertyRepository interface {
	GetConstraints(ctx context.Context, propertyID int64) (*domain.StayConstraints, error)
	ListPeriods(ctx context.Context, propertyID int64, from, to *types.Date) ([]*domain.BlockedPeriod, error)
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

// ConflictGuard подтверждает заявки одного вида
type ConflictGuard interface {
	TryConfirm(ctx context.Context, c guard.Candidate, revalidate guard.RevalidateFunc) (*guard.Decision, error)
}

// Notifier сообщает внешней системе о смене статуса
type Notifier interface {
	NotifyStatusChange(ctx context.Context, change domain.StatusChange) error
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
