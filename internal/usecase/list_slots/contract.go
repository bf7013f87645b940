package list_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	ListByResource(ctx context.Context, resourceID int64) ([]*domain.AvailabilityRule, error)
}

// AppointmentRepository интерфейс репозитория визитов
type AppointmentRepository interface {
	// ListActiveByDate получает визиты ресурса на дату в статусах pending и confirmed
	ListActiveByDate(ctx context.Context, resourceID int64, date types.Date) ([]*domain.Appointment, error)
}

// SlotGenerator интерфейс генератора слотов
type SlotGenerator interface {
	GenerateDay(date types.Date, rules []*domain.AvailabilityRule, occupied []interval.Interval, now time.Time) ([]domain.TimeSlot, error)
	Location() *time.Location
}

// Metrics интерфейс метрик генерации слотов
type Metrics interface {
	RecordSlots(available, unavailable int)
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
