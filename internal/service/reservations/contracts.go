package reservations

import (
	"context"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
)

// StayRequestRepository интерфейс репозитория заявок на проживание
type StayRequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.StayRequest, error)
	List(ctx context.Context, filter domain.StayRequestFilter) ([]*domain.StayRequest, error)
	SetStatus(ctx context.Context, id int64, from, to domain.ReservationStatus, reason *string) error
}

// AppointmentRepository интерфейс репозитория визитов
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	SetStatus(ctx context.Context, id int64, from, to domain.ReservationStatus, reason *string) error
}

// Notifier сообщает внешней системе о смене статуса
type Notifier interface {
	NotifyStatusChange(ctx context.Context, change domain.StatusChange) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
