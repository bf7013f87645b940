package create_stay_request

import (
	"context"
	"time"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// StayRequestRepository интерфейс репозитория заявок на проживание
type StayRequestRepository interface {
	Create(ctx context.Context, req *domain.StayRequest) (*domain.StayRequest, error)
}

// PropertyRepository интерфейс репозитория условий проживания
type PropertyRepository interface {
	GetConstraints(ctx context.Context, propertyID int64) (*domain.StayConstraints, error)
	ListPeriods(ctx context.Context, propertyID int64, from, to *types.Date) ([]*domain.BlockedPeriod, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик валидации
type Metrics interface {
	RecordValidationFailure(reason string)
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
