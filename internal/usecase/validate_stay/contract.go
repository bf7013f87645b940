package validate_stay

import (
	"context"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// PropertyRepository интерфейс репозитория условий проживания
type PropertyRepository interface {
	GetConstraints(ctx context.Context, propertyID int64) (*domain.StayConstraints, error)
	ListPeriods(ctx context.Context, propertyID int64, from, to *types.Date) ([]*domain.BlockedPeriod, error)
}

// Metrics интерфейс метрик валидации
type Metrics interface {
	RecordValidationFailure(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
