package schedule

import (
	"context"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// RuleRepository интерфейс репозитория правил доступности визитов
type RuleRepository interface {
	ListByResource(ctx context.Context, resourceID int64) ([]*domain.AvailabilityRule, error)
	ReplaceForResource(ctx context.Context, resourceID int64, rules []*domain.AvailabilityRule) ([]*domain.AvailabilityRule, error)
}

// PropertyRepository интерфейс репозитория условий проживания и периодов
type PropertyRepository interface {
	GetConstraints(ctx context.Context, propertyID int64) (*domain.StayConstraints, error)
	UpsertConstraints(ctx context.Context, c *domain.StayConstraints) (*domain.StayConstraints, error)
	ListPeriods(ctx context.Context, propertyID int64, from, to *types.Date) ([]*domain.BlockedPeriod, error)
	CreatePeriod(ctx context.Context, p *domain.BlockedPeriod) (*domain.BlockedPeriod, error)
	DeletePeriod(ctx context.Context, propertyID, periodID int64) error
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
