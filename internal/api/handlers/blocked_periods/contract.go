package blocked_periods

import (
	"context"

	"github.com/m04kA/SMC-EstateBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListPeriods(ctx context.Context, req *models.ListPeriodsRequest) (*models.PeriodListResponse, error)
	AddPeriod(ctx context.Context, req *models.PeriodRequest) (*models.PeriodResponse, error)
	DeletePeriod(ctx context.Context, propertyID, periodID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
