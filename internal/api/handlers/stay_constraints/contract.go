package stay_constraints

import (
	"context"

	"github.com/m04kA/SMC-EstateBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetConstraints(ctx context.Context, propertyID int64) (*models.ConstraintsResponse, error)
	PutConstraints(ctx context.Context, req *models.ConstraintsRequest) (*models.ConstraintsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
