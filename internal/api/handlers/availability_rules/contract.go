package availability_rules

import (
	"context"

	"github.com/m04kA/SMC-EstateBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetRules(ctx context.Context, resourceID int64) (*models.RuleListResponse, error)
	ReplaceRules(ctx context.Context, req *models.ReplaceRulesRequest) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
