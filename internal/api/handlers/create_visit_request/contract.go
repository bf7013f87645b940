package create_visit_request

import (
	"context"

	createVisitRequest "github.com/m04kA/SMC-EstateBookingService/internal/usecase/create_visit_request"
)

type CreateVisitRequestUseCase interface {
	Execute(ctx context.Context, req *createVisitRequest.Request) (*createVisitRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
