package create_stay_request

import (
	"context"

	createStayRequest "github.com/m04kA/SMC-EstateBookingService/internal/usecase/create_stay_request"
)

type CreateStayRequestUseCase interface {
	Execute(ctx context.Context, req *createStayRequest.Request) (*createStayRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
