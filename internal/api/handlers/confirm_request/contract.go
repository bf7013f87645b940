package confirm_request

import (
	"context"

	confirmRequest "github.com/m04kA/SMC-EstateBookingService/internal/usecase/confirm_request"
)

type ConfirmRequestUseCase interface {
	Execute(ctx context.Context, req *confirmRequest.Request) (*confirmRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
