package validate_stay

import (
	"context"

	validateStay "github.com/m04kA/SMC-EstateBookingService/internal/usecase/validate_stay"
)

type ValidateStayUseCase interface {
	Execute(ctx context.Context, req *validateStay.Request) (*validateStay.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
