package cancel_request

import (
	"context"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	Cancel(ctx context.Context, kind domain.ReservationKind, id int64, req *models.CancelRequest) (*models.StatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
