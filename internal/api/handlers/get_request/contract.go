package get_request

import (
	"context"

	"github.com/m04kA/SMC-EstateBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetStay(ctx context.Context, id int64) (*models.StayRequestResponse, error)
	GetVisit(ctx context.Context, id int64) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
