package list_requests

import (
	"context"

	"github.com/m04kA/SMC-EstateBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	ListStays(ctx context.Context, req *models.ListStaysRequest) (*models.StayRequestListResponse, error)
	ListVisits(ctx context.Context, req *models.ListVisitsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
