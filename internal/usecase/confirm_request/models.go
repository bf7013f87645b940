package confirm_request

import "github.com/m04kA/SMC-EstateBookingService/internal/domain"

// Request модель запроса на подтверждение заявки
type Request struct {
	Kind domain.ReservationKind // stay или visit
	ID   int64
}

// Response итог подтверждения: confirmed или refused с кодом причины
type Response struct {
	Kind   domain.ReservationKind
	ID     int64
	Status domain.ReservationStatus
	Reason *string
}
