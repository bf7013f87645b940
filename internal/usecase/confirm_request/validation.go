package confirm_request

import (
	"fmt"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Kind != domain.KindStay && req.Kind != domain.KindVisit {
		return fmt.Errorf("%w: unknown request kind %q", ErrInvalidInput, req.Kind)
	}

	if req.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	return nil
}

// checkPending проверяет, что заявку можно подтвердить
func checkPending(kind domain.ReservationKind, id int64, status domain.ReservationStatus) error {
	if err := domain.Transition(status, domain.StatusConfirmed); err != nil {
		return fmt.Errorf("%w: %s request id=%d", err, kind, id)
	}
	return nil
}
