package validate_stay

import (
	"fmt"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PropertyID <= 0 {
		return fmt.Errorf("%w: propertyID must be positive", ErrInvalidInput)
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return fmt.Errorf("%w: checkIn and checkOut are required", ErrInvalidInput)
	}

	if req.NumGuests < 1 || req.NumGuests > domain.MaxGuestsLimit {
		return fmt.Errorf("%w: guests must be between 1 and %d", ErrInvalidInput, domain.MaxGuestsLimit)
	}

	return nil
}
