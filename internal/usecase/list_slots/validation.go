package list_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateHorizon проверяет, что дата не дальше advanceBookingDays от сегодняшнего дня.
// Прошедшие даты допустимы: все их слоты недоступны.
func validateHorizon(date types.Date, now time.Time, loc *time.Location, advanceBookingDays int) error {
	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays <= 0 {
		return nil
	}

	maxDate := types.DateOf(now.In(loc)).AddDays(advanceBookingDays)
	if date.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
