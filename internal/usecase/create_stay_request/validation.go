package create_stay_request

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PropertyID <= 0 {
		return fmt.Errorf("%w: propertyID must be positive", ErrInvalidInput)
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return fmt.Errorf("%w: checkIn and checkOut are required", ErrInvalidInput)
	}

	if req.CheckIn.DaysUntil(req.CheckOut) > domain.MaxStayNights {
		return fmt.Errorf("%w: stay cannot exceed %d nights", ErrInvalidInput, domain.MaxStayNights)
	}

	if req.NumGuests < 1 || req.NumGuests > domain.MaxGuestsLimit {
		return fmt.Errorf("%w: numGuests must be between 1 and %d", ErrInvalidInput, domain.MaxGuestsLimit)
	}

	name := strings.TrimSpace(req.GuestName)
	if name == "" {
		return fmt.Errorf("%w: guest name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: guest name is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if _, err := mail.ParseAddress(req.GuestEmail); err != nil {
		return fmt.Errorf("%w: invalid guest email: %v", ErrInvalidInput, err)
	}

	if req.Message != nil && utf8.RuneCountInString(*req.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message is longer than %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}

	return nil
}

// validateDate проверяет, что заезд не в прошлом и не дальше горизонта бронирования
func validateDate(checkIn types.Date, now time.Time, loc *time.Location, advanceBookingDays int) error {
	today := types.DateOf(now.In(loc))

	if checkIn.Before(today) {
		return fmt.Errorf("%w: check-in %s, today %s", ErrInvalidDate, checkIn, today)
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays <= 0 {
		return nil
	}

	if checkIn.After(today.AddDays(advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
