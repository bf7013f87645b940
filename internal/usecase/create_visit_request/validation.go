package create_visit_request

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
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.PropertyID != nil && *req.PropertyID <= 0 {
		return fmt.Errorf("%w: propertyID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	name := strings.TrimSpace(req.VisitorName)
	if name == "" {
		return fmt.Errorf("%w: visitor name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: visitor name is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if _, err := mail.ParseAddress(req.VisitorEmail); err != nil {
		return fmt.Errorf("%w: invalid visitor email: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата визита не в прошлом и не дальше горизонта записи
func validateDate(date types.Date, now time.Time, loc *time.Location, advanceBookingDays int) error {
	today := types.DateOf(now.In(loc))

	if date.Before(today) {
		return fmt.Errorf("%w: date %s, today %s", ErrInvalidDate, date, today)
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays <= 0 {
		return nil
	}

	if date.After(today.AddDays(advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
