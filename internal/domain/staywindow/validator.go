// Package staywindow decides whether a check-in/check-out pair is a legal seasonal stay.
package staywindow

import (
	"fmt"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// Request is the stay being checked
type Request struct {
	CheckIn   types.Date
	CheckOut  types.Date
	NumGuests int
}

// Validate checks the stay against the property's constraints and periods.
// Rules are applied in a fixed order and the first failure is returned:
// range, capacity, allow-list, blocked periods, arrival day, departure day, minimum stay.
// A nil constraints pointer means the property has no stored policy.
func Validate(req Request, constraints *domain.StayConstraints, periods []*domain.BlockedPeriod) error {
	if constraints == nil {
		constraints = domain.DefaultStayConstraints(0)
	}

	// 1. Диапазон дат
	if !req.CheckOut.After(req.CheckIn) {
		return fmt.Errorf("%w: check-in %s, check-out %s", domain.ErrInvalidRange, req.CheckIn, req.CheckOut)
	}
	stay, err := interval.FromDates(req.CheckIn, req.CheckOut)
	if err != nil {
		return err
	}

	// 2. Вместимость
	if constraints.HasGuestLimit() && req.NumGuests > constraints.MaxGuests {
		return fmt.Errorf("%w: %d guests, at most %d", domain.ErrCapacityExceeded, req.NumGuests, constraints.MaxGuests)
	}

	// 3. Модель allow-list: проживание целиком внутри одного открытого периода
	if constraints.UseAllowList {
		inside, err := insideAvailablePeriod(stay, periods)
		if err != nil {
			return err
		}
		if !inside {
			return fmt.Errorf("%w: %s - %s", domain.ErrOutsideAvailability, req.CheckIn, req.CheckOut)
		}
	}

	// 4. Закрытые периоды
	blocking, err := findBlockingPeriod(stay, periods)
	if err != nil {
		return err
	}
	if blocking != nil {
		return fmt.Errorf("%w: %s - %s%s", domain.ErrPeriodBlocked, blocking.StartDate, blocking.EndDate, reasonSuffix(blocking.Reason))
	}

	// 5. День заезда
	arrival := domain.WeekdayOf(req.CheckIn)
	if len(constraints.AllowedArrivalWeekdays) > 0 && !domain.ContainsWeekday(constraints.AllowedArrivalWeekdays, arrival) {
		return fmt.Errorf("%w: %s", domain.ErrArrivalDayNotAllowed, arrival)
	}

	// 6. День выезда
	departure := domain.WeekdayOf(req.CheckOut)
	if len(constraints.AllowedDepartureWeekdays) > 0 && !domain.ContainsWeekday(constraints.AllowedDepartureWeekdays, departure) {
		return fmt.Errorf("%w: %s", domain.ErrDepartureDayNotAllowed, departure)
	}

	// 7. Минимальная длительность
	nights, err := interval.Nights(stay)
	if err != nil {
		return err
	}
	if nights < constraints.MinStayNights {
		return fmt.Errorf("%w: %d nights, at least %d", domain.ErrStayTooShort, nights, constraints.MinStayNights)
	}

	return nil
}

func insideAvailablePeriod(stay interval.Interval, periods []*domain.BlockedPeriod) (bool, error) {
	for _, p := range periods {
		if p == nil || p.Blocked {
			continue
		}
		open, err := interval.FromInclusiveDates(p.StartDate, p.EndDate)
		if err != nil {
			return false, fmt.Errorf("period id=%d: %w", p.ID, err)
		}
		inside, err := interval.Contains(open, stay)
		if err != nil {
			return false, err
		}
		if inside {
			return true, nil
		}
	}
	return false, nil
}

func findBlockingPeriod(stay interval.Interval, periods []*domain.BlockedPeriod) (*domain.BlockedPeriod, error) {
	for _, p := range periods {
		if p == nil || !p.Blocked {
			continue
		}
		closed, err := interval.FromInclusiveDates(p.StartDate, p.EndDate)
		if err != nil {
			return nil, fmt.Errorf("period id=%d: %w", p.ID, err)
		}
		overlap, err := interval.Overlaps(closed, stay)
		if err != nil {
			return nil, err
		}
		if overlap {
			return p, nil
		}
	}
	return nil, nil
}

func reasonSuffix(reason *string) string {
	if reason == nil || *reason == "" {
		return ""
	}
	return " (" + *reason + ")"
}
