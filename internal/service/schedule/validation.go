package schedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
)

func validateRule(r *domain.AvailabilityRule) error {
	if !r.Weekday.Valid() {
		return errors.New("weekday must be 1..7")
	}
	if err := r.WindowStart.Validate(); err != nil {
		return fmt.Errorf("windowStart: %v", err)
	}
	if err := r.WindowEnd.Validate(); err != nil {
		return fmt.Errorf("windowEnd: %v", err)
	}

	start, end, err := r.WindowMinutes()
	if err != nil {
		return err
	}
	if start >= end {
		return errors.New("windowStart must be before windowEnd")
	}

	if r.VisitDurationMinutes < domain.MinVisitDurationMinutes || r.VisitDurationMinutes > domain.MaxVisitDurationMinutes {
		return fmt.Errorf("visitDurationMinutes must be between %d and %d",
			domain.MinVisitDurationMinutes, domain.MaxVisitDurationMinutes)
	}
	if r.SafetyMarginMinutes < 0 || r.SafetyMarginMinutes > domain.MaxSafetyMarginMinutes {
		return fmt.Errorf("safetyMarginMinutes must be between 0 and %d", domain.MaxSafetyMarginMinutes)
	}
	if r.SlotIntervalMinutes < domain.MinSlotIntervalMinutes {
		return fmt.Errorf("slotIntervalMinutes must be at least %d", domain.MinSlotIntervalMinutes)
	}

	return nil
}

func validateConstraints(c *domain.StayConstraints) error {
	if c.MinStayNights < 1 || c.MinStayNights > domain.MaxStayNights {
		return fmt.Errorf("minStayNights must be between 1 and %d", domain.MaxStayNights)
	}
	if c.MaxGuests < 0 || c.MaxGuests > domain.MaxGuestsLimit {
		return fmt.Errorf("maxGuests must be between 0 and %d", domain.MaxGuestsLimit)
	}
	for _, w := range c.AllowedArrivalWeekdays {
		if !w.Valid() {
			return errors.New("allowedArrivalWeekdays: weekday must be 1..7")
		}
	}
	for _, w := range c.AllowedDepartureWeekdays {
		if !w.Valid() {
			return errors.New("allowedDepartureWeekdays: weekday must be 1..7")
		}
	}
	return nil
}

func validatePeriod(p *domain.BlockedPeriod) error {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return errors.New("startDate and endDate are required")
	}
	if p.EndDate.Before(p.StartDate) {
		return errors.New("endDate is before startDate")
	}
	if p.Reason != nil && len(*p.Reason) > domain.MaxMessageLength {
		return fmt.Errorf("reason exceeds %d characters", domain.MaxMessageLength)
	}
	return nil
}
