package slots

import (
	"time"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
)

// OccupiedBy returns [start - margin, start + duration + margin) of an appointment in loc
func OccupiedBy(a *domain.Appointment, loc *time.Location) (interval.Interval, error) {
	start, err := a.Date.At(a.StartTime, loc)
	if err != nil {
		return interval.Interval{}, err
	}
	return interval.Occupied(start,
		time.Duration(a.DurationMinutes)*time.Minute,
		time.Duration(a.SafetyMarginMinutes)*time.Minute,
	)
}

// OccupiedByAll converts active appointments to occupied intervals, skipping refused and cancelled ones
func OccupiedByAll(appointments []*domain.Appointment, loc *time.Location) ([]interval.Interval, error) {
	result := make([]interval.Interval, 0, len(appointments))
	for _, a := range appointments {
		if a == nil || !a.IsActive() {
			continue
		}
		iv, err := OccupiedBy(a, loc)
		if err != nil {
			return nil, err
		}
		result = append(result, iv)
	}
	return result, nil
}
