package domain

import (
	"time"

	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// AvailabilityRule is one recurring weekly opening window for a visit resource (an agent or a property)
type AvailabilityRule struct {
	ID                   int64
	ResourceID           int64
	Weekday              Weekday
	WindowStart          types.TimeString
	WindowEnd            types.TimeString
	VisitDurationMinutes int
	SafetyMarginMinutes  int
	SlotIntervalMinutes  int
	Active               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// WindowMinutes returns the window bounds as minutes since midnight
func (r *AvailabilityRule) WindowMinutes() (start, end int, err error) {
	start, err = r.WindowStart.Minutes()
	if err != nil {
		return 0, 0, err
	}
	end, err = r.WindowEnd.Minutes()
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// FitsOneVisit reports whether at least one visit with both margins fits in the window
func (r *AvailabilityRule) FitsOneVisit() bool {
	start, end, err := r.WindowMinutes()
	if err != nil {
		return false
	}
	return r.VisitDurationMinutes+2*r.SafetyMarginMinutes <= end-start
}

// AppliesTo returns true if the rule is active on the weekday of date
func (r *AvailabilityRule) AppliesTo(date types.Date) bool {
	return r.Active && r.Weekday == WeekdayOf(date)
}
