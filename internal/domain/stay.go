package domain

import (
	"time"

	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// BlockedPeriod is a date range of a property.
// Blocked=true marks an unavailability window, Blocked=false an availability window of the allow-list model.
// EndDate is inclusive: the night of EndDate belongs to the period.
type BlockedPeriod struct {
	ID         int64
	PropertyID int64
	StartDate  types.Date
	EndDate    types.Date
	Blocked    bool
	Reason     *string
	CreatedAt  time.Time
}

// StayConstraints is the property-level booking policy for seasonal stays
type StayConstraints struct {
	PropertyID               int64
	MinStayNights            int
	AllowedArrivalWeekdays   []Weekday
	AllowedDepartureWeekdays []Weekday
	MaxGuests                int // 0 = unlimited
	UseAllowList             bool
	UpdatedAt                time.Time
}

// HasGuestLimit returns true if the property limits the number of guests
func (c *StayConstraints) HasGuestLimit() bool {
	return c.MaxGuests > 0
}

// DefaultStayConstraints is used for properties without a stored policy
func DefaultStayConstraints(propertyID int64) *StayConstraints {
	return &StayConstraints{
		PropertyID:    propertyID,
		MinStayNights: DefaultMinStayNights,
	}
}
