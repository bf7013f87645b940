package domain

import "errors"

// Malformed input. Always a caller bug.
var (
	ErrInvalidInterval = errors.New("interval end is before its start")
	ErrInvalidRange    = errors.New("check-out must be after check-in")
)

// Business rule violations, surfaced to the end user.
var (
	ErrCapacityExceeded       = errors.New("number of guests exceeds the property capacity")
	ErrOutsideAvailability    = errors.New("stay is outside the availability periods")
	ErrPeriodBlocked          = errors.New("stay overlaps a blocked period")
	ErrArrivalDayNotAllowed   = errors.New("arrival is not allowed on this weekday")
	ErrDepartureDayNotAllowed = errors.New("departure is not allowed on this weekday")
	ErrStayTooShort           = errors.New("stay is shorter than the minimum number of nights")
	ErrSlotUnavailable        = errors.New("visit slot is not available")
)

var (
	// ErrOverlapAtConfirmation is the refusal reason when another confirmed reservation took the interval
	ErrOverlapAtConfirmation = errors.New("interval was taken by another confirmed reservation")

	// ErrInvalidTransition is returned for a status change the lifecycle does not allow
	ErrInvalidTransition = errors.New("invalid reservation status transition")
)

// Stable reason codes exposed to clients and stored as refusal reasons
const (
	ReasonInvalidRange           = "invalid_range"
	ReasonCapacityExceeded       = "capacity_exceeded"
	ReasonOutsideAvailability    = "outside_availability"
	ReasonPeriodBlocked          = "period_blocked"
	ReasonArrivalDayNotAllowed   = "arrival_day_not_allowed"
	ReasonDepartureDayNotAllowed = "departure_day_not_allowed"
	ReasonStayTooShort           = "stay_too_short"
	ReasonSlotUnavailable        = "slot_unavailable"
	ReasonOverlapAtConfirmation  = "overlap_at_confirmation"
)

var ruleReasons = []struct {
	err    error
	reason string
}{
	{ErrInvalidRange, ReasonInvalidRange},
	{ErrCapacityExceeded, ReasonCapacityExceeded},
	{ErrOutsideAvailability, ReasonOutsideAvailability},
	{ErrPeriodBlocked, ReasonPeriodBlocked},
	{ErrArrivalDayNotAllowed, ReasonArrivalDayNotAllowed},
	{ErrDepartureDayNotAllowed, ReasonDepartureDayNotAllowed},
	{ErrStayTooShort, ReasonStayTooShort},
	{ErrSlotUnavailable, ReasonSlotUnavailable},
	{ErrOverlapAtConfirmation, ReasonOverlapAtConfirmation},
}

// ReasonCode returns the stable code of a rule violation, or "" for any other error
func ReasonCode(err error) string {
	for _, r := range ruleReasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ""
}

// IsRuleViolation reports whether err is a business rule violation that refuses a request
func IsRuleViolation(err error) bool {
	return ReasonCode(err) != ""
}
