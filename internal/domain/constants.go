package domain

// Default configuration values
const (
	DefaultMinStayNights         = 1
	DefaultRecommendEveryMinutes = 60 // on the hour
	RecommendedPriority          = 1
	RegularPriority              = 0
)

// Business validation constants
const (
	MinVisitDurationMinutes = 5
	MaxVisitDurationMinutes = 480 // 8 hours
	MinSlotIntervalMinutes  = 5
	MaxSafetyMarginMinutes  = 240
	MaxStayNights           = 365
	MaxGuestsLimit          = 100
	MaxNameLength           = 200
	MaxMessageLength        = 1000
	MaxRefusalReasonLength  = 500
)

// TimeFormat is the HH:MM layout of visit times
const TimeFormat = "15:04"

// ActiveStatuses are the statuses that occupy a visit slot
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
