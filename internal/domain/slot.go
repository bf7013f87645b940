package domain

import "github.com/m04kA/SMC-EstateBookingService/pkg/types"

// TimeSlot is a candidate visit start produced by the slot generator. Never persisted.
type TimeSlot struct {
	Date      types.Date
	Time      types.TimeString
	Available bool
	Priority  int // 1 = recommended
}

// IsRecommended returns true if the slot is flagged as recommended
func (s *TimeSlot) IsRecommended() bool {
	return s.Priority > 0
}
