// Package interval implements half-open [Start, End) time ranges.
// Equal boundaries never overlap, so back-to-back visits and stays are legal.
package interval

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// Interval is the half-open range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// New builds an interval, failing with domain.ErrInvalidInterval if end is before start
func New(start, end time.Time) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// FromDates builds the nights interval [checkIn, checkOut)
func FromDates(checkIn, checkOut types.Date) (Interval, error) {
	return New(checkIn.Time(), checkOut.Time())
}

// FromInclusiveDates builds [start, end+1 day) for a period whose end day is included
func FromInclusiveDates(start, end types.Date) (Interval, error) {
	return New(start.Time(), end.AddDays(1).Time())
}

// Occupied builds [start - margin, start + duration + margin)
func Occupied(start time.Time, duration, margin time.Duration) (Interval, error) {
	if duration < 0 || margin < 0 {
		return Interval{}, fmt.Errorf("%w: negative duration %s or margin %s", domain.ErrInvalidInterval, duration, margin)
	}
	return New(start.Add(-margin), start.Add(duration+margin))
}

// Validate checks Start <= End
func (iv Interval) Validate() error {
	if iv.End.Before(iv.Start) {
		return fmt.Errorf("%w: [%s, %s)", domain.ErrInvalidInterval,
			iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
	}
	return nil
}

// IsEmpty returns true for a zero-length interval
func (iv Interval) IsEmpty() bool {
	return iv.Start.Equal(iv.End)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// Overlaps reports a.Start < b.End && b.Start < a.End
func Overlaps(a, b Interval) (bool, error) {
	if err := a.Validate(); err != nil {
		return false, err
	}
	if err := b.Validate(); err != nil {
		return false, err
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End), nil
}

// Contains reports inner.Start >= outer.Start && inner.End <= outer.End
func Contains(outer, inner Interval) (bool, error) {
	if err := outer.Validate(); err != nil {
		return false, err
	}
	if err := inner.Validate(); err != nil {
		return false, err
	}
	return !inner.Start.Before(outer.Start) && !inner.End.After(outer.End), nil
}

// Duration returns End - Start
func Duration(iv Interval) (time.Duration, error) {
	if err := iv.Validate(); err != nil {
		return 0, err
	}
	return iv.End.Sub(iv.Start), nil
}

// Nights counts calendar days between Start and End
func Nights(iv Interval) (int, error) {
	if err := iv.Validate(); err != nil {
		return 0, err
	}
	return types.DateOf(iv.Start).DaysUntil(types.DateOf(iv.End)), nil
}

// OverlapsAny returns the first interval of others that overlaps iv
func OverlapsAny(iv Interval, others []Interval) (Interval, bool, error) {
	for _, other := range others {
		overlap, err := Overlaps(iv, other)
		if err != nil {
			return Interval{}, false, err
		}
		if overlap {
			return other, true, nil
		}
	}
	return Interval{}, false, nil
}
