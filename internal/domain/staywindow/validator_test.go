package staywindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/pkg/ptr"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

func d(month time.Month, day int) types.Date {
	return types.NewDate(2024, month, day)
}

func blocked(start, end types.Date) *domain.BlockedPeriod {
	return &domain.BlockedPeriod{ID: 1, PropertyID: 7, StartDate: start, EndDate: end, Blocked: true, Reason: ptr.Ptr("owner stay")}
}

func open(start, end types.Date) *domain.BlockedPeriod {
	return &domain.BlockedPeriod{ID: 2, PropertyID: 7, StartDate: start, EndDate: end, Blocked: false}
}

func TestValidate_ScenarioMinStay(t *testing.T) {
	constraints := &domain.StayConstraints{PropertyID: 7, MinStayNights: 3}

	err := Validate(Request{CheckIn: d(time.July, 5), CheckOut: d(time.July, 7), NumGuests: 2}, constraints, nil)
	assert.ErrorIs(t, err, domain.ErrStayTooShort)

	err = Validate(Request{CheckIn: d(time.July, 5), CheckOut: d(time.July, 8), NumGuests: 2}, constraints, nil)
	assert.NoError(t, err)
}

func TestValidate_ScenarioBlockedPeriod(t *testing.T) {
	periods := []*domain.BlockedPeriod{blocked(d(time.August, 1), d(time.August, 15))}

	err := Validate(Request{CheckIn: d(time.August, 10), CheckOut: d(time.August, 12), NumGuests: 1}, nil, periods)
	assert.ErrorIs(t, err, domain.ErrPeriodBlocked)
	assert.Contains(t, err.Error(), "owner stay")
}

func TestValidate_Rules(t *testing.T) {
	// 2024-07-06 суббота, 2024-07-13 суббота, 2024-07-10 среда
	saturdaysOnly := &domain.StayConstraints{
		MinStayNights:            2,
		AllowedArrivalWeekdays:   []domain.Weekday{domain.Saturday},
		AllowedDepartureWeekdays: []domain.Weekday{domain.Saturday},
		MaxGuests:                4,
	}

	tests := []struct {
		name        string
		req         Request
		constraints *domain.StayConstraints
		periods     []*domain.BlockedPeriod
		wantErr     error
	}{
		{
			name:        "valid week",
			req:         Request{CheckIn: d(time.July, 6), CheckOut: d(time.July, 13), NumGuests: 4},
			constraints: saturdaysOnly,
		},
		{
			name:        "check-out equals check-in",
			req:         Request{CheckIn: d(time.July, 6), CheckOut: d(time.July, 6), NumGuests: 1},
			constraints: saturdaysOnly,
			wantErr:     domain.ErrInvalidRange,
		},
		{
			name:        "check-out before check-in",
			req:         Request{CheckIn: d(time.July, 13), CheckOut: d(time.July, 6), NumGuests: 1},
			constraints: saturdaysOnly,
			wantErr:     domain.ErrInvalidRange,
		},
		{
			name:        "too many guests",
			req:         Request{CheckIn: d(time.July, 6), CheckOut: d(time.July, 13), NumGuests: 5},
			constraints: saturdaysOnly,
			wantErr:     domain.ErrCapacityExceeded,
		},
		{
			name:        "unlimited guests",
			req:         Request{CheckIn: d(time.July, 6), CheckOut: d(time.July, 13), NumGuests: 50},
			constraints: &domain.StayConstraints{MinStayNights: 1},
		},
		{
			name:        "arrival on wednesday",
			req:         Request{CheckIn: d(time.July, 10), CheckOut: d(time.July, 13), NumGuests: 2},
			constraints: saturdaysOnly,
			wantErr:     domain.ErrArrivalDayNotAllowed,
		},
		{
			name:        "departure on wednesday",
			req:         Request{CheckIn: d(time.July, 6), CheckOut: d(time.July, 10), NumGuests: 2},
			constraints: saturdaysOnly,
			wantErr:     domain.ErrDepartureDayNotAllowed,
		},
		{
			name:        "blocked wins over weekday and min stay",
			req:         Request{CheckIn: d(time.July, 10), CheckOut: d(time.July, 11), NumGuests: 2},
			constraints: saturdaysOnly,
			periods:     []*domain.BlockedPeriod{blocked(d(time.July, 9), d(time.July, 9)), blocked(d(time.July, 10), d(time.July, 12))},
			wantErr:     domain.ErrPeriodBlocked,
		},
		{
			name:        "capacity wins over blocked period",
			req:         Request{CheckIn: d(time.July, 6), CheckOut: d(time.July, 13), NumGuests: 9},
			constraints: saturdaysOnly,
			periods:     []*domain.BlockedPeriod{blocked(d(time.July, 1), d(time.July, 31))},
			wantErr:     domain.ErrCapacityExceeded,
		},
		{
			name:        "stay ends the day a blocked period starts",
			req:         Request{CheckIn: d(time.July, 6), CheckOut: d(time.July, 13), NumGuests: 2},
			constraints: saturdaysOnly,
			periods:     []*domain.BlockedPeriod{blocked(d(time.July, 13), d(time.July, 20))},
		},
		{
			name:        "stay starts the day after a blocked period ends",
			req:         Request{CheckIn: d(time.July, 6), CheckOut: d(time.July, 13), NumGuests: 2},
			constraints: saturdaysOnly,
			periods:     []*domain.BlockedPeriod{blocked(d(time.June, 29), d(time.July, 5))},
		},
		{
			name:        "stay covers the last blocked night",
			req:         Request{CheckIn: d(time.July, 6), CheckOut: d(time.July, 13), NumGuests: 2},
			constraints: saturdaysOnly,
			periods:     []*domain.BlockedPeriod{blocked(d(time.June, 29), d(time.July, 6))},
			wantErr:     domain.ErrPeriodBlocked,
		},
		{
			name:        "open periods ignored without allow-list",
			req:         Request{CheckIn: d(time.July, 6), CheckOut: d(time.July, 13), NumGuests: 2},
			constraints: saturdaysOnly,
			periods:     []*domain.BlockedPeriod{open(d(time.August, 1), d(time.August, 31))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req, tt.constraints, tt.periods)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_AllowList(t *testing.T) {
	constraints := &domain.StayConstraints{MinStayNights: 1, UseAllowList: true}
	periods := []*domain.BlockedPeriod{
		open(d(time.July, 1), d(time.July, 31)),
		open(d(time.August, 10), d(time.August, 20)),
	}

	tests := []struct {
		name    string
		req     Request
		periods []*domain.BlockedPeriod
		wantErr error
	}{
		{"inside july", Request{CheckIn: d(time.July, 25), CheckOut: d(time.August, 1)}, periods, nil},
		{"spills over july", Request{CheckIn: d(time.July, 28), CheckOut: d(time.August, 2)}, periods, domain.ErrOutsideAvailability},
		{"across the gap", Request{CheckIn: d(time.July, 30), CheckOut: d(time.August, 12)}, periods, domain.ErrOutsideAvailability},
		{"no periods at all", Request{CheckIn: d(time.July, 5), CheckOut: d(time.July, 8)}, nil, domain.ErrOutsideAvailability},
		{
			name:    "inside but blocked",
			req:     Request{CheckIn: d(time.July, 5), CheckOut: d(time.July, 8)},
			periods: append([]*domain.BlockedPeriod{blocked(d(time.July, 7), d(time.July, 7))}, periods...),
			wantErr: domain.ErrPeriodBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req, constraints, tt.periods)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_MalformedPeriod(t *testing.T) {
	bad := blocked(d(time.July, 20), d(time.July, 10))

	err := Validate(Request{CheckIn: d(time.July, 1), CheckOut: d(time.July, 3)}, nil, []*domain.BlockedPeriod{bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

func TestValidate_OkImpliesConstraints(t *testing.T) {
	constraints := &domain.StayConstraints{
		MinStayNights:            3,
		AllowedArrivalWeekdays:   []domain.Weekday{domain.Friday, domain.Saturday},
		AllowedDepartureWeekdays: []domain.Weekday{domain.Sunday, domain.Monday},
	}

	start := d(time.July, 1)
	for offset := 0; offset < 21; offset++ {
		for length := 1; length < 10; length++ {
			req := Request{CheckIn: start.AddDays(offset), CheckOut: start.AddDays(offset + length), NumGuests: 1}
			if err := Validate(req, constraints, nil); err != nil {
				require.True(t, domain.IsRuleViolation(err), err.Error())
				continue
			}
			assert.GreaterOrEqual(t, req.CheckIn.DaysUntil(req.CheckOut), constraints.MinStayNights)
			assert.True(t, domain.ContainsWeekday(constraints.AllowedArrivalWeekdays, domain.WeekdayOf(req.CheckIn)))
			assert.True(t, domain.ContainsWeekday(constraints.AllowedDepartureWeekdays, domain.WeekdayOf(req.CheckOut)))
		}
	}
}
